package dimacs

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes inst back to DIMACS text, the round-trip half of §8's
// "loading a formula, serializing clauses back to DIMACS, and reloading"
// property. It is a supplemented feature: the distilled specification only
// asks for a reader.
func Write(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)

	for _, c := range inst.Comments {
		if _, err := fmt.Fprintln(bw, c); err != nil {
			return err
		}
	}

	problem := "cnf"
	if inst.Weighted {
		problem = "wcnf"
	}
	if _, err := fmt.Fprintf(bw, "p %s %d %d\n", problem, inst.Variables, len(inst.Clauses)); err != nil {
		return err
	}

	for _, c := range inst.Clauses {
		if inst.Weighted {
			if _, err := fmt.Fprintf(bw, "%d ", c.Weight); err != nil {
				return err
			}
		}
		for _, l := range c.Literals {
			if _, err := fmt.Fprintf(bw, "%d ", l); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
