package runner

import "github.com/rhartert/yagh"

// Entry is one run's leaderboard record.
type Entry struct {
	Run      int
	Reward   float64
	NumUnsat int
}

// Leaderboard keeps every run's best reward in an indexed heap and reports
// the top ones on demand, the supplemented "run leaderboard" feature
// (SPEC_FULL.md). It is grounded directly on internal/sat/ordering.go's
// VarOrder, which keeps yagh.IntMap[float64] keyed by variable id and
// negates the priority (activity) so that Pop() returns the
// highest-activity variable first; here the key is a run index and the
// priority is its negated reward, so Pop() returns the best run first.
type Leaderboard struct {
	heap *yagh.IntMap[float64]
	meta map[int]Entry
}

// NewLeaderboard allocates a Leaderboard sized for numRuns runs.
func NewLeaderboard(numRuns int) *Leaderboard {
	return &Leaderboard{
		heap: yagh.New[float64](numRuns),
		meta: make(map[int]Entry, numRuns),
	}
}

// Record adds one run's outcome to the leaderboard.
func (lb *Leaderboard) Record(run int, reward float64, numUnsat int) {
	lb.heap.Put(run, -reward)
	lb.meta[run] = Entry{Run: run, Reward: reward, NumUnsat: numUnsat}
}

// Top drains up to k entries off the heap in best-reward-first order. It
// is destructive: call it once, after every run has been recorded.
func (lb *Leaderboard) Top(k int) []Entry {
	out := make([]Entry, 0, k)
	for i := 0; i < k; i++ {
		next, ok := lb.heap.Pop()
		if !ok {
			break
		}
		out = append(out, lb.meta[next.Elem])
	}
	return out
}
