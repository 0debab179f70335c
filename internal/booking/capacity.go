package booking

import (
    "sort"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Candidate is one way to seat a party: a single table or a
// combination of shared tables.  TableIDs is ascending so a
// candidate can be handed straight to the lock discipline;
// TableNumbers is ascending for deterministic ranking and
// human-readable responses.
type Candidate struct {
    TableIDs     []uint64
    TableNumbers []int
    Seats        int // combined maximum capacity
}

// CandidateStream produces candidates for a party in rank order,
// best first: single tables that fit (smallest spare capacity
// first), then combinations of shared tables by ascending size,
// within a size by smallest combined excess.  All ties break on
// table numbers so identical inventories always rank identically.
//
// The stream is pull-based.  Singles are ranked up front (cheap);
// each combination size is expanded only when the previous
// candidates are exhausted, so an allocator that succeeds on the
// first free table never pays for the combination search.
type CandidateStream struct {
    party    int
    pol      Policy
    shared   []model.Table // shared pool, ascending table number
    queue    []Candidate
    nextSize int
}

// NewCandidateStream builds a stream over the given inventory.
// Inactive tables and tables in the exclude set never appear, as
// singles or inside combinations.
func NewCandidateStream(tables []model.Table, partySize int, exclude map[uint64]bool, pol Policy) *CandidateStream {
    s := &CandidateStream{party: partySize, pol: pol.withDefaults(), nextSize: 2}

    var singles []Candidate
    for _, t := range tables {
        if !t.IsActive || exclude[t.ID] {
            continue
        }
        if t.IsShared {
            s.shared = append(s.shared, t)
        }
        if t.MinCapacity <= partySize && partySize <= t.MaxCapacity {
            singles = append(singles, Candidate{
                TableIDs:     []uint64{t.ID},
                TableNumbers: []int{t.TableNumber},
                Seats:        t.MaxCapacity,
            })
        }
    }
    sort.Slice(s.shared, func(i, j int) bool {
        return s.shared[i].TableNumber < s.shared[j].TableNumber
    })
    s.sortByRank(singles)
    s.queue = singles
    return s
}

// Next returns the best remaining candidate.  The second result
// is false once the search space is exhausted.
func (s *CandidateStream) Next() (Candidate, bool) {
    for len(s.queue) == 0 {
        if s.nextSize > s.pol.MaxCombinationTables || s.nextSize > len(s.shared) {
            return Candidate{}, false
        }
        s.queue = s.combinationsOf(s.nextSize)
        s.nextSize++
    }
    c := s.queue[0]
    s.queue = s.queue[1:]
    return c, true
}

// combinationsOf expands every viable combination of exactly k
// shared tables, ranked.  Enumeration walks an ascending index
// vector over the number-sorted pool, so each candidate's numbers
// come out ascending for free.
func (s *CandidateStream) combinationsOf(k int) []Candidate {
    n := len(s.shared)
    if k > n {
        return nil
    }
    idx := make([]int, k)
    for i := range idx {
        idx[i] = i
    }
    var out []Candidate
    for {
        if c, ok := s.buildCombination(idx); ok {
            out = append(out, c)
        }
        i := k - 1
        for i >= 0 && idx[i] == n-k+i {
            i--
        }
        if i < 0 {
            break
        }
        idx[i]++
        for j := i + 1; j < k; j++ {
            idx[j] = idx[j-1] + 1
        }
    }
    s.sortByRank(out)
    return out
}

// buildCombination vets one index vector.  A combination is
// viable when its combined maximums cover the party, its combined
// minimums do not overshoot it, and the spare seats stay inside
// the policy bound.
func (s *CandidateStream) buildCombination(idx []int) (Candidate, bool) {
    ids := make([]uint64, 0, len(idx))
    nums := make([]int, 0, len(idx))
    minSum, maxSum := 0, 0
    for _, i := range idx {
        t := s.shared[i]
        ids = append(ids, t.ID)
        nums = append(nums, t.TableNumber)
        minSum += t.MinCapacity
        maxSum += t.MaxCapacity
    }
    if maxSum < s.party || minSum > s.party {
        return Candidate{}, false
    }
    if s.pol.MaxCombinationExcess > 0 && maxSum-s.party > s.pol.MaxCombinationExcess {
        return Candidate{}, false
    }
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
    return Candidate{TableIDs: ids, TableNumbers: nums, Seats: maxSum}, true
}

// sortByRank orders candidates of one size class: smallest excess
// first, table numbers break ties.
func (s *CandidateStream) sortByRank(cs []Candidate) {
    sort.Slice(cs, func(i, j int) bool {
        ei, ej := cs[i].Seats-s.party, cs[j].Seats-s.party
        if ei != ej {
            return ei < ej
        }
        return lexLess(cs[i].TableNumbers, cs[j].TableNumbers)
    })
}

// lexLess compares two ascending number lists lexicographically.
func lexLess(a, b []int) bool {
    for i := 0; i < len(a) && i < len(b); i++ {
        if a[i] != b[i] {
            return a[i] < b[i]
        }
    }
    return len(a) < len(b)
}
