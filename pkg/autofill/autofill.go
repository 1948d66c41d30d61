// Package autofill implements the backtracking CSP solver that fills every
// incomplete entry of a grid with mutually consistent dictionary words and
// enumerates up to MaxVariations distinct solutions.
//
// Grounded on the teacher's internal/puzzle/gridfiller.go (AC-3 arc
// consistency pre-pass, MRV variable selection, recursive backtracking with
// a timeout), collapsed to the single partial-assignment bookkeeping
// structure the design notes call for instead of the teacher's two
// overlapping domain-shrinking mechanisms (full forward-check domain
// maintenance plus a separate compatibility check) - see DESIGN.md.
package autofill

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/crossgen/crossgen/pkg/dictionary"
	"github.com/crossgen/crossgen/pkg/grid"
	"github.com/crossgen/crossgen/pkg/matcher"
	"github.com/crossgen/crossgen/pkg/wordindex"
)

// MaxVariations is the default cap on distinct enumerated solutions.
const MaxVariations = 100

// Status summarizes how a run ended.
type Status int

const (
	// StatusOK means the search completed without hitting any resource bound
	// and found at least one solution (or the grid had no incomplete entry).
	StatusOK Status = iota
	// StatusNoFill means no solution exists - either a variable had zero
	// initial candidates, or the full search space was exhausted with no
	// completion found. This is a successful outcome, not an error.
	StatusNoFill
	// StatusTruncated means MaxVariations or the node budget was reached.
	StatusTruncated
	// StatusCancelled means the caller's cancellation flag tripped.
	StatusCancelled
	// StatusTimedOut means the deadline elapsed.
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoFill:
		return "no_fill"
	case StatusTruncated:
		return "truncated"
	case StatusCancelled:
		return "cancelled"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// NoCandidatesError reports that entry_id has zero dictionary candidates
// given the grid's existing letter constraints.
type NoCandidatesError struct {
	EntryID string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("entry %s has no dictionary candidates", e.EntryID)
}

// TruncatedError documents why a run stopped before exhausting the search,
// alongside how many solutions were found before stopping.
type TruncatedError struct {
	Found  int
	Reason string // "max_variations", "node_budget", "deadline", or "cancelled"
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("autofill truncated after %d solution(s): %s", e.Found, e.Reason)
}

// Progress is delivered to an optional sink at batched intervals (every 50
// recursion steps, and every 10 solutions found).
type Progress struct {
	VariablesAssigned int
	VariablesTotal    int
	SolutionsSoFar    int
}

// Options configures one Autofill run. The zero value is valid: it runs
// unbounded except for the default MaxVariations cap.
type Options struct {
	MaxVariations int           // 0 defaults to MaxVariations
	NodeBudget    int           // 0 means unbounded
	Deadline      time.Time     // zero value means no deadline
	Progress      func(Progress)
	Cancel        *atomic.Bool // nil means never cancelled
}

// Result is the outcome of one Run.
type Result struct {
	Grids  []*grid.Grid
	Status Status
	Err    error // *NoCandidatesError or *TruncatedError; nil otherwise
}

type variable struct {
	entry      wordindex.Entry
	candidates []dictionary.Entry
}

// Run fills every incomplete entry of g using words from dict, enumerating
// up to opts.MaxVariations distinct solutions. g is never mutated; each
// returned Grid is an independent clone.
func Run(dict *dictionary.Dictionary, g *grid.Grid, opts Options) Result {
	wi := wordindex.Build(g)
	m := matcher.New(dict)

	maxVariations := opts.MaxVariations
	if maxVariations <= 0 {
		maxVariations = MaxVariations
	}

	var vars []*variable
	for _, e := range wi.Entries {
		if e.Length < 2 {
			continue
		}
		pattern := e.Pattern(g)
		if !strings.ContainsRune(pattern, '_') {
			continue
		}
		candidates := m.Candidates(pattern, matcher.NoRatingFilter, matcher.RatingDesc)
		if len(candidates) == 0 {
			return Result{Status: StatusNoFill, Err: &NoCandidatesError{EntryID: e.ID}}
		}
		vars = append(vars, &variable{entry: e, candidates: candidates})
	}

	if len(vars) == 0 {
		return Result{Grids: []*grid.Grid{g.Clone()}, Status: StatusOK}
	}

	pruneArcConsistency(vars)
	for _, v := range vars {
		if len(v.candidates) == 0 {
			return Result{Status: StatusNoFill, Err: &NoCandidatesError{EntryID: v.entry.ID}}
		}
	}

	s := newSolver(g, vars, maxVariations, opts)
	reason := s.backtrack()

	status := StatusOK
	var err error
	switch reason {
	case "max_variations", "node_budget":
		status = StatusTruncated
		err = &TruncatedError{Found: len(s.results), Reason: reason}
	case "cancelled":
		status = StatusCancelled
		err = &TruncatedError{Found: len(s.results), Reason: reason}
	case "deadline":
		status = StatusTimedOut
		err = &TruncatedError{Found: len(s.results), Reason: reason}
	default:
		if len(s.results) == 0 {
			status = StatusNoFill
		}
	}

	return Result{Grids: s.results, Status: status, Err: err}
}

type solver struct {
	opts          Options
	maxVariations int
	g             *grid.Grid
	vars          []*variable
	assignment    map[[2]int]rune // row,col -> letter; seeded with the grid's fixed letters
	chosen        map[string]string
	results       []*grid.Grid
	seen          map[string]bool
	nodes         int
}

func newSolver(g *grid.Grid, vars []*variable, maxVariations int, opts Options) *solver {
	assignment := make(map[[2]int]rune)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Cells[r][c].IsLetter() {
				assignment[[2]int{r, c}] = g.Cells[r][c].Letter
			}
		}
	}
	return &solver{
		opts:          opts,
		maxVariations: maxVariations,
		g:             g,
		vars:          vars,
		assignment:    assignment,
		chosen:        make(map[string]string),
		seen:          make(map[string]bool),
	}
}

// backtrack performs one recursion step and returns "" on ordinary
// exhaustion of this subtree, or the reason the overall search should stop
// ("max_variations", "node_budget", "deadline", "cancelled"), which
// propagates straight up through every enclosing call.
func (s *solver) backtrack() string {
	s.nodes++
	if s.nodes%50 == 0 {
		if reason := s.checkLimits(); reason != "" {
			return reason
		}
		s.reportProgress()
	}

	v, candidates := s.selectUnassigned()
	if v == nil {
		s.commitSolution()
		if len(s.results)%10 == 0 {
			s.reportProgress()
		}
		if len(s.results) >= s.maxVariations {
			return "max_variations"
		}
		return ""
	}

	for _, cand := range candidates {
		added, ok := s.tryAssign(v, cand)
		if !ok {
			continue
		}
		s.chosen[v.entry.ID] = cand.Word

		reason := s.backtrack()

		delete(s.chosen, v.entry.ID)
		s.undoAssign(added)

		if reason != "" {
			return reason
		}
	}
	return ""
}

func (s *solver) checkLimits() string {
	if s.opts.NodeBudget > 0 && s.nodes > s.opts.NodeBudget {
		return "node_budget"
	}
	if s.opts.Cancel != nil && s.opts.Cancel.Load() {
		return "cancelled"
	}
	if !s.opts.Deadline.IsZero() && time.Now().After(s.opts.Deadline) {
		return "deadline"
	}
	return ""
}

func (s *solver) reportProgress() {
	if s.opts.Progress == nil {
		return
	}
	s.opts.Progress(Progress{
		VariablesAssigned: len(s.chosen),
		VariablesTotal:    len(s.vars),
		SolutionsSoFar:    len(s.results),
	})
}

// selectUnassigned picks the unassigned variable with the fewest candidates
// still compatible with the current partial assignment (minimum remaining
// values), breaking ties by entry number then by direction (across first).
func (s *solver) selectUnassigned() (*variable, []dictionary.Entry) {
	var best *variable
	var bestCandidates []dictionary.Entry

	for _, v := range s.vars {
		if _, done := s.chosen[v.entry.ID]; done {
			continue
		}
		candidates := s.compatibleCandidates(v)
		if best == nil || mrvBetter(v, len(candidates), best, len(bestCandidates)) {
			best, bestCandidates = v, candidates
		}
	}
	return best, bestCandidates
}

func mrvBetter(v *variable, vCount int, best *variable, bestCount int) bool {
	if vCount != bestCount {
		return vCount < bestCount
	}
	if v.entry.Number != best.entry.Number {
		return v.entry.Number < best.entry.Number
	}
	return v.entry.Direction == grid.ACROSS && best.entry.Direction != grid.ACROSS
}

func (s *solver) compatibleCandidates(v *variable) []dictionary.Entry {
	cells := v.entry.Cells()
	var out []dictionary.Entry
	for _, cand := range v.candidates {
		ok := true
		for i, pos := range cells {
			if letter, exists := s.assignment[pos]; exists && rune(cand.Word[i]) != letter {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cand)
		}
	}
	return out
}

// tryAssign writes cand's letters into the assignment map wherever a cell
// isn't already constrained, failing if any letter conflicts with an
// already-fixed letter or a prior tentative assignment on this path.
func (s *solver) tryAssign(v *variable, cand dictionary.Entry) ([][2]int, bool) {
	cells := v.entry.Cells()
	var added [][2]int
	for i, pos := range cells {
		letter := rune(cand.Word[i])
		if existing, ok := s.assignment[pos]; ok {
			if existing != letter {
				for _, p := range added {
					delete(s.assignment, p)
				}
				return nil, false
			}
			continue
		}
		s.assignment[pos] = letter
		added = append(added, pos)
	}
	return added, true
}

func (s *solver) undoAssign(added [][2]int) {
	for _, pos := range added {
		delete(s.assignment, pos)
	}
}

func (s *solver) commitSolution() {
	fp := s.fingerprint()
	if s.seen[fp] {
		return
	}
	s.seen[fp] = true

	clone := s.g.Clone()
	for pos, letter := range s.assignment {
		clone.Cells[pos[0]][pos[1]] = grid.LetterCell(letter)
	}
	s.results = append(s.results, clone)
}

func (s *solver) fingerprint() string {
	ids := make([]string, 0, len(s.chosen))
	for id := range s.chosen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + s.chosen[id]
	}
	return strings.Join(parts, "|")
}

type crossing struct {
	localIndex int
	other      *variable
	otherIndex int
}

type cellOwner struct {
	v   *variable
	idx int
}

// pruneArcConsistency is the one-pass AC-3 pruning recommended at search
// entry: for each variable and candidate, reject the candidate if some
// crossing variable has no candidate agreeing at the crossing letter. This
// is not maintained during the search; it only shrinks the initial domains.
func pruneArcConsistency(vars []*variable) {
	cellOwners := make(map[[2]int][]cellOwner)
	for _, v := range vars {
		for i, pos := range v.entry.Cells() {
			cellOwners[pos] = append(cellOwners[pos], cellOwner{v, i})
		}
	}

	crossingsOf := make(map[*variable][]crossing)
	for _, owners := range cellOwners {
		if len(owners) != 2 {
			continue
		}
		a, b := owners[0], owners[1]
		crossingsOf[a.v] = append(crossingsOf[a.v], crossing{a.idx, b.v, b.idx})
		crossingsOf[b.v] = append(crossingsOf[b.v], crossing{b.idx, a.v, a.idx})
	}

	for _, v := range vars {
		crossings := crossingsOf[v]
		if len(crossings) == 0 {
			continue
		}
		filtered := v.candidates[:0:0]
		for _, cand := range v.candidates {
			if arcConsistent(cand, crossings) {
				filtered = append(filtered, cand)
			}
		}
		v.candidates = filtered
	}
}

func arcConsistent(cand dictionary.Entry, crossings []crossing) bool {
	for _, cr := range crossings {
		letter := cand.Word[cr.localIndex]
		found := false
		for _, otherCand := range cr.other.candidates {
			if otherCand.Word[cr.otherIndex] == letter {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
