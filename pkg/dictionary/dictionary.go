// Package dictionary loads and stores the word lists that the Matcher and
// Autofill draw candidates from. Adapted from the teacher's
// pkg/wordlist/wordlist.go LoadBrodaWordlist: same WORD or WORD;RATING line
// format and length-bucketed storage, generalized to make the rating
// optional, skip comment lines, and deduplicate repeated words to their
// highest rating rather than keeping every occurrence.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one dictionary word with its optional rating. A word with no
// rating in the source file gets Rating 0 and Rated false; it is still a
// valid fill candidate, just unranked.
type Entry struct {
	Word   string
	Rating int
	Rated  bool
}

// Dictionary is a deduplicated set of Entries grouped by word length.
// Within each length bucket, entries are sorted by descending rating
// (unrated entries sort last, in the order first seen).
type Dictionary struct {
	byLength map[int][]Entry
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{byLength: make(map[int][]Entry)}
}

// Load reads a dictionary from path. Each line is either `WORD` or
// `WORD;RATING`; blank lines and lines starting with '#' are skipped. Words
// are uppercased. If the same word appears more than once, the entry with
// the higher rating wins.
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary file: %w", err)
	}
	defer file.Close()
	return LoadReader(file)
}

// LoadReader parses a dictionary from an already-open reader, in the same
// format as Load.
func LoadReader(r io.Reader) (*Dictionary, error) {
	d := New()
	seen := make(map[string]int) // word -> index into its length bucket

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var word string
		var rating int
		var rated bool

		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			word = strings.ToUpper(strings.TrimSpace(line[:idx]))
			ratingStr := strings.TrimSpace(line[idx+1:])
			// An unparseable or negative rating is treated as absent, not a
			// load failure - the line still contributes its word.
			if r, err := strconv.Atoi(ratingStr); err == nil && r >= 0 {
				rating, rated = r, true
			}
		} else {
			word = strings.ToUpper(line)
		}

		if word == "" {
			continue
		}

		d.upsert(seen, Entry{Word: word, Rating: rating, Rated: rated})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	for length := range d.byLength {
		sortByRatingDesc(d.byLength[length])
	}
	return d, nil
}

func (d *Dictionary) upsert(seen map[string]int, e Entry) {
	length := len(e.Word)
	if idx, ok := seen[e.Word]; ok {
		existing := d.byLength[length][idx]
		if e.Rated && (!existing.Rated || e.Rating > existing.Rating) {
			d.byLength[length][idx] = e
		}
		return
	}
	d.byLength[length] = append(d.byLength[length], e)
	seen[e.Word] = len(d.byLength[length]) - 1
}

// Add inserts or updates a single entry, deduplicating to the higher rating
// exactly as Load does.
func (d *Dictionary) Add(word string, rating int, rated bool) {
	word = strings.ToUpper(word)
	length := len(word)
	for i, e := range d.byLength[length] {
		if e.Word == word {
			if rated && (!e.Rated || rating > e.Rating) {
				d.byLength[length][i] = Entry{Word: word, Rating: rating, Rated: rated}
				sortByRatingDesc(d.byLength[length])
			}
			return
		}
	}
	d.byLength[length] = append(d.byLength[length], Entry{Word: word, Rating: rating, Rated: rated})
	sortByRatingDesc(d.byLength[length])
}

func sortByRatingDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Rated != entries[j].Rated {
			return entries[i].Rated // rated entries sort before unrated
		}
		return entries[i].Rating > entries[j].Rating
	})
}

// OfLength returns the entries of the given length, highest rating first.
func (d *Dictionary) OfLength(length int) []Entry {
	return d.byLength[length]
}

// Lengths returns the distinct word lengths present, in ascending order.
func (d *Dictionary) Lengths() []int {
	lengths := make([]int, 0, len(d.byLength))
	for l := range d.byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// Size returns the total number of distinct words across all lengths.
func (d *Dictionary) Size() int {
	n := 0
	for _, entries := range d.byLength {
		n += len(entries)
	}
	return n
}
