package board

import (
	"fmt"
	"sort"
)

// letterPool is the finite single-letter namespace handed out first.
const letterPool = "abcdefghijklmnopqrstuvwxyz"

// LabelAllocator hands out short point labels. Freed labels are recycled
// before new ones are minted, smallest first, so removing "b" and adding a
// point yields "b" again rather than a fresh letter.
//
// The allocator is an explicit capability owned by its Board; there is no
// process-wide name state.
type LabelAllocator struct {
	free []string // released labels, kept in (length, lexicographic) order
	next int      // next unminted index into the mint sequence
}

// NewLabelAllocator returns an allocator with the full letter pool unminted.
func NewLabelAllocator() *LabelAllocator {
	return &LabelAllocator{}
}

// NextLetter mints from the finite single-letter pool. It reports false once
// the pool (including recycled letters) is exhausted; callers fall back to
// Next, which never refuses.
func (a *LabelAllocator) NextLetter() (string, bool) {
	if len(a.free) > 0 && len(a.free[0]) == 1 {
		label := a.free[0]
		a.free = a.free[1:]
		return label, true
	}
	if a.next < len(letterPool) {
		label := string(letterPool[a.next])
		a.next++
		return label, true
	}
	return "", false
}

// Next returns the next label, falling back to the unbounded letter+counter
// scheme ("a1".."z1", "a2"..) once the single-letter pool runs out. An add
// is never rejected for want of a name.
func (a *LabelAllocator) Next() string {
	if label, ok := a.NextLetter(); ok {
		return label
	}
	if len(a.free) > 0 {
		label := a.free[0]
		a.free = a.free[1:]
		return label
	}
	label := mintLabel(a.next)
	a.next++
	return label
}

// Release returns a label to the pool for reuse. Labels the allocator never
// minted are accepted as-is; empty strings are ignored.
func (a *LabelAllocator) Release(label string) {
	if label == "" {
		return
	}
	i := sort.Search(len(a.free), func(i int) bool { return labelLess(label, a.free[i]) })
	a.free = append(a.free, "")
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = label
}

// mintLabel maps a mint index onto the label sequence
// a..z, a1..z1, a2..z2, ...
func mintLabel(idx int) string {
	if idx < len(letterPool) {
		return string(letterPool[idx])
	}
	idx -= len(letterPool)
	return fmt.Sprintf("%c%d", letterPool[idx%len(letterPool)], idx/len(letterPool)+1)
}

// mintIndex is the inverse of mintLabel. It returns -1 for labels outside
// the mint sequence (foreign labels loaded from a hand-edited store).
func mintIndex(label string) int {
	if len(label) == 0 {
		return -1
	}
	pos := int(label[0]) - 'a'
	if pos < 0 || pos >= len(letterPool) {
		return -1
	}
	if len(label) == 1 {
		return pos
	}
	round := 0
	for _, c := range label[1:] {
		if c < '0' || c > '9' {
			return -1
		}
		round = round*10 + int(c-'0')
	}
	if round == 0 {
		return -1
	}
	return len(letterPool)*round + pos
}

// labelLess orders labels by (length, lexicographic) so "z" is reused before
// "a1".
func labelLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
