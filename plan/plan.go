// Package plan computes the page ordering for interleaving a two-pass scan
// (all fronts first, then all backs) into a duplex-ready sequence. It is
// pure: no I/O, no document access, only index arithmetic.
package plan

import "errors"

// AutoSplit selects the midpoint split (pageCount / 2) in Split.
const AutoSplit = -1

var (
	// ErrEmptyDocument is returned when the source has no pages.
	ErrEmptyDocument = errors.New("document has no pages")

	// ErrInvalidSplit is returned for an explicit split index below 1.
	ErrInvalidSplit = errors.New("split index must be >= 1 (1-based)")

	// ErrConflictingOptions is returned when both reverse overrides are set.
	ErrConflictingOptions = errors.New("use only one of reverse-second and no-reverse-second")
)

// Ref references one output page: either a source page index (0-based into
// the whole document) or a generated blank. Blank carries no index; a
// boolean tag avoids the index-0 ambiguity of a nullable int.
type Ref struct {
	Page  int
	Blank bool
}

// PageRef returns a Ref for source page index i.
func PageRef(i int) Ref { return Ref{Page: i} }

// BlankRef returns a Ref marking a generated blank page.
func BlankRef() Ref { return Ref{Page: -1, Blank: true} }

// Slot is one interleave step: up to one reference from each half.
// A nil side means the half was exhausted at this step.
type Slot struct {
	First  *Ref
	Second *Ref
}

// Mapping is the ordered interleave plan, one Slot per step.
type Mapping []Slot

// Flatten produces the final output page order: per slot, the first-half
// ref (if present) immediately followed by the second-half ref (if
// present). Slots with neither side contribute nothing.
func (m Mapping) Flatten() []Ref {
	out := make([]Ref, 0, 2*len(m))
	for _, s := range m {
		if s.First != nil {
			out = append(out, *s.First)
		}
		if s.Second != nil {
			out = append(out, *s.Second)
		}
	}
	return out
}

// ResolveReverse turns the two CLI override flags into the single reversal
// decision. Neither set defaults to true (the second pass of a flipped
// stack comes out back-to-front); an explicit off wins over the default; an
// explicit on is redundant but accepted. Both set is ErrConflictingOptions.
func ResolveReverse(forceOn, forceOff bool) (bool, error) {
	if forceOn && forceOff {
		return false, ErrConflictingOptions
	}
	if forceOff {
		return false, nil
	}
	return true, nil
}

// Split partitions [0, pageCount) into the two halves. splitAt is the
// 1-based index of the first page of the second half, or AutoSplit for the
// midpoint. Explicit values >= 1 are converted to 0-based and clamped into
// [0, pageCount]; out-of-range values are not an error, they just yield an
// empty half.
func Split(pageCount, splitAt int) (first, second []int, err error) {
	if pageCount < 1 {
		return nil, nil, ErrEmptyDocument
	}

	var splitIdx int
	if splitAt == AutoSplit {
		splitIdx = pageCount / 2
	} else {
		if splitAt < 1 {
			return nil, nil, ErrInvalidSplit
		}
		splitIdx = splitAt - 1
		if splitIdx > pageCount {
			splitIdx = pageCount
		}
	}

	first = make([]int, 0, splitIdx)
	for i := 0; i < splitIdx; i++ {
		first = append(first, i)
	}
	second = make([]int, 0, pageCount-splitIdx)
	for i := splitIdx; i < pageCount; i++ {
		second = append(second, i)
	}
	return first, second, nil
}

// BuildMapping computes the interleave plan for the two halves. The inputs
// are not modified; reversal and padding operate on copies. With padBlank
// the shorter half is extended with blank markers to the longer half's
// length, otherwise the unmatched tail of the longer half ends up in slots
// with an absent other side.
func BuildMapping(first, second []int, reverseSecond, padBlank bool) Mapping {
	a := toRefs(first)
	b := toRefs(second)

	if reverseSecond {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}

	if padBlank && len(a) != len(b) {
		for len(a) < len(b) {
			a = append(a, BlankRef())
		}
		for len(b) < len(a) {
			b = append(b, BlankRef())
		}
	}

	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	m := make(Mapping, 0, n)
	for i := 0; i < n; i++ {
		var s Slot
		if i < len(a) {
			r := a[i]
			s.First = &r
		}
		if i < len(b) {
			r := b[i]
			s.Second = &r
		}
		m = append(m, s)
	}
	return m
}

func toRefs(indices []int) []Ref {
	refs := make([]Ref, len(indices))
	for i, idx := range indices {
		refs[i] = PageRef(idx)
	}
	return refs
}
