// Package typelattice models the contract language's declared integer
// widths and address type as a table of representable-range facts, adapted
// from the teacher's Scala-type-hierarchy subtyping lattice
// (subtypes/subtypes.go) to the target language's own vocabulary. Only the
// per-width bounds are exercised (by chc.assertRange's range assertions);
// see DESIGN.md's typelattice entry for why the subtyping/widening
// machinery the teacher's version modeled was dropped rather than kept
// unused.
package typelattice

// Element is one declared integer width or the address type, carrying the
// representable-range facts chc.assertRange needs to emit a fresh
// variable's implicit bound.
type Element struct {
	name string

	// bounded is false for widths whose range doesn't fit an int64 (uint64,
	// 128, 256); callers fall back to a one-sided (>= 0) assertion for those
	// instead of an exact range (see Bounds).
	bounded     bool
	nonNegative bool
	min, max    int64
}

func (e *Element) String() string { return e.name }

// Bounds reports e's representable [min, max] range and whether it fits an
// int64. Widths that don't fit (uint64, 128, 256) report ok=false; the sort
// catalogue's callers fall back to a one-sided non-negativity assertion for
// unsigned widths in that case and leave signed wide integers unconstrained.
func (e *Element) Bounds() (lo, hi int64, ok bool) {
	return e.min, e.max, e.bounded
}

// NonNegative reports whether every value of e is >= 0 even when Bounds
// can't express an exact upper bound (unsigned widths wider than int64, and
// address).
func (e *Element) NonNegative() bool {
	return e.nonNegative
}

// Standard unsigned integer widths, narrowest first, and their signed
// counterparts, plus address.
var (
	Uint8   = &Element{name: "uint8", bounded: true, nonNegative: true, min: 0, max: 1<<8 - 1}
	Uint16  = &Element{name: "uint16", bounded: true, nonNegative: true, min: 0, max: 1<<16 - 1}
	Uint32  = &Element{name: "uint32", bounded: true, nonNegative: true, min: 0, max: 1<<32 - 1}
	Uint64  = &Element{name: "uint64", nonNegative: true}
	Uint128 = &Element{name: "uint128", nonNegative: true}
	Uint256 = &Element{name: "uint256", nonNegative: true}

	Int8   = &Element{name: "int8", bounded: true, min: -1 << 7, max: 1<<7 - 1}
	Int16  = &Element{name: "int16", bounded: true, min: -1 << 15, max: 1<<15 - 1}
	Int32  = &Element{name: "int32", bounded: true, min: -1 << 31, max: 1<<31 - 1}
	Int64  = &Element{name: "int64", bounded: true, min: -1 << 63, max: 1<<63 - 1}
	Int128 = &Element{name: "int128"}
	Int256 = &Element{name: "int256"}

	Address = &Element{name: "address", nonNegative: true}
)

// ForWidth returns the lattice element for a declared integer width and
// signedness. Only the widths 8, 16, 32, 64, 128 and 256 have an element;
// any other width returns nil. Used by the checker to look up an
// ast.Type's range when emitting the implicit width assertion for a fresh
// variable (spec.md §4.1's "explicit min/max range assertions").
func ForWidth(width int, signed bool) *Element {
	var chain []*Element
	if signed {
		chain = []*Element{Int8, Int16, Int32, Int64, Int128, Int256}
	} else {
		chain = []*Element{Uint8, Uint16, Uint32, Uint64, Uint128, Uint256}
	}
	widths := []int{8, 16, 32, 64, 128, 256}
	for i, w := range widths {
		if w == width {
			return chain[i]
		}
	}
	return nil
}

