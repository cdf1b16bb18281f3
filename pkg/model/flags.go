package model

import "math/bits"

// AccessFlags is a bitset of class/method/field access modifiers, mirroring
// the flag layout of a compiled class file closely enough for Hamming-style
// comparison (see classify.ClassTypeCheck).
type AccessFlags uint32

const (
	FlagPublic AccessFlags = 1 << iota
	FlagPrivate
	FlagProtected
	FlagStatic
	FlagFinal
	FlagAbstract
	FlagInterface
	FlagEnum
	FlagAnnotation
	FlagSynthetic
)

// TypeMask isolates the bits that determine a class's fundamental shape:
// enum, interface, annotation, abstract. These are the only bits spec.md's
// "class type check" feature considers. The matcher's candidate-set shape
// gate uses the narrower compare.ShapeMask, which leaves out abstract.
const TypeMask = FlagEnum | FlagInterface | FlagAnnotation | FlagAbstract

// AllFlags is every access bit this model defines, used to normalize the
// method/field access-flag-similarity features.
const AllFlags = FlagPublic | FlagPrivate | FlagProtected | FlagStatic | FlagFinal |
	FlagAbstract | FlagInterface | FlagEnum | FlagAnnotation | FlagSynthetic

// Has reports whether all bits of mask are set.
func (f AccessFlags) Has(mask AccessFlags) bool {
	return f&mask == mask
}

// HammingDistance returns the number of differing bits between f and g
// within mask.
func (f AccessFlags) HammingDistance(g AccessFlags, mask AccessFlags) int {
	return bits.OnesCount32(uint32((f & mask) ^ (g & mask)))
}
