package hydration

import (
	"fmt"
	"strings"
)

// BodyVariant selects the body silhouette and mesh
type BodyVariant uint8

const (
	VariantGeneric BodyVariant = iota
	VariantSlim
	VariantMuscular
	variantCount
)

var variantNames = [...]string{
	VariantGeneric:  "generic",
	VariantSlim:     "slim",
	VariantMuscular: "muscular",
}

func (v BodyVariant) String() string {
	if v >= variantCount {
		return fmt.Sprintf("BodyVariant(%d)", uint8(v))
	}
	return variantNames[v]
}

// Valid reports whether v is one of the three fixed variants
func (v BodyVariant) Valid() bool {
	return v < variantCount
}

// Next cycles generic -> slim -> muscular -> generic
func (v BodyVariant) Next() BodyVariant {
	return (v + 1) % variantCount
}

// ParseBodyVariant accepts a variant name, case-insensitive
func ParseBodyVariant(s string) (BodyVariant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range variantNames {
		if n == name {
			return BodyVariant(i), nil
		}
	}
	return VariantGeneric, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Variants lists every variant in selector order
func Variants() []BodyVariant {
	return []BodyVariant{VariantGeneric, VariantSlim, VariantMuscular}
}
