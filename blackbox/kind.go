// SPDX-License-Identifier: MIT

package blackbox

// Kind tags the closed set of blackbox variants.
// The tag doubles as the serialized kind name.
type Kind uint8

const (
	KindDiagonal Kind = iota
	KindPermutation
	KindTriangular
	KindDense
	KindProduct
)

var kindNames = [...]string{
	KindDiagonal:    "diagonal",
	KindPermutation: "permutation",
	KindTriangular:  "triangular",
	KindDense:       "dense",
	KindProduct:     "product",
}

// String returns the serialized kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// parseKind maps a serialized kind name back to its tag.
func parseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}
