// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the BLAKE3-256 digest of A's serialized form.
// Two blackboxes with equal fingerprints serialize identically, so they have
// the same kind tree, field, shape and entries; labels and options do not
// contribute.
func Fingerprint(A BlackBox) ([32]byte, error) {
	var sum [32]byte
	if A == nil {
		return sum, fmt.Errorf("Fingerprint: %w", ErrNilOperand)
	}
	h := blake3.New()
	if err := A.Write(h); err != nil {
		return sum, fmt.Errorf("Fingerprint: %w", err)
	}
	copy(sum[:], h.Sum(nil))

	return sum, nil
}
