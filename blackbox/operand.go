// SPDX-License-Identifier: MIT

package blackbox

// operand is one side of a Product, tagged at binding time as borrowed
// (caller-managed) or owned (built by the product itself). The tag is never
// reinterpreted afterwards.
type operand struct {
	fibb  FIBB
	owned bool
}

func borrow(a FIBB) operand { return operand{fibb: a} }
func own(a FIBB) operand    { return operand{fibb: a, owned: true} }

func (o operand) bound() bool { return o.fibb != nil }

// release drops the reference. Owned sub-products are released transitively;
// borrowed operands are left untouched.
func (o *operand) release() { o.releaseExcept(nil) }

// releaseExcept is release that drops, without releasing, any owned node in keep.
func (o *operand) releaseExcept(keep map[FIBB]bool) {
	if o.owned && !keep[o.fibb] {
		if p, ok := o.fibb.(*Product); ok {
			p.left.releaseExcept(keep)
			p.right.releaseExcept(keep)
		}
	}
	*o = operand{}
}
