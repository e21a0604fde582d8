/*
 * vericore - Four-state comparison operators.
 *
 * Copyright 2026, The vericore Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package fourstate

// Eq implements `==`: any unknown bit in either operand yields a single
// unknown (X) result bit.
func Eq(a, b Value) Value {
	w := widthOf(a, b)
	if a.HasUnknown() || b.HasUnknown() {
		return boolResult(false, false)
	}
	equal := true
	for i := 0; i < w; i++ {
		av, _, _ := a.Bit(i)
		bv, _, _ := b.Bit(i)
		if av != bv {
			equal = false
			break
		}
	}
	return boolResult(true, equal)
}

// Neq implements `!=`.
func Neq(a, b Value) Value {
	return LogicalNot(Eq(a, b))
}

// CaseEq implements `===`: an exact bitwise comparison of the full
// (val,x,z) triple, never unknown, always Boolean. `a === a` is always 1,
// even for an all-X a.
func CaseEq(a, b Value) Value {
	w := widthOf(a, b)
	for i := 0; i < w; i++ {
		av, ax, az := a.Bit(i)
		bv, bx, bz := b.Bit(i)
		if av != bv || ax != bx || az != bz {
			return boolResult(true, false)
		}
	}
	return boolResult(true, true)
}

// CaseNeq implements `!==`.
func CaseNeq(a, b Value) Value {
	return invertKnown(CaseEq(a, b))
}

// WildEq implements `==?`: unknown bits on the pattern operand are don't
// care; any remaining unknown on the value operand yields X.
func WildEq(value, pattern Value) Value {
	w := widthOf(value, pattern)
	anyUnknownValue := false
	for i := 0; i < w; i++ {
		_, px, pz := pattern.Bit(i)
		if px || pz {
			continue // don't-care position
		}
		vv, vx, vz := value.Bit(i)
		if vx || vz {
			anyUnknownValue = true
			continue
		}
		pv, _, _ := pattern.Bit(i)
		if vv != pv {
			return boolResult(true, false)
		}
	}
	if anyUnknownValue {
		return boolResult(false, false)
	}
	return boolResult(true, true)
}

// WildNeq implements `!=?`.
func WildNeq(value, pattern Value) Value {
	return invertKnown(WildEq(value, pattern))
}

func relational(a, b Value, signed bool, cmp func(c int) bool) Value {
	if a.HasUnknown() || b.HasUnknown() {
		return boolResult(false, false)
	}
	w := widthOf(a, b)
	n := numLimbs(w)
	if !signed {
		c := cmpLimbs(a.Val, b.Val, n)
		return boolResult(true, cmp(c))
	}
	aNeg, aMag := signMagnitude(a.Extend(w, true))
	bNeg, bMag := signMagnitude(b.Extend(w, true))
	switch {
	case aNeg && !bNeg:
		return boolResult(true, cmp(-1))
	case !aNeg && bNeg:
		return boolResult(true, cmp(1))
	default:
		c := cmpLimbs(aMag.Val, bMag.Val, n)
		if aNeg {
			c = -c
		}
		return boolResult(true, cmp(c))
	}
}

// Lt implements `<`.
func Lt(a, b Value, signed bool) Value {
	return relational(a, b, signed, func(c int) bool { return c < 0 })
}

// Le implements `<=`.
func Le(a, b Value, signed bool) Value {
	return relational(a, b, signed, func(c int) bool { return c <= 0 })
}

// Gt implements `>`.
func Gt(a, b Value, signed bool) Value {
	return relational(a, b, signed, func(c int) bool { return c > 0 })
}

// Ge implements `>=`.
func Ge(a, b Value, signed bool) Value {
	return relational(a, b, signed, func(c int) bool { return c >= 0 })
}
