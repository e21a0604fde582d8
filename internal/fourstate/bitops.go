/*
 * vericore - Four-state bitwise and logical operators.
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

// Not implements bitwise NOT: val <- ~val, x <- x (unknown mask unchanged),
// z <- 0 (high-impedance collapses into unknown).
func Not(a Value) Value {
	r := New(a.Width)
	for i := range r.Val {
		r.Val[i] = ^a.Val[i]
	}
	for i := range r.X {
		var ax, az uint64
		if i < len(a.X) {
			ax = a.X[i]
		}
		if i < len(a.Z) {
			az = a.Z[i]
		}
		r.X[i] = ax | az
	}
	r.mask()
	return r
}

func widthOf(a, b Value) int {
	if a.Width > b.Width {
		return a.Width
	}
	return b.Width
}

// And implements bitwise AND with IEEE-1364 unknown-propagation: a known-0
// on either operand forces a known-0 result bit even if the other operand
// is unknown.
func And(a, b Value) Value { return bitwise(a, b, andBit) }

// Or implements bitwise OR: a known-1 on either operand forces a known-1
// result bit.
func Or(a, b Value) Value { return bitwise(a, b, orBit) }

// Xor implements bitwise XOR: any unknown operand bit makes the result bit
// unknown.
func Xor(a, b Value) Value { return bitwise(a, b, xorBit) }

type bitRule func(aKnown, aOne, bKnown, bOne bool) (known, one bool)

func andBit(aKnown, aOne, bKnown, bOne bool) (bool, bool) {
	if aKnown && !aOne {
		return true, false
	}
	if bKnown && !bOne {
		return true, false
	}
	if aKnown && bKnown {
		return true, aOne && bOne
	}
	return false, false
}

func orBit(aKnown, aOne, bKnown, bOne bool) (bool, bool) {
	if aKnown && aOne {
		return true, true
	}
	if bKnown && bOne {
		return true, true
	}
	if aKnown && bKnown {
		return true, aOne || bOne
	}
	return false, false
}

func xorBit(aKnown, aOne, bKnown, bOne bool) (bool, bool) {
	if !aKnown || !bKnown {
		return false, false
	}
	return true, aOne != bOne
}

// AndWidth, OrWidth, XorWidth apply the same rules at an explicit result
// width, for callers (the constant folder, the VM builder) that already
// know the context-determined width of the expression.
func AndWidth(a, b Value, width int) Value { return bitwiseWidth(a, b, width, andBit) }
func OrWidth(a, b Value, width int) Value  { return bitwiseWidth(a, b, width, orBit) }
func XorWidth(a, b Value, width int) Value { return bitwiseWidth(a, b, width, xorBit) }

func bitwiseWidth(a, b Value, w int, rule bitRule) Value {
	r := New(w)
	for i := 0; i < w; i++ {
		av, ax, az := a.Bit(i)
		bv, bx, bz := b.Bit(i)
		aKnown, aOne := knownBit(av, ax, az)
		bKnown, bOne := knownBit(bv, bx, bz)
		known, one := rule(aKnown, aOne, bKnown, bOne)
		setBit(r.Val, i, one)
		setBit(r.X, i, !known)
	}
	r.mask()
	return r
}

func bitwise(a, b Value, rule bitRule) Value {
	return bitwiseWidth(a, b, widthOf(a, b), rule)
}

// reduceState is the result of scanning an operand bit by bit.
type reduceState struct {
	anyZero    bool
	anyOne     bool
	anyUnknown bool
	allOne     bool
}

func scan(a Value) reduceState {
	s := reduceState{allOne: true}
	for i := 0; i < a.Width; i++ {
		val, x, z := a.Bit(i)
		known, one := knownBit(val, x, z)
		if !known {
			s.anyUnknown = true
			s.allOne = false
			continue
		}
		if one {
			s.anyOne = true
		} else {
			s.anyZero = true
			s.allOne = false
		}
	}
	return s
}

func boolResult(known, one bool) Value {
	r := New(1)
	if !known {
		setBit(r.X, 0, true)
		return r
	}
	setBit(r.Val, 0, one)
	return r
}

// ReduceAnd scans a: 0 if any bit is known-0, 1 if every bit is known-1,
// else X.
func ReduceAnd(a Value) Value {
	s := scan(a)
	if s.anyZero {
		return boolResult(true, false)
	}
	if s.anyUnknown {
		return boolResult(false, false)
	}
	return boolResult(true, true)
}

// ReduceOr is dual to ReduceAnd: 1 if any bit is known-1, 0 if every bit is
// known-0, else X.
func ReduceOr(a Value) Value {
	s := scan(a)
	if s.anyOne {
		return boolResult(true, true)
	}
	if s.anyUnknown {
		return boolResult(false, false)
	}
	return boolResult(true, false)
}

// ReduceXor yields X if any bit is unknown, else the parity of known bits.
func ReduceXor(a Value) Value {
	s := scan(a)
	if s.anyUnknown {
		return boolResult(false, false)
	}
	parity := false
	for i := 0; i < a.Width; i++ {
		val, x, z := a.Bit(i)
		if known, one := knownBit(val, x, z); known && one {
			parity = !parity
		}
	}
	return boolResult(true, parity)
}

func invertKnown(v Value) Value {
	if v.Width != 1 {
		return v
	}
	val, x, z := v.Bit(0)
	known, one := knownBit(val, x, z)
	return boolResult(known, known && !one)
}

// ReduceNand is the bitwise complement of ReduceAnd.
func ReduceNand(a Value) Value { return invertKnown(ReduceAnd(a)) }

// ReduceNor is the bitwise complement of ReduceOr.
func ReduceNor(a Value) Value { return invertKnown(ReduceOr(a)) }

// ReduceXnor is the bitwise complement of ReduceXor.
func ReduceXnor(a Value) Value { return invertKnown(ReduceXor(a)) }

// tri is a tri-state logical value used internally by LogicalAnd/Or/Not.
type tri int

const (
	triFalse tri = iota
	triTrue
	triUnknown
)

func toTri(a Value) tri {
	s := scan(a)
	if s.anyOne {
		return triTrue
	}
	if s.anyUnknown {
		return triUnknown
	}
	return triFalse
}

func triToValue(t tri) Value {
	switch t {
	case triTrue:
		return boolResult(true, true)
	case triFalse:
		return boolResult(true, false)
	default:
		return boolResult(false, false)
	}
}

// LogicalNot implements the tri-state `!` operator.
func LogicalNot(a Value) Value {
	switch toTri(a) {
	case triTrue:
		return boolResult(true, false)
	case triFalse:
		return boolResult(true, true)
	default:
		return boolResult(false, false)
	}
}

// LogicalAnd implements `&&` with short-circuit-equivalent tri-state rules:
// known-false on either side forces a known-false result.
func LogicalAnd(a, b Value) Value {
	at, bt := toTri(a), toTri(b)
	if at == triFalse || bt == triFalse {
		return boolResult(true, false)
	}
	if at == triUnknown || bt == triUnknown {
		return boolResult(false, false)
	}
	return boolResult(true, true)
}

// LogicalOr implements `||`: known-true on either side forces a known-true
// result.
func LogicalOr(a, b Value) Value {
	at, bt := toTri(a), toTri(b)
	if at == triTrue || bt == triTrue {
		return boolResult(true, true)
	}
	if at == triUnknown || bt == triUnknown {
		return boolResult(false, false)
	}
	return boolResult(true, false)
}
