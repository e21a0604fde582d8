/*
 * vericore - Four-state select, concat, and misc operators.
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

// BitSelect returns the single bit at idx (0 = LSB).
func BitSelect(v Value, idx int) Value {
	r := New(1)
	if idx < 0 || idx >= v.Width {
		setBit(r.X, 0, true)
		return r
	}
	val, x, z := v.Bit(idx)
	setBit(r.Val, 0, val)
	setBit(r.X, 0, x)
	setBit(r.Z, 0, z)
	return r
}

// PartSelect returns bits [msb:lsb] inclusive, msb >= lsb.
func PartSelect(v Value, msb, lsb int) Value {
	width := msb - lsb + 1
	r := New(width)
	for i := 0; i < width; i++ {
		src := lsb + i
		if src < 0 || src >= v.Width {
			setBit(r.X, i, true)
			continue
		}
		val, x, z := v.Bit(src)
		setBit(r.Val, i, val)
		setBit(r.X, i, x)
		setBit(r.Z, i, z)
	}
	return r
}

// IndexedRange implements `base[start +: width]` (increasing=true) or
// `base[start -: width]` (increasing=false).
func IndexedRange(v Value, start, width int, increasing bool) Value {
	if increasing {
		return PartSelect(v, start+width-1, start)
	}
	return PartSelect(v, start, start-width+1)
}

// Concat concatenates parts MSB-first: parts[0] occupies the highest bits.
func Concat(parts []Value) Value {
	total := 0
	for _, p := range parts {
		total += p.Width
	}
	r := New(total)
	pos := total
	for _, p := range parts {
		pos -= p.Width
		for i := 0; i < p.Width; i++ {
			val, x, z := p.Bit(i)
			setBit(r.Val, pos+i, val)
			setBit(r.X, pos+i, x)
			setBit(r.Z, pos+i, z)
		}
	}
	return r
}

// Replicate implements `{count{v}}`.
func Replicate(count int, v Value) Value {
	if count <= 0 {
		return New(0)
	}
	parts := make([]Value, count)
	for i := range parts {
		parts[i] = v
	}
	return Concat(parts)
}

// Ternary implements `cond ? t : f`. An unknown condition produces the
// bitwise merge of the two branches: bits where both agree and are known
// pass through; every other bit becomes X.
func Ternary(cond, t, f Value, width int) Value {
	switch toTri(cond) {
	case triTrue:
		return t.Extend(width, false)
	case triFalse:
		return f.Extend(width, false)
	default:
		te := t.Extend(width, false)
		fe := f.Extend(width, false)
		r := New(width)
		for i := 0; i < width; i++ {
			tv, tx, tz := te.Bit(i)
			fv, fx, fz := fe.Bit(i)
			tKnown, tOne := knownBit(tv, tx, tz)
			fKnown, fOne := knownBit(fv, fx, fz)
			if tKnown && fKnown && tOne == fOne {
				setBit(r.Val, i, tOne)
			} else {
				setBit(r.X, i, true)
			}
		}
		return r
	}
}

// Clog2 implements `$clog2`: the ceiling of log2 of the known unsigned
// value, with $clog2(0) == 0 and $clog2(1) == 0 matching the reference
// implementation's convention (original_source/src/core/elaboration.cc).
func Clog2(v Value, resultWidth int) Value {
	if v.HasUnknown() {
		return AllX(resultWidth)
	}
	u := v.AsUint64()
	n := 0
	cap := uint64(1)
	for cap < u {
		cap <<= 1
		n++
	}
	return Value64(uint64(n), resultWidth)
}

// Bits implements `$bits`: the declared width of an expression, returned
// as a plain known value (never unknown, a static property).
func Bits(width, resultWidth int) Value {
	return Value64(uint64(width), resultWidth)
}
