package pnt

import "strconv"

const (
	// MaxDecimalScale is the largest number of fractional digits a
	// decimal can carry, matching the .NET decimal range.
	MaxDecimalScale = 28

	decimalScaleShift = 16
	decimalScaleMask  = 0x00FF0000
	decimalSignMask   = 0x80000000
)

// Decimal is a 128-bit exact decimal in the .NET decimal.GetBits layout:
// a 96-bit unsigned integer in Lo/Mid/Hi plus a flags word carrying the
// scale in bits 16-23 and the sign in bit 31. The remaining flag bits are
// unused and must be zero.
type Decimal struct {
	Lo    uint32
	Mid   uint32
	Hi    uint32
	Flags uint32
}

// NewDecimal builds a decimal from its 96-bit integer parts, a scale
// (number of fractional digits, 0-28) and a sign.
func NewDecimal(lo, mid, hi uint32, scale uint8, negative bool) (Decimal, error) {
	if scale > MaxDecimalScale {
		return Decimal{}, ErrInvalidScale
	}
	flags := uint32(scale) << decimalScaleShift
	if negative {
		flags |= decimalSignMask
	}
	return Decimal{Lo: lo, Mid: mid, Hi: hi, Flags: flags}, nil
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() uint8 {
	return uint8((d.Flags & decimalScaleMask) >> decimalScaleShift)
}

// Negative reports whether the value is negative.
func (d Decimal) Negative() bool {
	return d.Flags&decimalSignMask != 0
}

// IsZero reports whether the 96-bit integer part is zero, regardless of
// scale and sign.
func (d Decimal) IsZero() bool {
	return d.Lo == 0 && d.Mid == 0 && d.Hi == 0
}

// String renders the exact decimal value, e.g. "-123.450". The output
// keeps trailing fractional zeros: scale is part of the value.
func (d Decimal) String() string {
	// Render the 96-bit integer by repeated division with 1e9, collecting
	// nine digits per round. Word order is most significant first.
	var (
		words  = [3]uint32{d.Hi, d.Mid, d.Lo}
		digits string
	)
	for {
		var rem uint64
		zero := true
		for i := range words {
			cur := rem<<32 | uint64(words[i])
			words[i] = uint32(cur / 1_000_000_000)
			rem = cur % 1_000_000_000
			if words[i] != 0 {
				zero = false
			}
		}
		if zero {
			digits = strconv.FormatUint(rem, 10) + digits
			break
		}
		// Interior chunks are zero-padded to nine digits.
		chunk := strconv.FormatUint(rem, 10)
		digits = "000000000"[len(chunk):] + chunk + digits
	}

	scale := int(d.Scale())
	if scale > 0 {
		for len(digits) <= scale {
			digits = "0" + digits
		}
		point := len(digits) - scale
		digits = digits[:point] + "." + digits[point:]
	}
	if d.Negative() && !d.IsZero() {
		digits = "-" + digits
	}
	return digits
}
