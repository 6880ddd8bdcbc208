package blob

import (
	"fmt"
	"strconv"
	"strings"
)

// Signature identifies a trained color (1..7), or a color code:
// an ordered sequence of such colors packed as octal digits.
type Signature uint16

// Color codes carry at most five octal digits, the most significant at bit 12.
const (
	maxCodeDigits = 5
	topDigitShift = 12
)

// IsColorCode reports whether the signature packs more than one color.
func (s Signature) IsColorCode() bool {
	return s > MaxSignature
}

// Digits decomposes the signature into its octal digits, most significant
// first. Leading zero groups are skipped. A plain signature yields one digit.
func (s Signature) Digits() []int {
	var digits []int
	started := false
	for shift := topDigitShift; shift >= 0; shift -= 3 {
		d := int(s>>shift) & 0x07
		if d > 0 {
			started = true
		}
		if started {
			digits = append(digits, d)
		}
	}
	return digits
}

// String renders each octal digit as a decimal digit, e.g. color code 035 is "35".
func (s Signature) String() string {
	var sb strings.Builder
	for _, d := range s.Digits() {
		sb.WriteString(strconv.Itoa(d))
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// ColorCode packs a sequence of signatures into one color code signature.
func ColorCode(digits ...int) (Signature, error) {
	if len(digits) == 0 || len(digits) > maxCodeDigits {
		return 0, fmt.Errorf("color code needs 1 to %d signatures, got %d", maxCodeDigits, len(digits))
	}
	var s Signature
	for _, d := range digits {
		if err := CheckSignature(d); err != nil {
			return 0, err
		}
		s = s<<3 | Signature(d)
	}
	return s, nil
}

// ParseSignature accepts either a decimal signature ("3") or a color code
// written as its digits with a "cc" prefix ("cc35").
func ParseSignature(text string) (Signature, error) {
	if rest, ok := strings.CutPrefix(strings.ToLower(text), "cc"); ok {
		digits := make([]int, 0, len(rest))
		for _, r := range rest {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid color code %q", text)
			}
			digits = append(digits, int(r-'0'))
		}
		return ColorCode(digits...)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid signature %q: %w", text, err)
	}
	if err := CheckSignature(n); err != nil {
		return 0, err
	}
	return Signature(n), nil
}
