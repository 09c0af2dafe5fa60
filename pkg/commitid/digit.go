package commitid

import "fmt"

// Digit is one base-4 position of a commit identifier.
type Digit uint8

const (
	Digit0 Digit = iota
	Digit1
	Digit2
	Digit3
)

// symbols maps digit values to their on-disk characters.
var symbols = [...]byte{'0', '1', '6', 'c'}

// Symbol returns the character stored on disk for the digit.
func (d Digit) Symbol() byte {
	return symbols[d&3]
}

// String implements fmt.Stringer
func (d Digit) String() string {
	return string(d.Symbol())
}

// Succ returns the next digit in the cycle 0→1→2→3→0. carry is true when
// the digit wrapped from Digit3 back to Digit0.
func (d Digit) Succ() (next Digit, carry bool) {
	if d == Digit3 {
		return Digit0, true
	}
	return d + 1, false
}

// ParseDigit maps an on-disk character back to its digit.
func ParseDigit(c byte) (Digit, error) {
	switch c {
	case '0':
		return Digit0, nil
	case '1':
		return Digit1, nil
	case '6':
		return Digit2, nil
	case 'c':
		return Digit3, nil
	default:
		return 0, fmt.Errorf("invalid commit id character %q", c)
	}
}
