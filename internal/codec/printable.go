package codec

import "errors"

// ErrInvalidChar is returned by PrintableCodec.Decode when an input rune is
// outside the codec's alphabet.
var ErrInvalidChar = errors.New("codec: character outside printable alphabet")

// printableAlphabet is the concatenation of printable ASCII [32,126] and the
// printable extended-ASCII range [161,255], 190 code points total.
func printableAlphabet() []rune {
	var alphabet = make([]rune, 0, (126-32+1)+(255-161+1))
	for r := rune(32); r <= 126; r++ {
		alphabet = append(alphabet, r)
	}
	for r := rune(161); r <= 255; r++ {
		alphabet = append(alphabet, r)
	}
	return alphabet
}

// PrintableCodec is BaseCodec specialized to a 190-character printable
// alphabet, so encoded output can be typed, displayed, or piped through a
// terminal without escaping.
type PrintableCodec struct {
	alphabet []rune
	charToVal map[rune]int

	digitsCache map[int]int
}

// NewPrintableCodec builds the fixed 190-symbol printable codec.
func NewPrintableCodec() *PrintableCodec {
	var alphabet = printableAlphabet()
	var charToVal = make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		charToVal[r] = i
	}

	var c = &PrintableCodec{
		alphabet:    alphabet,
		charToVal:   charToVal,
		digitsCache: make(map[int]int),
	}
	for _, length := range []int{1, 2, 4, 8, 16} {
		c.computeDigits(length)
	}
	return c
}

// Base returns the alphabet size, 190.
func (c *PrintableCodec) Base() int {
	return len(c.alphabet)
}

func (c *PrintableCodec) computeDigits(length int) int {
	return computeDigits(c.digitsCache, length, len(c.alphabet))
}

// Encode converts data into a string of printable characters.
func (c *PrintableCodec) Encode(data []byte, length int) string {
	if len(data) == 0 {
		return ""
	}

	var digits = c.computeDigits(length)
	var digitBytes = encodeBigEndianDigits(data, len(c.alphabet), digits)

	var out = make([]rune, digits)
	for i, d := range digitBytes {
		out[i] = c.alphabet[d]
	}
	return string(out)
}

// Decode converts a printable-character string back into `length` bytes.
func (c *PrintableCodec) Decode(encoded string, length int) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, nil
	}

	var digits = make([]byte, 0, len(encoded))
	for _, r := range encoded {
		var v, ok = c.charToVal[r]
		if !ok {
			return nil, ErrInvalidChar
		}
		digits = append(digits, byte(v))
	}

	return decodeDigitsBig(digits, len(c.alphabet), length), nil
}
