package keyspace

import "math/bits"

const DefaultCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator lazily enumerates every string of a fixed length over an alphabet
// in cartesian-product order, the rightmost position varying fastest.
// A Generator is single-use: once exhausted it stays exhausted.
type Generator struct {
	alphabet []rune
	length   int
	digits   []int
	word     []rune
	done     bool
}

func NewGenerator(alphabet []rune, length int) *Generator {
	g := &Generator{
		alphabet: alphabet,
		length:   length,
	}
	if len(alphabet) == 0 || length < 0 {
		g.done = true
		return g
	}
	g.digits = make([]int, length)
	g.word = make([]rune, length)
	for i := range g.word {
		g.word[i] = alphabet[0]
	}
	return g
}

func (g *Generator) Length() int {
	return g.length
}

// Size returns alphabet_size^length. The second value is false when the
// result does not fit into uint64.
func (g *Generator) Size() (uint64, bool) {
	return Size(len(g.alphabet), g.length)
}

// Next returns the next candidate, or false once the sequence is exhausted.
func (g *Generator) Next() (string, bool) {
	if g.done {
		return "", false
	}
	word := string(g.word)
	g.advance()
	return word, true
}

func (g *Generator) advance() {
	for i := g.length - 1; i >= 0; i-- {
		g.digits[i]++
		if g.digits[i] < len(g.alphabet) {
			g.word[i] = g.alphabet[g.digits[i]]
			return
		}
		g.digits[i] = 0
		g.word[i] = g.alphabet[0]
	}
	g.done = true
}

func Size(alphabetSize, length int) (uint64, bool) {
	if alphabetSize <= 0 || length < 0 {
		return 0, true
	}
	total := uint64(1)
	for n := 0; n < length; n++ {
		hi, lo := bits.Mul64(total, uint64(alphabetSize))
		if hi != 0 {
			return 0, false
		}
		total = lo
	}
	return total, true
}

// Total sums Size over every length in [minLength, maxLength].
func Total(alphabetSize, minLength, maxLength int) (uint64, bool) {
	var total uint64
	for length := minLength; length <= maxLength; length++ {
		n, ok := Size(alphabetSize, length)
		if !ok {
			return 0, false
		}
		var carry uint64
		total, carry = bits.Add64(total, n, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}
