// Package encode maps text onto a pavl tree, one character per key, and
// decodes the surviving signal back into a string.
package encode

import (
	"strings"
	"unicode"

	"github.com/e11jah/pavl"
)

// Qualities assigned by the encoders.
const (
	VowelQuality     = 0.9
	ConsonantQuality = 0.4

	DotQuality  = 0.95
	DashQuality = 0.35
)

var morse = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..", ' ': "/",
}

// PolarityFunc classifies a single character.
type PolarityFunc func(r rune) pavl.Polarity

// Vowels is the default classifier: vowels are signal, everything else noise.
func Vowels(r rune) pavl.Polarity {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return pavl.Positive
	}
	return pavl.Negative
}

// MorseCode returns the International Morse code for r; letters are case-insensitive.
func MorseCode(r rune) (string, bool) {
	code, ok := morse[unicode.ToUpper(r)]
	return code, ok
}

// MorsePolarity is positive for letters whose code holds only dots.
func MorsePolarity(r rune) pavl.Polarity {
	code, ok := MorseCode(r)
	if !ok || strings.ContainsRune(code, '-') || !strings.ContainsRune(code, '.') {
		return pavl.Negative
	}
	return pavl.Positive
}

// Message inserts every non-space character of msg at its rune index. A nil
// classify uses Vowels. It returns the number of characters inserted.
func Message(t pavl.Tree[int, string], msg string, classify PolarityFunc) int {
	if classify == nil {
		classify = Vowels
	}
	n := 0
	for i, r := range []rune(msg) {
		if unicode.IsSpace(r) {
			continue
		}
		p := classify(r)
		q := ConsonantQuality
		if p == pavl.Positive {
			q = VowelQuality
		}
		t.Insert(i, string(r), pavl.WithQuality(q), pavl.WithPolarity(p))
		n++
	}
	return n
}

// Morse inserts the upper-cased letters of name that have a Morse code,
// keyed by rune index, with MorsePolarity. Characters without a code are
// skipped but still consume their index.
func Morse(t pavl.Tree[int, string], name string) int {
	n := 0
	for i, r := range []rune(strings.ToUpper(name)) {
		if _, ok := MorseCode(r); !ok {
			continue
		}
		p := MorsePolarity(r)
		q := DashQuality
		if p == pavl.Positive {
			q = DotQuality
		}
		t.Insert(i, string(r), pavl.WithQuality(q), pavl.WithPolarity(p))
		n++
	}
	return n
}

// Decode joins the signal extracted at minQuality.
func Decode(t pavl.Tree[int, string], minQuality float64) string {
	var sb strings.Builder
	it := t.Signal(minQuality)
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			break
		}
		sb.WriteString(v)
	}
	return sb.String()
}
