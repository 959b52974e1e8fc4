package economy

import "strings"

const fallbackFiller = "func main() {}\n"

// Filler is the text the player "types". It hands out runes in order and
// wraps around at the end, so the same keystrokes always produce the same code.
type Filler struct {
	text []rune
	pos  int
}

// NewFiller creates a filler over text. Carriage returns are dropped.
func NewFiller(text string) *Filler {
	text = strings.ReplaceAll(text, "\r", "")
	if strings.TrimSpace(text) == "" {
		text = fallbackFiller
	}
	return &Filler{text: []rune(text)}
}

// Take returns the next n runes and how many newlines they contain.
func (f *Filler) Take(n int) (string, int) {
	if n <= 0 {
		return "", 0
	}
	var b strings.Builder
	b.Grow(n)
	newlines := 0
	for range n {
		r := f.text[f.pos]
		f.pos = (f.pos + 1) % len(f.text)
		if r == '\n' {
			newlines++
		}
		b.WriteRune(r)
	}
	return b.String(), newlines
}

// Position returns the offset of the next rune.
func (f *Filler) Position() int {
	return f.pos
}
