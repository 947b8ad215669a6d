package main

// typewriter reveals text a few runes per tick.
type typewriter struct {
	text  []rune
	shown int
}

func newTypewriter(text string) typewriter {
	return typewriter{text: []rune(text)}
}

// Advance reveals up to n more runes and reports whether any remain.
func (t *typewriter) Advance(n int) bool {
	t.shown = min(t.shown+n, len(t.text))
	return !t.Done()
}

func (t *typewriter) Skip() { t.shown = len(t.text) }

func (t typewriter) Done() bool { return t.shown >= len(t.text) }

func (t typewriter) Visible() string { return string(t.text[:t.shown]) }
