package transcript

import "strings"

// Transcript is the ordered paragraph text of one meeting.
type Transcript struct {
	Source     string
	Paragraphs []string
}

// Text joins the paragraphs with newlines.
func (t Transcript) Text() string {
	return strings.Join(t.Paragraphs, "\n")
}

// Words counts whitespace-separated words across all paragraphs.
func (t Transcript) Words() int {
	n := 0
	for _, p := range t.Paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}
