package llm

import (
	"fmt"
	"unicode/utf8"
)

// DefaultContextBudget caps how many characters of document text are sent
// to the remote service per call.
const DefaultContextBudget = 6000

// TruncateToBudget fits text into budget characters by keeping a head and
// tail window with an explicit marker describing how much was skipped.
// Inputs within budget are returned unchanged.
func TruncateToBudget(text string, budget int) string {
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	if len(text) <= budget {
		return text
	}

	// Both cut points back off to a rune boundary so multi-byte text is
	// never split mid-rune.
	head := runeBoundaryBefore(text, budget*2/3)
	tailStart := runeBoundaryAfter(text, len(text)-(budget-head))
	omitted := tailStart - head
	return fmt.Sprintf("%s\n[... %d characters omitted ...]\n%s",
		text[:head], omitted, text[tailStart:])
}

func runeBoundaryBefore(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func runeBoundaryAfter(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
