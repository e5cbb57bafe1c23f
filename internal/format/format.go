package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FmtCount formats a non-negative counter with locale digit grouping.
// Example: FmtCount(1248, "ja") => "1,248"
func FmtCount(n int, lang string) string {
	if n < 0 {
		n = 0
	}
	return printer(lang).Sprintf("%d", n)
}

// FmtImageCounter renders the "current/total" badge shown over a card thumbnail.
func FmtImageCounter(current, total int) string {
	if total <= 0 {
		return "0/0"
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	return fmt.Sprintf("%d/%d", current, total)
}

func printer(lang string) *message.Printer {
	switch strings.ToLower(lang) {
	case "en":
		return message.NewPrinter(language.English)
	default:
		return message.NewPrinter(language.Japanese)
	}
}
