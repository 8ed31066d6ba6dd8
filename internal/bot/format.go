package bot

import "strings"

var tagsToRemove = []string{"<html>", "</html>", "<body>", "</body>", "<p>", "</p>", "<ul>", "</ul>"}

// PrepareMessage makes model output safe for a plain-text chat message:
// stray HTML tags are stripped, list items become dash lines, sentences are
// broken onto their own lines, and the result is truncated to maxChars.
func PrepareMessage(text string, maxChars int) string {
	text = strings.ReplaceAll(text, "<li>", "\n- ")
	text = strings.ReplaceAll(text, "</li>", "")
	for _, tag := range tagsToRemove {
		text = strings.ReplaceAll(text, tag, "")
	}

	text = strings.ReplaceAll(text, "&", "")
	text = strings.ReplaceAll(text, "<", "")
	text = strings.ReplaceAll(text, ">", "")
	text = strings.ReplaceAll(text, "- ", "\n-  ")
	text = strings.ReplaceAll(text, ". ", ".\n")

	// Truncate on runes so multi-byte text (Hebrew summaries) is not split
	// mid-character.
	runes := []rune(text)
	if len(runes) > maxChars {
		if maxChars > 3 {
			return string(runes[:maxChars-3]) + "..."
		}
		return string(runes[:maxChars])
	}
	return text
}
