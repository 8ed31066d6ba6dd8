package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPrepareMessage_StripsTags(t *testing.T) {
	in := "<html><body><p>First point</p><ul><li>one</li><li>two</li></ul></body></html>"
	out := PrepareMessage(in, 4096)

	if strings.ContainsAny(out, "<>&") {
		t.Fatalf("expected markup characters stripped, got %q", out)
	}
	if !strings.Contains(out, "\n-  one") {
		t.Fatalf("expected list items as dash lines, got %q", out)
	}
	if !strings.Contains(out, "\n-  two") {
		t.Fatalf("expected list items as dash lines, got %q", out)
	}
}

func TestPrepareMessage_SentenceBreaks(t *testing.T) {
	out := PrepareMessage("One sentence. Another sentence.", 4096)
	if !strings.Contains(out, "One sentence.\nAnother sentence.") {
		t.Fatalf("expected sentences on separate lines, got %q", out)
	}
}

func TestPrepareMessage_Truncates(t *testing.T) {
	long := strings.Repeat("x", 5000)
	out := PrepareMessage(long, 4096)

	if utf8.RuneCountInString(out) != 4096 {
		t.Fatalf("expected exactly 4096 chars, got %d", utf8.RuneCountInString(out))
	}
	if !strings.HasSuffix(out, "...") {
		t.Fatalf("expected ellipsis suffix on truncation")
	}
}

func TestPrepareMessage_TruncatesRunes(t *testing.T) {
	// Hebrew characters are multi-byte; truncation must not split one.
	long := strings.Repeat("ש", 100)
	out := PrepareMessage(long, 10)

	if !utf8.ValidString(out) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
	if utf8.RuneCountInString(out) != 10 {
		t.Fatalf("expected exactly 10 runes, got %d", utf8.RuneCountInString(out))
	}
}

func TestPrepareMessage_ShortTextUntouchedByLimit(t *testing.T) {
	out := PrepareMessage("short", 4096)
	if out != "short" {
		t.Fatalf("expected text unchanged, got %q", out)
	}
}

func TestPrepareMessage_TinyLimit(t *testing.T) {
	out := PrepareMessage("abcdef", 2)
	if out != "ab" {
		t.Fatalf("expected hard cut for tiny limits, got %q", out)
	}
}
