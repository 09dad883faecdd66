package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRemovesBareReferenceLines(t *testing.T) {
	in := "1\n2\nQuantum tunneling is a phenomenon.\n42\nIt has no classical analogue."
	got := Normalize(in)

	for _, line := range strings.Split(got, "\n") {
		assert.False(t, strings.TrimSpace(line) != "" && isDigitsOnly(line), "digit-only line survived: %q", line)
	}
	assert.Contains(t, got, "Quantum tunneling is a phenomenon.")
	assert.Contains(t, got, "It has no classical analogue.")
}

func isDigitsOnly(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func TestNormalizeStripsCitationMarkers(t *testing.T) {
	in := "Tunneling[1] allows particles[12] to cross barriers.[3]"
	got := Normalize(in)

	assert.NotContains(t, got, "[1]")
	assert.NotContains(t, got, "[12]")
	assert.NotContains(t, got, "[3]")
	assert.Equal(t, "Tunneling allows particles to cross barriers.", got)
}

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	in := "first\n\n\n\n\nsecond"
	got := Normalize(in)

	assert.Equal(t, "first\n\nsecond", got)
}

func TestNormalizeTrimsTrailingWhitespace(t *testing.T) {
	in := "line one   \nline two\t"
	got := Normalize(in)

	assert.Equal(t, "line one\nline two", got)
}

func TestNormalizeRestylesBulletsAndEmphasis(t *testing.T) {
	in := "* first item\n+ second item\nsome __bold__ and *leaning* text"
	got := Normalize(in)

	assert.Contains(t, got, "- first item")
	assert.Contains(t, got, "- second item")
	assert.Contains(t, got, "**bold**")
	assert.Contains(t, got, "_leaning_")
	assert.NotContains(t, got, "*leaning*")
}

func TestNormalizeLeavesStrongSpansAlone(t *testing.T) {
	got := Normalize("this is **already strong** text")
	assert.Equal(t, "this is **already strong** text", got)
}

func TestNormalizePreservesCodeFences(t *testing.T) {
	in := "intro\n```go\nx := 1   \n[2]\n42\n```\noutro"
	got := Normalize(in)

	assert.Contains(t, got, "x := 1   ")
	assert.Contains(t, got, "[2]")
	assert.Contains(t, got, "\n42\n")
}

func TestNormalizePassesMathThrough(t *testing.T) {
	in := "inline $E = mc^2$ and display\n$$\\int_0^1 x\\,dx$$"
	got := Normalize(in)

	assert.Contains(t, got, "$E = mc^2$")
	assert.Contains(t, got, "$$\\int_0^1 x\\,dx$$")
}

func TestNormalizeRepairsTables(t *testing.T) {
	in := "|Name|Value|\n|---|:---:|\n|alpha|1|\n| beta |22|"
	got := Normalize(in)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Name  | Value |", lines[0])
	assert.Equal(t, "| ----- | :---: |", lines[1])
	assert.Equal(t, "| alpha | 1     |", lines[2])
	assert.Equal(t, "| beta  | 22    |", lines[3])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain paragraph",
		"Tunneling[1] happens.\n\n\n\n* item one\n+ item two",
		"|a|b|\n|-|-|\n|1|2|",
		"text\n```\nraw   block\n```\nmore",
		"__bold__ and *slanted* with $x^2$",
		"answer with trailing   \nwhitespace and\n\n\n\nblank runs",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice, "not idempotent for %q", in)
	}
}

func TestNormalizeNeverFails(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t\n"))
	assert.Equal(t, "", Normalize("1\n2\n3"))
}
