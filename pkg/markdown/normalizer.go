package markdown

import (
	"regexp"
	"strings"
)

// Normalize cleans model-generated or page-scraped markdown into a single
// consistent style. It is pure and never fails; unknown constructs pass
// through untouched. Applying it twice yields the same output as applying it
// once.
//
// Passes, in order:
//  1. drop lines that are only digits (bare citation reference numbers)
//  2. strip inline [n] citation markers
//  3. trim trailing whitespace on every line
//  4. collapse runs of 3+ blank lines down to one
//  5. restyle: hyphen bullets, **strong**, _emphasis_, standardized tables
//
// Fenced code blocks are preserved byte-for-byte. Inline math ($...$) and
// display math ($$...$$) are not rewritten.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	blankRun := 0
	for _, line := range lines {
		if isFenceDelimiter(line) {
			inFence = !inFence
			blankRun = 0
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		line = strings.TrimRight(line, " \t")
		line = citationMarkerRe.ReplaceAllString(line, "")
		line = strings.TrimRight(line, " \t")

		if digitLineRe.MatchString(line) {
			continue
		}

		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blankRun = 0

		out = append(out, restyleLine(line))
	}

	out = repairTables(out)

	// No leading/trailing blank padding.
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n")
}

var (
	digitLineRe      = regexp.MustCompile(`^\s*\d+\s*$`)
	citationMarkerRe = regexp.MustCompile(`\[\d+\]`)
	bulletRe         = regexp.MustCompile(`^(\s*)[*+]\s+`)
	strongUnderRe    = regexp.MustCompile(`__([^_]+)__`)
	strongStarRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emphasisStarRe   = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	separatorCellRe  = regexp.MustCompile(`^:?-+:?$`)
)

func isFenceDelimiter(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// restyleLine applies the bullet and emphasis conventions to one line of
// prose. Strong spans are shielded while single-asterisk emphasis is
// rewritten, since RE2 has no lookbehind.
func restyleLine(line string) string {
	line = bulletRe.ReplaceAllString(line, "${1}- ")
	line = strongUnderRe.ReplaceAllString(line, "**$1**")

	const shield = "\x00strong\x00"
	var spans []string
	line = strongStarRe.ReplaceAllStringFunc(line, func(m string) string {
		spans = append(spans, m)
		return shield
	})
	line = emphasisStarRe.ReplaceAllString(line, "_${1}_")
	for _, s := range spans {
		line = strings.Replace(line, shield, s, 1)
	}
	return line
}

// repairTables rewrites every GFM table block with trimmed, width-padded
// cells and a normalized separator row. Alignment colons survive.
func repairTables(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	for i := 0; i < len(lines); i++ {
		if isFenceDelimiter(lines[i]) {
			inFence = !inFence
		}
		if inFence || !isTableHeader(lines, i) {
			out = append(out, lines[i])
			continue
		}

		end := i + 1
		for end < len(lines) && isTableRow(lines[end]) {
			end++
		}
		out = append(out, formatTable(lines[i:end])...)
		i = end - 1
	}
	return out
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed[1:], "|")
}

func isTableHeader(lines []string, i int) bool {
	return isTableRow(lines[i]) && i+1 < len(lines) && isSeparatorRow(lines[i+1])
}

func isSeparatorRow(line string) bool {
	if !isTableRow(line) {
		return false
	}
	cells := splitRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

func formatTable(block []string) []string {
	rows := make([][]string, len(block))
	cols := 0
	for i, line := range block {
		rows[i] = splitRow(line)
		if len(rows[i]) > cols {
			cols = len(rows[i])
		}
	}

	aligns := make([]alignment, cols)
	for i, c := range rows[1] {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns[i] = alignCenter
		case right:
			aligns[i] = alignRight
		case left:
			aligns[i] = alignLeft
		}
	}

	widths := make([]int, cols)
	for ri, row := range rows {
		if ri == 1 {
			continue
		}
		for ci, cell := range row {
			if len(cell) > widths[ci] {
				widths[ci] = len(cell)
			}
		}
	}
	for ci := range widths {
		if widths[ci] < 3 {
			widths[ci] = 3
		}
	}

	out := make([]string, 0, len(rows))
	for ri, row := range rows {
		cells := make([]string, cols)
		for ci := 0; ci < cols; ci++ {
			var cell string
			if ci < len(row) {
				cell = row[ci]
			}
			if ri == 1 {
				cells[ci] = separatorCell(widths[ci], aligns[ci])
			} else {
				cells[ci] = cell + strings.Repeat(" ", widths[ci]-len(cell))
			}
		}
		out = append(out, "| "+strings.Join(cells, " | ")+" |")
	}
	return out
}

func separatorCell(width int, a alignment) string {
	switch a {
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	default:
		return strings.Repeat("-", width)
	}
}
