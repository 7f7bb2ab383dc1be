package diagram

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// boxPattern matches one node box: a bar, any non-bar text holding a type
// keyword, and a closing bar. Matches never overlap, so "│ a │ b │" is one box.
var boxPattern = regexp.MustCompile(`(?i)│[^│]*?(ingress|base|backbone)[^│]*?│`)

// SplitLines splits diagram text into lines on "\n", dropping a trailing "\r"
// from each line. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Scan finds every node box on every line and classifies it.
//
// A line qualifies only if it contains a type keyword (any case) and the box
// glyph; prose mentioning "base" without a box is ignored. Returned nodes are
// ordered by row, then by column, and carry no label yet (see [ResolveLabels]).
func Scan(lines []string, cfg Config) []PositionedNode {
	var nodes []PositionedNode
	for row, line := range lines {
		if cfg.TabWidth > 0 {
			line = expandTabs(line, cfg.TabWidth)
		}
		if !qualifies(line) {
			continue
		}
		for _, m := range boxPattern.FindAllStringIndex(line, -1) {
			start := utf8.RuneCountInString(line[:m[0]])
			nodes = append(nodes, PositionedNode{
				Node:        Node{Type: Classify(line[m[0]:m[1]])},
				ColumnStart: start,
				ColumnEnd:   start + utf8.RuneCountInString(line[m[0]:m[1]]),
				Row:         row,
			})
		}
	}
	return nodes
}

// Classify returns the type of a box by keyword precedence: ingress, then
// backbone, then base. Text with no keyword classifies as Base.
func Classify(box string) NodeType {
	lower := strings.ToLower(box)
	for _, t := range Types {
		if strings.Contains(lower, string(t)) {
			return t
		}
	}
	return Base
}

func qualifies(line string) bool {
	if !strings.Contains(line, GlyphBox) {
		return false
	}
	lower := strings.ToLower(line)
	for _, t := range Types {
		if strings.Contains(lower, string(t)) {
			return true
		}
	}
	return false
}

// expandTabs replaces each tab with spaces up to the next multiple of width,
// counting columns in runes.
func expandTabs(line string, width int) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
