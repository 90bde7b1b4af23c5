package cxxast

import (
	"regexp"
	"strings"
)

// RawComment is a single // or /* */ comment as it appeared in a file,
// before NOLINT filtering or doc-comment association.
type RawComment struct {
	Text  string
	Range SourceRange
}

// nolintPattern matches the llvm-style suppression comments the original
// importer's ShouldKeepCommentLine drops from both doc comments and free
// comments.
var nolintPattern = regexp.MustCompile(`(?i)^\s*//\s*NOLINT`)

// ShouldKeepCommentLine reports whether a single line of comment text
// should survive into the IR, filtering NOLINT-style tool directives.
func ShouldKeepCommentLine(line string) bool {
	return !nolintPattern.MatchString(line)
}

// CleanCommentText strips comment delimiters and leading "*"/"//"
// continuation markers, then drops any line ShouldKeepCommentLine rejects.
func CleanCommentText(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimPrefix(raw, "/*!")
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")

	lines := strings.Split(raw, "\n")
	var kept []string
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		trimmed = strings.TrimPrefix(trimmed, "///")
		trimmed = strings.TrimPrefix(trimmed, "//!")
		trimmed = strings.TrimPrefix(trimmed, "//")
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimSpace(trimmed)
		if !ShouldKeepCommentLine(l) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// docCommentFor returns the comment immediately preceding loc (no blank
// line between them), or "" if none exists. Mirrors GetComment's
// "immediately preceding, on its own lines" rule from the original
// importer.
func docCommentFor(comments []RawComment, loc SourceLocation) string {
	var best *RawComment
	for i := range comments {
		c := &comments[i]
		if c.Range.End.File != loc.File {
			continue
		}
		if c.Range.End.Line != loc.Line-1 && c.Range.End.Line != loc.Line {
			continue
		}
		if c.Range.End.Line >= loc.Line {
			continue
		}
		best = c
	}
	if best == nil {
		return ""
	}
	return CleanCommentText(best.Text)
}
