// Package markdown converts task and note collections to and from the
// human-editable markdown files they are stored in.
//
// Encoding is canonical; decoding is total and best-effort. The files are
// edited by hand and by sync tools, so lines that do not match the grammar
// are dropped instead of rejected, and no function in this package returns
// an error.
//
// Task file:
//
//	- [ ] Buy milk
//	- [x] Call dentist #today
//
// Note file:
//
//	## 2024-03-15 09:30
//
//	First note body,
//	possibly multi-line.
//
//	## 2024-03-15 14:05
//
//	Second note.
package markdown

import "strings"

// splitLines splits content on "\n", "\r\n" and lone "\r".
func splitLines(content string) []string {
	if strings.ContainsRune(content, '\r') {
		content = strings.ReplaceAll(content, "\r\n", "\n")
		content = strings.ReplaceAll(content, "\r", "\n")
	}

	return strings.Split(content, "\n")
}

// joinWithTrailingNewline joins parts with sep and ends the result with
// exactly one newline, or returns "" when there are no parts.
func joinWithTrailingNewline(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, sep) + "\n"
}
