package catalog

import "strings"

// ParseLines splits a flat text block into trimmed, non-empty lines.
// Both \n and \r\n separators are accepted.
func ParseLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// JoinLines is the inverse of ParseLines for already-normalised lists.
func JoinLines(lines []string) string {
	return strings.Join(NormalizeLines(lines), "\n")
}

func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
