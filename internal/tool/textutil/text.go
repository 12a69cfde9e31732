// Package textutil holds the text handling shared by the read and search tools.
package textutil

// binarySampleSize is the number of leading bytes scanned for NUL when
// classifying content. Git uses the same heuristic.
const binarySampleSize = 8000

// IsBinary reports whether content looks binary: a NUL byte in the first
// binarySampleSize bytes. UTF-16 and UTF-32 byte order marks count as text.
func IsBinary(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	sampleSize := min(len(content), binarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// SplitLines splits content on \n and \r\n, dropping the line endings.
// A trailing line ending does not produce a trailing empty line.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		switch {
		case content[i] == '\n':
			lines = append(lines, content[start:i])
			start = i + 1
		case content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n':
			lines = append(lines, content[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// TruncateLine shortens line to maxLen bytes, marking the cut.
func TruncateLine(line string, maxLen int) string {
	if maxLen <= 0 || len(line) <= maxLen {
		return line
	}
	return line[:maxLen] + "...[truncated]"
}
