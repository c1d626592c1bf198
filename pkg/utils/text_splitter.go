package utils

import "strings"

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with an 'overlap' to preserve context at boundaries. Breaks
// prefer paragraph and word boundaries near the cut point so book prose
// is not sliced mid-word.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	totalLen := len(runes)

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		} else {
			end = adjustBreak(runes, i, end)
		}

		chunk := strings.TrimSpace(string(runes[i:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == totalLen {
			break
		}
	}

	return chunks
}

// adjustBreak scans backwards from the hard cut looking for a paragraph
// break, then a space, within the last tenth of the chunk. A cut that
// finds neither stays where it is rather than losing content.
func adjustBreak(runes []rune, start, end int) int {
	window := (end - start) / 10
	if window < 1 {
		return end
	}

	for i := end; i > end-window && i > start; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	for i := end; i > end-window && i > start; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return end
}
