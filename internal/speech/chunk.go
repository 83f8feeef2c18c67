package speech

import "strings"

// DefaultMaxChunkLen is the per-request character ceiling of the speech
// synthesizer, minus headroom for the SSML envelope.
const DefaultMaxChunkLen = 2800

// Chunk splits a prepared document into synthesizer-sized pieces, cutting
// only at sentence boundaries so no pause tag or word is ever split. Pieces
// stay within maxLen except when a single sentence alone exceeds it, which
// is emitted whole as its own chunk. Concatenating the chunks with single
// spaces reproduces the input modulo collapsed whitespace. A non-positive
// maxLen selects the default.
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxChunkLen
	}

	var chunks []string
	current := ""

	for _, sentence := range splitSentences(strings.TrimSpace(text)) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if len(current)+len(sentence)+1 <= maxLen {
			current += sentence + " "
		} else {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			current = sentence + " "
		}
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}

// splitSentences cuts after sentence-ending punctuation followed by
// whitespace. A period inside a break tag's duration ("0.5s") is never
// followed by whitespace, so tags survive intact.
func splitSentences(s string) []string {
	var out []string
	start := 0
	for i := 0; i+1 < len(s); i++ {
		c := s[i]
		if (c == '.' || c == '!' || c == '?') && isSpace(s[i+1]) {
			out = append(out, s[start:i+1])
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
