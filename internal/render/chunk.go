package render

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Platform limits for a single message. Formatting beyond the entity ceiling
// is silently dropped by the platform with no error, so the chunker treats
// it as a hard cap.
const (
	// MaxTextLength is the maximum message length in characters.
	MaxTextLength = 4096
	// MaxEntities is the maximum number of markup entities parsed per message.
	MaxEntities = 100
)

// ContinuationMarker closes every non-final chunk. It contains exactly one
// markup entity, which the chunker accounts for when splitting.
const ContinuationMarker = "\n\n⇓ _prosegue nel prossimo messaggio_ ⇓"

// span is a half-open byte range [start, end) covering one markup entity.
type span struct {
	start int
	end   int
}

// entitySpans locates the MarkdownV2 entities the platform parses out of a
// message: paired unescaped bold/italic markers and command tokens.
func entitySpans(msg string) []span {
	var spans []span
	prev := rune(0)
	for i := 0; i < len(msg); {
		r, size := utf8.DecodeRuneInString(msg[i:])
		switch r {
		case '\\':
			// Skip the escaped character.
			_, next := utf8.DecodeRuneInString(msg[i+size:])
			prev = 0
			i += size + next
			continue
		case '*', '_':
			if end, ok := closingMarker(msg, i+size, r); ok {
				spans = append(spans, span{start: i, end: end})
				prev = r
				i = end
				continue
			}
		case '/':
			if i == 0 || prev == '\n' || unicode.IsSpace(prev) {
				end := commandEnd(msg, i+size)
				if end > i+size {
					spans = append(spans, span{start: i, end: end})
					prev = '/'
					i = end
					continue
				}
			}
		}
		prev = r
		i += size
	}
	return spans
}

// closingMarker finds the end of the entity opened by marker at from,
// honoring backslash escapes. The second result is false when the marker is
// unbalanced, in which case it forms no entity.
func closingMarker(msg string, from int, marker rune) (int, bool) {
	for i := from; i < len(msg); {
		r, size := utf8.DecodeRuneInString(msg[i:])
		if r == '\\' {
			_, next := utf8.DecodeRuneInString(msg[i+size:])
			i += size + next
			continue
		}
		if r == marker {
			return i + size, true
		}
		i += size
	}
	return 0, false
}

func commandEnd(msg string, from int) int {
	i := from
	for i < len(msg) {
		r, size := utf8.DecodeRuneInString(msg[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += size
	}
	return i
}

// CountEntities reports how many markup entities the platform would parse
// out of the message.
func CountEntities(msg string) int {
	return len(entitySpans(msg))
}

// Chunk splits a formatted message into pieces that each stay within the
// platform entity cap. A message under the cap comes back unchanged as a
// single-element slice; oversized messages are cut at paragraph boundaries
// before the first entity that would overflow, with a continuation marker
// closing every piece but the last. Chunking an already-chunked piece is a
// no-op, and no cut ever lands inside an entity.
func Chunk(msg string) []string {
	return chunkWithin(msg, MaxEntities)
}

func chunkWithin(msg string, maxEntities int) []string {
	spans := entitySpans(msg)
	if len(spans) <= maxEntities {
		return []string{msg}
	}

	// Keep at most maxEntities-1 entities in this piece, reserving one for
	// the continuation marker.
	offending := spans[maxEntities-1].start
	cut := lastParagraphBreak(msg, offending, spans)
	if cut <= 0 {
		cut = offending
	}
	if cut <= 0 {
		return []string{msg}
	}

	first := msg[:cut] + ContinuationMarker
	rest := strings.TrimLeft(msg[cut:], "\n")
	return append([]string{first}, chunkWithin(rest, maxEntities)...)
}

// lastParagraphBreak finds the last double newline before limit that does
// not fall inside an entity.
func lastParagraphBreak(msg string, limit int, spans []span) int {
	idx := strings.LastIndex(msg[:limit], "\n\n")
	for idx >= 0 && insideSpan(idx, spans) {
		idx = strings.LastIndex(msg[:idx], "\n\n")
	}
	return idx
}

func insideSpan(pos int, spans []span) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}
