package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountEntities(t *testing.T) {
	cases := []struct {
		msg  string
		want int
	}{
		{"plain text", 0},
		{"*bold*", 1},
		{"_italic_ and *bold*", 2},
		{"/02001 P\\.ZZA OBERDAN", 1},
		{"go to /02001 now", 1},
		{"not/a/command", 0},
		{"escaped \\* star", 0},
		{"*unbalanced", 0},
		{"/02001 *STOP*\n_Linee:_ *1* \\- *24*", 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CountEntities(c.msg), "msg: %q", c.msg)
	}
}

// paragraphs builds a message of n paragraphs, each carrying three entities.
func paragraphs(n int) string {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("/%05d stop %d\n_Linee:_ *1*", i, i))
	}
	return strings.Join(parts, "\n\n")
}

func TestChunkSmallMessageUntouched(t *testing.T) {
	msg := paragraphs(5)
	assert.Equal(t, []string{msg}, Chunk(msg))
}

func TestChunkRespectsEntityCap(t *testing.T) {
	msg := paragraphs(60) // 180 entities
	chunks := Chunk(msg)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, CountEntities(c), MaxEntities, "chunk %d", i)
	}
	for _, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c, ContinuationMarker))
	}
	assert.False(t, strings.HasSuffix(chunks[len(chunks)-1], ContinuationMarker))
}

func TestChunkIdempotent(t *testing.T) {
	msg := paragraphs(60)
	for _, c := range Chunk(msg) {
		assert.Equal(t, []string{c}, Chunk(c))
	}
}

func TestChunkPreservesEveryLine(t *testing.T) {
	msg := paragraphs(60)
	var joined strings.Builder
	for _, c := range Chunk(msg) {
		joined.WriteString(strings.TrimSuffix(c, ContinuationMarker))
		joined.WriteString("\n")
	}
	for _, line := range strings.Split(msg, "\n") {
		if line == "" {
			continue
		}
		assert.Contains(t, joined.String(), line)
	}
}

func TestChunkNeverSplitsInsideEntity(t *testing.T) {
	msg := paragraphs(60)
	for _, c := range Chunk(msg) {
		stripped := strings.TrimSuffix(c, ContinuationMarker)
		// Balanced formatting markers in every piece.
		assert.Equal(t, 0, strings.Count(stripped, "*")%2, "unbalanced bold in %q", stripped)
		assert.Equal(t, 0, strings.Count(stripped, "_")%2, "unbalanced italic in %q", stripped)
	}
}
