package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

func loadTestTable(t *testing.T) *reference.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines_by_stop.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"02001": {
			"lines": [
				{"guideline_public_code": "1", "public_description": "ROIANO - GRETTA"},
				{"guideline_public_code": "24", "public_description": "VIA COMMERCIALE"}
			],
			"zones": ["AUTT"]
		}
	}`), 0o644))
	tbl, err := reference.Load(path)
	require.NoError(t, err)
	return tbl
}

var candidateStops = []transit.StopCandidate{
	{Code: "02001", Name: "P.ZZA OBERDAN"},
	{Code: "03001", Name: "VIA ROSSETTI"},
}

func TestCandidatesLong(t *testing.T) {
	out := Candidates(candidateStops, loadTestTable(t), VerbosityLong)

	assert.True(t, strings.HasPrefix(out, "Fermate trovate:\n\n"))
	assert.Contains(t, out, "/02001 P\\.ZZA OBERDAN")
	assert.Contains(t, out, "*1* • ROIANO \\- GRETTA")
	assert.Contains(t, out, "*24* • VIA COMMERCIALE")
	// Stop missing from the table.
	assert.Contains(t, out, "/03001 VIA ROSSETTI\n_Nessuna linea trovata_")
}

func TestCandidatesShort(t *testing.T) {
	out := Candidates(candidateStops, loadTestTable(t), VerbosityShort)

	assert.Contains(t, out, "_Linee:_ *1* \\- *24*")
	assert.NotContains(t, out, "ROIANO")
}

func TestCandidatesBare(t *testing.T) {
	out := Candidates(candidateStops, loadTestTable(t), VerbosityBare)

	assert.Contains(t, out, "/02001 P\\.ZZA OBERDAN")
	assert.NotContains(t, out, "Linee")
	assert.NotContains(t, out, "Nessuna linea")
}

func TestCandidatesEmptyTableSkipsAnnotations(t *testing.T) {
	out := Candidates(candidateStops, reference.Empty(), VerbosityLong)
	assert.NotContains(t, out, "Nessuna linea")
}

func TestCandidateMessagesPicksFirstFittingTier(t *testing.T) {
	msgs, ok := CandidateMessages(candidateStops, loadTestTable(t))
	require.True(t, ok)
	require.NotEmpty(t, msgs)
	// Short list fits the long tier outright.
	assert.Contains(t, msgs[0], "ROIANO")
}

func TestCandidateMessagesFallsBackWhenLongOverflows(t *testing.T) {
	long := make([]transit.StopCandidate, 0, 120)
	for i := 0; i < 120; i++ {
		long = append(long, transit.StopCandidate{
			Code: "02001",
			Name: strings.Repeat("FERMATA LUNGA ", 3),
		})
	}
	msgs, ok := CandidateMessages(long, loadTestTable(t))
	if ok {
		for _, m := range msgs {
			assert.LessOrEqual(t, CountEntities(m), MaxEntities)
		}
	} else {
		assert.Nil(t, msgs)
	}
}
