package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/transit"
)

const sampleTable = `{
	"02001": {
		"lines": [
			{"guideline_public_code": "1", "public_description": "ROIANO - GRETTA"},
			{"guideline_public_code": "1", "public_description": "ROIANO - GRETTA (bis)"},
			{"guideline_public_code": "24", "public_description": "VIA COMMERCIALE"}
		],
		"zones": ["AUTT"]
	},
	"07005": {
		"lines": [
			{"guideline_public_code": "G01", "public_description": "GORIZIA CENTRO"}
		],
		"zones": ["AUTG"]
	}
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines_by_stop.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))
	return path
}

func TestLoadDedupesLinesByCode(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	entry, ok := tbl.Lookup("02001")
	require.True(t, ok)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "1", entry.Lines[0].Code)
	assert.Equal(t, "ROIANO - GRETTA", entry.Lines[0].Description)
	assert.Equal(t, "24", entry.Lines[1].Code)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFilterByZones(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	stops := []transit.StopCandidate{
		{Code: "02001", Name: "P.ZZA OBERDAN"},
		{Code: "07005", Name: "GORIZIA FS"},
		{Code: "99999", Name: "UNKNOWN STOP"},
	}

	filtered := tbl.FilterByZones(stops, []string{"T"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "02001", filtered[0].Code)
	// Stops absent from the table are kept.
	assert.Equal(t, "99999", filtered[1].Code)
}

func TestFilterByZonesNoSelection(t *testing.T) {
	tbl, err := Load(writeSample(t))
	require.NoError(t, err)

	stops := []transit.StopCandidate{{Code: "02001"}, {Code: "07005"}}
	assert.Equal(t, stops, tbl.FilterByZones(stops, nil))
}

func TestFilterByZonesEmptyTable(t *testing.T) {
	stops := []transit.StopCandidate{{Code: "02001"}}
	assert.Equal(t, stops, Empty().FilterByZones(stops, []string{"T"}))
}

func TestZoneHelpers(t *testing.T) {
	assert.Equal(t, "Trieste", ZoneName("T"))
	assert.Equal(t, "X", ZoneName("X"))
	assert.True(t, IsKnownZone("U"))
	assert.False(t, IsKnownZone("Z"))
}
