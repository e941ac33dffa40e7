package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/reference"
	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

func TestResolveAppliesZoneFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines_by_stop.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"03001": {"lines": [], "zones": ["AUTT"]},
		"03002": {"lines": [], "zones": ["AUTU"]},
		"03003": {"lines": [], "zones": ["AUTU"]}
	}`), 0o644))
	tbl, err := reference.Load(path)
	require.NoError(t, err)

	api, store := newFixture()
	api.monitors["03001"] = []transit.MonitorEntry{pass("G01")}
	r := New(api, store, tbl)

	sess := session.New(1)
	sess.Zones = []string{"T"}

	res := r.ResolveText(context.Background(), sess, "via")
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "03001", res.StopCode)
}
