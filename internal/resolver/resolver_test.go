package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dododevs/tg-tplfvg/internal/session"
	"github.com/dododevs/tg-tplfvg/internal/transit"
)

type fakeAPI struct {
	stops    map[string]*transit.StopInfo
	monitors map[string][]transit.MonitorEntry
	keyword  map[string][]transit.StopCandidate
	location []transit.StopCandidate

	searchErr  error
	monitorErr error
}

func (f *fakeAPI) SearchByKeyword(_ context.Context, query string) ([]transit.StopCandidate, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.keyword[query], nil
}

func (f *fakeAPI) SearchByLocation(context.Context, float64, float64) ([]transit.StopCandidate, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.location, nil
}

func (f *fakeAPI) StopInfo(_ context.Context, code string) (*transit.StopInfo, error) {
	return f.stops[code], nil
}

func (f *fakeAPI) Monitor(_ context.Context, code string) ([]transit.MonitorEntry, error) {
	if f.monitorErr != nil {
		return nil, f.monitorErr
	}
	return f.monitors[code], nil
}

func pass(line string) transit.MonitorEntry {
	return transit.MonitorEntry{LineCode: line, Destination: "SOMEWHERE"}
}

func newFixture() (*fakeAPI, session.Store) {
	api := &fakeAPI{
		stops: map[string]*transit.StopInfo{
			"02001": {Address: "P.ZZA OBERDAN", StopCode: "02001"},
			"01002": {Address: "VIA DEL TEATRO", StopCode: "01002"},
		},
		monitors: map[string][]transit.MonitorEntry{
			"02001": {pass("1"), pass("24")},
		},
		keyword: map[string][]transit.StopCandidate{
			"oberdan": {{Code: "02001", Name: "P.ZZA OBERDAN"}},
			"via": {
				{Code: "03001", Name: "VIA ROSSETTI"},
				{Code: "03002", Name: "VIA BATTISTI"},
				{Code: "03003", Name: "VIA GIULIA"},
			},
		},
	}
	return api, session.NewMemoryStore()
}

func TestResolveDirectCode(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "02001")
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "02001", res.StopCode)
	assert.Equal(t, "P.ZZA OBERDAN", res.StopName)
	assert.Len(t, res.Monitor, 2)
}

func TestResolveCommandStyleCode(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "/02001 extra words")
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "02001", res.StopCode)
}

func TestResolveValidCodeWithoutPassages(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "01002")
	require.Equal(t, KindNoPassages, res.Kind)
	assert.Equal(t, "01002", res.StopCode)
	assert.Equal(t, "VIA DEL TEATRO", res.StopName)
}

func TestResolveFavoriteAlias(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	sess := session.New(1)
	sess.FavStops = map[string]string{"02001": "casa"}

	res := r.ResolveText(context.Background(), sess, "casa")
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "02001", res.StopCode)
}

func TestResolveSingleKeywordHit(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "oberdan")
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "02001", res.StopCode)
	assert.Equal(t, "P.ZZA OBERDAN", res.StopName)
}

func TestResolveDisambiguation(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "via")
	require.Equal(t, KindCandidates, res.Kind)
	assert.Len(t, res.Candidates, 3)
}

func TestResolveNoMatch(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "nowhere")
	assert.Equal(t, KindNoMatch, res.Kind)
}

func TestResolveSearchUnavailable(t *testing.T) {
	api, store := newFixture()
	api.searchErr = errors.New("dial tcp: timeout")
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "nowhere")
	assert.Equal(t, KindUnavailable, res.Kind)
}

func TestResolveLocation(t *testing.T) {
	api, store := newFixture()
	api.location = []transit.StopCandidate{{Code: "02001", Name: "P.ZZA OBERDAN"}}
	r := New(api, store, nil)

	res := r.ResolveLocation(context.Background(), session.New(1), 45.65, 13.77)
	require.Equal(t, KindDirectHit, res.Kind)
	assert.Equal(t, "02001", res.StopCode)
}

func TestDirectHitRecordsRecent(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	_ = r.ResolveText(context.Background(), session.New(7), "02001")

	sess, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, sess.RecentStops, 1)
	assert.Equal(t, "02001", sess.RecentStops[0].Code)
	assert.Equal(t, "P.ZZA OBERDAN", sess.RecentStops[0].Name)
}

func TestNoPassagesDoesNotRecordRecent(t *testing.T) {
	api, store := newFixture()
	r := New(api, store, nil)

	_ = r.ResolveText(context.Background(), session.New(7), "01002")

	sess, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, sess.RecentStops)
}

func TestMonitorErrorDegradesToNoPassages(t *testing.T) {
	api, store := newFixture()
	api.monitorErr = errors.New("dial tcp: timeout")
	r := New(api, store, nil)

	res := r.ResolveText(context.Background(), session.New(1), "02001")
	assert.Equal(t, KindNoPassages, res.Kind)
}
