package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushRecentFrontAndCap(t *testing.T) {
	s := New(1)
	for i := 0; i < MaxRecentStops+3; i++ {
		s.PushRecent(string(rune('A'+i)), "stop")
	}
	require.Len(t, s.RecentStops, MaxRecentStops)
	assert.Equal(t, string(rune('A'+MaxRecentStops+2)), s.RecentStops[0].Code)
}

func TestPushRecentMostRecentIsNoop(t *testing.T) {
	s := New(1)
	s.PushRecent("02001", "OBERDAN")
	s.PushRecent("02001", "OBERDAN")
	require.Len(t, s.RecentStops, 1)
}

func TestPushRecentMovesToFrontWithoutDuplication(t *testing.T) {
	s := New(1)
	s.PushRecent("A", "a")
	s.PushRecent("B", "b")
	s.PushRecent("C", "c")
	s.PushRecent("A", "a")

	require.Len(t, s.RecentStops, 3)
	assert.Equal(t, "A", s.RecentStops[0].Code)
	assert.Equal(t, "C", s.RecentStops[1].Code)
	assert.Equal(t, "B", s.RecentStops[2].Code)
}

func TestFavoriteNamingFlow(t *testing.T) {
	s := New(1)
	s.BeginFavoriteNaming("02001")
	assert.True(t, s.NamingFavorite())
	assert.True(t, s.IsFavorite("02001"))

	// Rejected alias leaves everything untouched.
	require.ErrorIs(t, s.CommitFavoriteName("x"), ErrNameRejected)
	assert.True(t, s.NamingFavorite())
	assert.Equal(t, "", s.FavStops["02001"])

	require.NoError(t, s.CommitFavoriteName("casa"))
	assert.False(t, s.NamingFavorite())
	assert.Equal(t, "casa", s.FavStops["02001"])
}

func TestCommitAppliesToAllPendingFavorites(t *testing.T) {
	s := New(1)
	s.FavStops = map[string]string{"02001": "casa"}
	s.BeginFavoriteNaming("03001")
	s.BeginFavoriteNaming("04001")

	require.NoError(t, s.CommitFavoriteName("lavoro"))
	assert.Equal(t, "casa", s.FavStops["02001"])
	assert.Equal(t, "lavoro", s.FavStops["03001"])
	assert.Equal(t, "lavoro", s.FavStops["04001"])
}

func TestCancelFavoriteNamingDiscardsPending(t *testing.T) {
	s := New(1)
	s.FavStops = map[string]string{"02001": "casa"}
	s.BeginFavoriteNaming("03001")

	assert.True(t, s.CancelFavoriteNaming())
	assert.False(t, s.NamingFavorite())
	assert.False(t, s.IsFavorite("03001"))
	assert.True(t, s.IsFavorite("02001"))

	// Idle cancel is a no-op.
	assert.False(t, s.CancelFavoriteNaming())
}

func TestFavoriteCodeByAlias(t *testing.T) {
	s := New(1)
	s.FavStops = map[string]string{"02001": "casa", "03001": ""}

	code, ok := s.FavoriteCodeByAlias("casa")
	require.True(t, ok)
	assert.Equal(t, "02001", code)

	// Pending favorites never match, even on the empty string.
	_, ok = s.FavoriteCodeByAlias("")
	assert.False(t, ok)
}

func TestRemoveFavorite(t *testing.T) {
	s := New(1)
	s.FavStops = map[string]string{"02001": "casa"}

	name, ok := s.RemoveFavorite("02001")
	require.True(t, ok)
	assert.Equal(t, "casa", name)
	_, ok = s.RemoveFavorite("02001")
	assert.False(t, ok)
}

func TestToggleZone(t *testing.T) {
	s := New(1)
	assert.True(t, s.ToggleZone("T"))
	assert.True(t, s.ToggleZone("U"))
	assert.False(t, s.ToggleZone("T"))
	assert.Equal(t, []string{"U"}, s.Zones)
}

func TestCloneIsDeep(t *testing.T) {
	s := New(1)
	s.FavStops = map[string]string{"02001": "casa"}
	s.PushRecent("02001", "OBERDAN")
	s.ToggleZone("T")

	c := s.Clone()
	c.FavStops["02001"] = "altro"
	c.RecentStops[0].Code = "X"
	c.Zones[0] = "U"

	assert.Equal(t, "casa", s.FavStops["02001"])
	assert.Equal(t, "02001", s.RecentStops[0].Code)
	assert.Equal(t, "T", s.Zones[0])
}
