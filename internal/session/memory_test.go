package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetReturnsFreshSession(t *testing.T) {
	store := NewMemoryStore()
	s, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.UserID)
	assert.False(t, s.NamingFavorite())
}

func TestMemoryStoreSaveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	s := New(42)
	s.PushRecent("02001", "OBERDAN")
	require.NoError(t, store.Save(context.Background(), s))

	// Mutating the saved value must not leak into the store.
	s.RecentStops[0].Code = "X"

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "02001", got.RecentStops[0].Code)
}

func TestMemoryStoreUpdateAborted(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")
	_, err := store.Update(context.Background(), 42, func(s *Session) error {
		s.BeginFavoriteNaming("02001")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite("02001"))
}

func TestMemoryStoreUpdateNoLostWrites(t *testing.T) {
	store := NewMemoryStore()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Update(context.Background(), 42, func(s *Session) error {
				s.ToggleZone("T")
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	// An even number of toggles cancels out.
	assert.Empty(t, got.Zones)
}
