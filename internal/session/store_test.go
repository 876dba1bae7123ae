package session

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DixDev1621/portfolio/internal/ui"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newKey() Key { return Key{Session: NewID(), Page: NewID()} }

func toggleExtra(st *State) bool {
	st.Disclosure.ShowExtra = !st.Disclosure.ShowExtra
	return true
}

func TestLoadUnknownPageReturnsDefaults(t *testing.T) {
	s := openStore(t)
	st, err := s.Load(context.Background(), newKey())
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestUpdateLoadAndReset(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	key := newKey()

	got, err := s.Update(ctx, key, func(st *State) bool {
		st.Navigation.MenuOpen = true
		st.Disclosure.ShowExtra = true
		return true
	})
	require.NoError(t, err)
	want := State{
		Navigation: ui.NavigationState{MenuOpen: true},
		Disclosure: ui.DisclosureState{ShowExtra: true},
	}
	assert.Equal(t, want, got)

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, want, loaded)

	require.NoError(t, s.Reset(ctx, key))
	loaded, err = s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, State{}, loaded)
}

func TestUpdateWithoutChangeWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Update(ctx, newKey(), func(*State) bool { return false })
	require.NoError(t, err)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPagesOnOneSessionAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	session := NewID()
	tabA := Key{Session: session, Page: NewID()}
	tabB := Key{Session: session, Page: NewID()}

	require.NoError(t, s.Reset(ctx, tabA))
	_, err := s.Update(ctx, tabA, toggleExtra)
	require.NoError(t, err)

	// a second tab loads the page
	require.NoError(t, s.Reset(ctx, tabB))

	got, err := s.Update(ctx, tabA, toggleExtra)
	require.NoError(t, err)
	assert.False(t, got.Disclosure.ShowExtra)

	got, err = s.Load(ctx, tabB)
	require.NoError(t, err)
	assert.Equal(t, State{}, got)
}

func TestConcurrentTogglesAreSerialised(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	key := newKey()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, key, toggleExtra)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, got.Disclosure.ShowExtra, "an even number of toggles restores the default")
}

func TestOpenFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	key := newKey()
	_, err = s.Update(ctx, key, toggleExtra)
	require.NoError(t, err)
	got, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, got.Disclosure.ShowExtra)
}

func TestCleanupRemovesIdlePages(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	require.NoError(t, s.Reset(ctx, newKey()))
	require.NoError(t, s.Reset(ctx, newKey()))

	n, err := s.Cleanup(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Cleanup(ctx, -time.Second)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID("not-a-session"))
	assert.False(t, ValidID(""))
}
