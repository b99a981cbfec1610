package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetSave(t *testing.T) {
	store := NewStore(time.Hour)

	created := store.Create()
	assert.Equal(t, StatePickService, created.State)

	created.Category = "Láser"
	created.Zones = []string{"Axilas"}

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Category, "changes are not visible before Save")

	store.Save(created)
	got, err = store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Láser", got.Category)

	got.Zones[0] = "Cara"
	again, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Axilas"}, again.Zones)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	store := NewStore(30 * time.Minute)
	store.now = func() time.Time { return now }

	old := store.Create()
	now = now.Add(20 * time.Minute)
	fresh := store.Create()

	now = now.Add(15 * time.Minute)

	_, err := store.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1, store.Purge())
	assert.Equal(t, 1, store.Len())
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(0)
	s := store.Create()

	store.Delete(s.ID)

	_, err := store.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_LockReleasesEntry(t *testing.T) {
	store := NewStore(time.Hour)
	id := store.Create().ID

	unlock := store.Lock(id)

	acquired := make(chan struct{})
	released := make(chan struct{})
	go func() {
		release := store.Lock(id)
		close(acquired)
		release()
		close(released)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-acquired
	<-released

	// после последнего unlock запись о блокировке удаляется
	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Empty(t, store.locks)
}
