package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl time.Duration) *SessionManager {
	t.Helper()
	stopCh := make(chan struct{})
	t.Cleanup(func() { close(stopCh) })
	return NewSessionManager(ttl, stopCh)
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	m := newTestManager(t, time.Minute)

	s := m.Create(1, nodeSelectPet)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, int64(1), s.UserID)
	assert.Equal(t, nodeSelectPet, s.Current)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestSessionManager_UniqueIDs(t *testing.T) {
	m := newTestManager(t, time.Minute)

	a := m.Create(1, nodeSelectPet)
	b := m.Create(1, nodeSelectPet)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Len())
}

func TestSessionManager_GetUnknown(t *testing.T) {
	m := newTestManager(t, time.Minute)

	_, err := m.Get("nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_ExpiredSessionGone(t *testing.T) {
	m := newTestManager(t, time.Minute)

	base := time.Now()
	m.now = func() time.Time { return base }
	s := m.Create(1, nodeSelectPet)

	// Сдвигаем часы за TTL
	m.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, err := m.Get(s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, m.Len())
}

func TestSessionManager_GetProlongsLifetime(t *testing.T) {
	m := newTestManager(t, time.Minute)

	base := time.Now()
	m.now = func() time.Time { return base }
	s := m.Create(1, nodeSelectPet)

	// Активность за полминуты до истечения продлевает сессию
	m.now = func() time.Time { return base.Add(30 * time.Second) }
	_, err := m.Get(s.ID)
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(80 * time.Second) }
	_, err = m.Get(s.ID)
	require.NoError(t, err)
}

func TestSessionManager_SweepRemovesStale(t *testing.T) {
	m := newTestManager(t, time.Minute)

	base := time.Now()
	m.now = func() time.Time { return base }
	m.Create(1, nodeSelectPet)
	m.Create(2, nodeSelectPet)

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	fresh := m.Create(3, nodeSelectPet)

	m.sweep()

	assert.Equal(t, 1, m.Len())
	_, err := m.Get(fresh.ID)
	require.NoError(t, err)
}

func TestSessionManager_ZeroTTLFallsBackToDefault(t *testing.T) {
	// Нулевое время жизни не валит тикер зачистки
	m := newTestManager(t, 0)

	assert.Equal(t, defaultSessionTTL, m.ttl)

	s := m.Create(1, nodeSelectPet)
	_, err := m.Get(s.ID)
	require.NoError(t, err)
}

func TestSessionManager_Delete(t *testing.T) {
	m := newTestManager(t, time.Minute)

	s := m.Create(1, nodeSelectPet)
	require.NoError(t, m.Delete(s.ID))

	_, err := m.Get(s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.ErrorIs(t, m.Delete(s.ID), ErrSessionNotFound)
}
