package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
)

func TestOpenSessionOnFreshTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	session, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, table.ID, session.TableID)
	assert.Nil(t, session.ClosedAt)
	assert.False(t, session.OpenedAt.IsZero())
	assert.True(t, session.IsOpen())
}

func TestOpenSessionRejectsSecondOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	_, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)

	_, err = f.sessions.OpenSession(ctx, table.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestOpenSessionUnknownTable(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.OpenSession(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "table 42 not found")
}

func TestOpenSessionAfterCloseSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	first, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)
	_, err = f.sessions.CloseSession(ctx, first.ID)
	require.NoError(t, err)

	// older closed sessions never block a new one
	for i := 0; i < 3; i++ {
		s, err := f.sessions.OpenSession(ctx, table.ID)
		require.NoError(t, err)
		_, err = f.sessions.CloseSession(ctx, s.ID)
		require.NoError(t, err)
	}

	last, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, last.ID)
}

func TestOpenSessionIsPerTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.table(t, 1)
	b := f.table(t, 2)

	_, err := f.sessions.OpenSession(ctx, a.ID)
	require.NoError(t, err)
	_, err = f.sessions.OpenSession(ctx, b.ID)
	assert.NoError(t, err)
}

func TestOpenSessionUniqueIndexReportsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	// a closed latest session that still holds the open marker passes the
	// check and leaves the unique index to reject the insert
	closedAt := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	stale := models.TableSession{
		TableID:     table.ID,
		OpenedAt:    closedAt.Add(-time.Hour),
		ClosedAt:    &closedAt,
		OpenTableID: &table.ID,
	}
	require.NoError(t, f.db.Create(&stale).Error)

	_, err := f.sessions.OpenSession(ctx, table.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "table 1 already has an open session")

	var count int64
	require.NoError(t, f.db.Model(&models.TableSession{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentOpenSessionAdmitsOne(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 1)

	const callers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.sessions.OpenSession(context.Background(), table.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, ErrConflict):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)

	var open int64
	require.NoError(t, f.db.Model(&models.TableSession{}).
		Where("table_id = ? AND closed_at IS NULL", table.ID).Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

func TestCloseSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	session, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)

	closed, err := f.sessions.CloseSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.True(t, closed.ClosedAt.After(closed.OpenedAt))
	assert.Nil(t, closed.OpenTableID)

	stored, err := f.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOpen())
	assert.Nil(t, stored.OpenTableID)
}

func TestCloseSessionTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	session, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)
	first, err := f.sessions.CloseSession(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.sessions.CloseSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// the first close is the only one that counts
	stored, err := f.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, first.ClosedAt.Equal(*stored.ClosedAt))
}

func TestCloseSessionUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.CloseSession(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSessionUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.GetSession(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSessionsPutsOpenSessionsFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t1 := f.table(t, 1)
	t2 := f.table(t, 2)
	t3 := f.table(t, 3)

	s1, err := f.sessions.OpenSession(ctx, t1.ID)
	require.NoError(t, err)
	s2, err := f.sessions.OpenSession(ctx, t2.ID)
	require.NoError(t, err)
	s3, err := f.sessions.OpenSession(ctx, t3.ID)
	require.NoError(t, err)

	// s2 closes before s1, s3 stays open
	_, err = f.sessions.CloseSession(ctx, s2.ID)
	require.NoError(t, err)
	_, err = f.sessions.CloseSession(ctx, s1.ID)
	require.NoError(t, err)

	sessions, err := f.sessions.ListSessions(ctx, SessionFilter{})
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, s3.ID, sessions[0].ID)
	assert.Equal(t, s2.ID, sessions[1].ID)
	assert.Equal(t, s1.ID, sessions[2].ID)
}

func TestListSessionsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t1 := f.table(t, 1)
	t2 := f.table(t, 2)

	old, err := f.sessions.OpenSession(ctx, t1.ID)
	require.NoError(t, err)
	_, err = f.sessions.CloseSession(ctx, old.ID)
	require.NoError(t, err)
	current, err := f.sessions.OpenSession(ctx, t1.ID)
	require.NoError(t, err)
	other, err := f.sessions.OpenSession(ctx, t2.ID)
	require.NoError(t, err)

	byTable, err := f.sessions.ListSessions(ctx, SessionFilter{TableID: &t1.ID})
	require.NoError(t, err)
	require.Len(t, byTable, 2)
	assert.Equal(t, current.ID, byTable[0].ID)
	assert.Equal(t, old.ID, byTable[1].ID)

	open, err := f.sessions.ListSessions(ctx, SessionFilter{Status: SessionStatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, current.ID, open[0].ID)
	assert.Equal(t, other.ID, open[1].ID)

	closed, err := f.sessions.ListSessions(ctx, SessionFilter{Status: SessionStatusClosed})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, old.ID, closed[0].ID)

	_, err = f.sessions.ListSessions(ctx, SessionFilter{Status: "paid"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListSessionsEmpty(t *testing.T) {
	f := newFixture(t)

	sessions, err := f.sessions.ListSessions(context.Background(), SessionFilter{})
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestOpenSessionForTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)

	_, err := f.sessions.OpenSessionForTable(ctx, table.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	opened, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)

	found, err := f.sessions.OpenSessionForTable(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, found.ID)

	_, err = f.sessions.CloseSession(ctx, opened.ID)
	require.NoError(t, err)
	_, err = f.sessions.OpenSessionForTable(ctx, table.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.sessions.OpenSessionForTable(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	table := f.table(t, 1)
	product, err := f.products.Create(ctx, "Soup", money("4.50"))
	require.NoError(t, err)

	session, err := f.sessions.OpenSession(ctx, table.ID)
	require.NoError(t, err)
	order, err := f.orders.PlaceOrder(ctx, session.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = f.sessions.CloseSession(ctx, session.ID)
	require.NoError(t, err)

	// rejected operations leave no trace
	_, err = f.sessions.CloseSession(ctx, session.ID)
	require.Error(t, err)
	_, err = f.orders.PlaceOrder(ctx, session.ID, product.ID, 1)
	require.Error(t, err)

	entries, err := f.sessions.Activity(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.ActionOpen, entries[0].Action)
	assert.Equal(t, models.EntityTableSession, entries[0].Entity)
	assert.Equal(t, models.ActionPlace, entries[1].Action)
	assert.Equal(t, models.EntityOrder, entries[1].Entity)
	assert.Equal(t, order.ID, entries[1].RecordID)
	assert.Equal(t, models.ActionClose, entries[2].Action)

	_, err = f.sessions.Activity(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
