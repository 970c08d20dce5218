package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/domain"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entryAt(id string, at time.Time, severity domain.Severity) Entry {
	return Entry{
		ID:        id,
		Operation: domain.OperationCommit,
		Path:      "/wc/a/b/c.txt",
		Severity:  severity,
		Message:   "Committed c.txt",
		StartedAt: at,
		Duration:  1500 * time.Millisecond,
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)
	base := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, entryAt("one", base, domain.SeverityInfo)))
	recovered := entryAt("two", base.Add(time.Minute), domain.SeverityInfo)
	recovered.Paths = []string{"/wc/a", "/wc/a/b", "/wc/a/b/c.txt"}
	recovered.Recovered = true
	require.NoError(t, s.Record(ctx, recovered))
	require.NoError(t, s.Record(ctx, entryAt("three", base.Add(2*time.Minute), domain.SeverityError)))

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "three", entries[0].ID)
	assert.False(t, entries[0].OK())
	assert.Nil(t, entries[0].Paths)

	assert.Equal(t, "two", entries[1].ID)
	assert.True(t, entries[1].OK())
	assert.True(t, entries[1].Recovered)
	assert.Equal(t, recovered.Paths, entries[1].Paths)
	assert.Equal(t, domain.OperationCommit, entries[1].Operation)
	assert.Equal(t, base.Add(time.Minute), entries[1].StartedAt)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)
}

func TestStore_RecordReplacesSameID(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, entryAt("id", at, domain.SeverityError)))
	require.NoError(t, s.Record(ctx, entryAt("id", at, domain.SeverityInfo)))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].OK())
}

func TestStore_RecentOrdersWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)
	base := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, entryAt("early", base.Add(500*time.Millisecond), domain.SeverityInfo)))
	require.NoError(t, s.Record(ctx, entryAt("late", base.Add(510*time.Millisecond), domain.SeverityInfo)))

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "late", entries[0].ID)
	assert.Equal(t, base.Add(500*time.Millisecond), entries[1].StartedAt)
}

func TestStore_RecentNonPositiveLimit(t *testing.T) {
	entries, err := newMemoryStore(t).Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RecentHugeLimit(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)
	base := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(ctx, entryAt("only", base, domain.SeverityInfo)))

	entries, err := s.Recent(ctx, 1<<40)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "only", entries[0].ID)
}

func TestOpen_CreatesFileAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, entryAt("kept", time.Now().UTC(), domain.SeverityInfo)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].ID)
}

func TestEntryFromReport(t *testing.T) {
	start := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	r := domain.Report{
		ID:         "abc",
		Operation:  domain.OperationAdd,
		Path:       "/wc/x.txt",
		Paths:      []string{"/wc/x.txt"},
		Message:    domain.Message{Severity: domain.SeverityInfo, Text: "Added x.txt"},
		StartedAt:  start,
		FinishedAt: start.Add(250 * time.Millisecond),
	}

	e := EntryFromReport(r)
	assert.Equal(t, "abc", e.ID)
	assert.Equal(t, domain.OperationAdd, e.Operation)
	assert.Equal(t, "Added x.txt", e.Message)
	assert.Equal(t, 250*time.Millisecond, e.Duration)
	assert.True(t, e.OK())
}
