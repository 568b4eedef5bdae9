package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_store "github.com/at-ishikawa/vocadays/internal/mocks/store"
	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/testutil"
)

var fixedNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

type recordingObserver struct {
	changed []Record
	resets  []string
}

func (o *recordingObserver) RecordChanged(record Record) { o.changed = append(o.changed, record) }
func (o *recordingObserver) LevelReset(level string) { o.resets = append(o.resets, level) }

func newTestTracker(t *testing.T, s store.Store, observer Observer) *Tracker {
	t.Helper()
	curriculum := testutil.NewCurriculum(t,
		testutil.NewLevel("toeic", 2, 10, testutil.WithTotalDays(30)),
		testutil.NewLevel("basic", 2, 2),
	)
	tracker := NewTracker(context.Background(), curriculum, s, observer)
	tracker.now = func() time.Time { return fixedNow }
	return tracker
}

func TestTracker_MarkMemorizedCompletesDay(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)

	for n := 1; n <= 9; n++ {
		_, err := tracker.MarkMemorized(ctx, "toeic", 1, testutil.ItemID("toeic", 1, n), 10)
		require.NoError(t, err)
	}
	status, err := tracker.Status("toeic", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	record, err := tracker.MarkMemorized(ctx, "toeic", 1, testutil.ItemID("toeic", 1, 10), 10)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, record.Status)
	assert.Len(t, record.MemorizedItemIDs, 10)
	assert.Equal(t, fixedNow, record.LastStudiedAt)

	rate, err := tracker.CompletionRate("toeic")
	require.NoError(t, err)
	assert.Equal(t, 3, rate)
}

func TestTracker_UnmarkForcesInProgress(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)
	first := testutil.ItemID("basic", 1, 1)
	second := testutil.ItemID("basic", 1, 2)

	_, err := tracker.MarkMemorized(ctx, "basic", 1, first, 2)
	require.NoError(t, err)
	before, _ := tracker.Record("basic", 1)

	_, err = tracker.MarkMemorized(ctx, "basic", 1, second, 2)
	require.NoError(t, err)
	status, err := tracker.Status("basic", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	after, err := tracker.UnmarkMemorized(ctx, "basic", 1, second)
	require.NoError(t, err)
	assert.Equal(t, before.MemorizedItemIDs, after.MemorizedItemIDs)
	assert.Equal(t, StatusInProgress, after.Status)

	emptied, err := tracker.UnmarkMemorized(ctx, "basic", 1, first)
	require.NoError(t, err)
	assert.Empty(t, emptied.MemorizedItemIDs)
	assert.Equal(t, StatusInProgress, emptied.Status)
}

func TestTracker_MarkMemorizedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)
	id := testutil.ItemID("basic", 2, 1)

	_, err := tracker.MarkMemorized(ctx, "basic", 2, id, 0)
	require.NoError(t, err)
	record, err := tracker.MarkMemorized(ctx, "basic", 2, id, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, record.MemorizedItemIDs)
	assert.Equal(t, StatusInProgress, record.Status)
}

func TestTracker_SetStatusKeepsMemorizedIDs(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)
	id := testutil.ItemID("basic", 1, 1)

	_, err := tracker.MarkMemorized(ctx, "basic", 1, id, 2)
	require.NoError(t, err)
	require.NoError(t, tracker.SetStatus(ctx, "basic", 1, StatusCompleted))
	require.NoError(t, tracker.SetStatus(ctx, "basic", 1, StatusCompleted))

	record, ok := tracker.Record("basic", 1)
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, record.Status)
	assert.Equal(t, []string{id}, record.MemorizedItemIDs)
}

func TestTracker_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "unknown level",
			run: func() error {
				_, err := tracker.Status("unknown", 1)
				return err
			},
			wantErr: ErrInvalidKey,
		},
		{
			name: "day zero",
			run: func() error {
				return tracker.SetStatus(ctx, "basic", 0, StatusInProgress)
			},
			wantErr: ErrInvalidKey,
		},
		{
			name: "day beyond total days",
			run: func() error {
				_, err := tracker.UnmarkMemorized(ctx, "basic", 3, "x")
				return err
			},
			wantErr: ErrInvalidKey,
		},
		{
			name: "item of another day",
			run: func() error {
				_, err := tracker.MarkMemorized(ctx, "basic", 1, testutil.ItemID("basic", 2, 1), 2)
				return err
			},
			wantErr: ErrInvalidKey,
		},
		{
			name: "unknown status",
			run: func() error {
				return tracker.SetStatus(ctx, "basic", 1, Status("paused"))
			},
			wantErr: ErrInvalidStatus,
		},
		{
			name: "completion rate of unknown level",
			run: func() error {
				_, err := tracker.CompletionRate("unknown")
				return err
			},
			wantErr: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
	assert.Empty(t, tracker.All())
}

func TestTracker_DaysWithoutBucketAreValid(t *testing.T) {
	tracker := newTestTracker(t, store.NewMemoryStore(), nil)

	status, err := tracker.Status("toeic", 30)
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, status)
}

func TestTracker_HydratesAndFlushes(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	tracker := newTestTracker(t, s, nil)

	_, err := tracker.MarkMemorized(ctx, "basic", 1, testutil.ItemID("basic", 1, 2), 2)
	require.NoError(t, err)
	require.NoError(t, tracker.SetStatus(ctx, "toeic", 5, StatusCompleted))

	reloaded := newTestTracker(t, s, nil)
	assert.Equal(t, tracker.All(), reloaded.All())

	ids, err := reloaded.MemorizedIDs("basic")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{testutil.ItemID("basic", 1, 2): {}}, ids)
}

func TestTracker_CorruptStoreStartsEmpty(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Put(context.Background(), store.KeyProgress, []byte("{not: [a list")))

	tracker := newTestTracker(t, s, nil)
	assert.Empty(t, tracker.All())
}

func TestTracker_Reset(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	tracker := newTestTracker(t, store.NewMemoryStore(), observer)

	require.NoError(t, tracker.SetStatus(ctx, "basic", 1, StatusCompleted))
	require.NoError(t, tracker.SetStatus(ctx, "basic", 2, StatusCompleted))
	require.NoError(t, tracker.SetStatus(ctx, "toeic", 1, StatusInProgress))

	require.NoError(t, tracker.Reset(ctx, "basic"))
	assert.Empty(t, tracker.Records("basic"))
	assert.Len(t, tracker.Records("toeic"), 1)
	assert.Len(t, observer.changed, 3)
	assert.Equal(t, []string{"basic"}, observer.resets)

	assert.ErrorIs(t, tracker.Reset(ctx, "unknown"), ErrInvalidKey)
}

func TestTracker_FlushError(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock_store.NewMockStore(ctrl)
	s.EXPECT().Get(gomock.Any(), store.KeyProgress).Return(nil, store.ErrNotFound)
	s.EXPECT().Put(gomock.Any(), store.KeyProgress, gomock.Any()).Return(errors.New("disk full"))

	observer := &recordingObserver{}
	tracker := newTestTracker(t, s, observer)

	err := tracker.SetStatus(context.Background(), "basic", 1, StatusInProgress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, observer.changed)
	assert.Empty(t, tracker.All())
}

func TestTracker_ResetFlushError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	s := mock_store.NewMockStore(ctrl)
	s.EXPECT().Get(gomock.Any(), store.KeyProgress).Return(nil, store.ErrNotFound)
	gomock.InOrder(
		s.EXPECT().Put(gomock.Any(), store.KeyProgress, gomock.Any()).Return(nil),
		s.EXPECT().Put(gomock.Any(), store.KeyProgress, gomock.Any()).Return(errors.New("disk full")),
	)

	observer := &recordingObserver{}
	tracker := newTestTracker(t, s, observer)
	require.NoError(t, tracker.SetStatus(ctx, "basic", 1, StatusCompleted))

	err := tracker.Reset(ctx, "basic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	status, err := tracker.Status("basic", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	assert.Len(t, tracker.Records("basic"), 1)
	assert.Empty(t, observer.resets)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got)

	_, err = ParseStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
