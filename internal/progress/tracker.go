// Package progress tracks the per-day study state of each level.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

var (
	// ErrInvalidKey is returned for an unknown level or a day outside 1..TotalDays.
	ErrInvalidKey = errors.New("invalid level or day")
	// ErrInvalidStatus is returned for a status other than the three known ones.
	ErrInvalidStatus = errors.New("invalid status")
)

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus converts a user supplied status.
func ParseStatus(value string) (Status, error) {
	switch status := Status(value); status {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Record is the state of one (level, day). It is created lazily on the first study action.
type Record struct {
	Level            string    `yaml:"level"`
	Day              int       `yaml:"day"`
	Status           Status    `yaml:"status"`
	MemorizedItemIDs []string  `yaml:"memorized_item_ids,omitempty"`
	LastStudiedAt    time.Time `yaml:"last_studied_at"`
}

// IsMemorized reports whether itemID is in the memorized set.
func (r Record) IsMemorized(itemID string) bool {
	_, found := slices.BinarySearch(r.MemorizedItemIDs, itemID)
	return found
}

// Observer is notified after a mutation has been stored locally.
type Observer interface {
	RecordChanged(record Record)
	LevelReset(level string)
}

// LevelSource looks levels up. *wordpool.Curriculum implements it.
type LevelSource interface {
	Level(id string) (wordpool.Level, bool)
}

type recordKey struct {
	level string
	day   int
}

// Tracker is the progress state machine. It hydrates from the local store when it is
// created and flushes the whole collection after every mutation.
type Tracker struct {
	levels     LevelSource
	collection *store.Collection[Record]
	records    map[recordKey]Record
	observer   Observer
	now        func() time.Time
}

// NewTracker creates a tracker. observer may be nil.
func NewTracker(ctx context.Context, levels LevelSource, s store.Store, observer Observer) *Tracker {
	collection := store.NewCollection[Record](s, store.KeyProgress)
	records := make(map[recordKey]Record)
	for _, record := range collection.Load(ctx) {
		slices.Sort(record.MemorizedItemIDs)
		record.MemorizedItemIDs = slices.Compact(record.MemorizedItemIDs)
		records[recordKey{level: record.Level, day: record.Day}] = record
	}
	slog.Default().Debug("hydrated progress", "records", len(records))

	return &Tracker{
		levels:     levels,
		collection: collection,
		records:    records,
		observer:   observer,
		now:        time.Now,
	}
}

func (t *Tracker) level(levelID string) (wordpool.Level, error) {
	level, ok := t.levels.Level(levelID)
	if !ok {
		return wordpool.Level{}, fmt.Errorf("%w: unknown level %q", ErrInvalidKey, levelID)
	}
	return level, nil
}

func (t *Tracker) validate(levelID string, day int) (wordpool.Level, error) {
	level, err := t.level(levelID)
	if err != nil {
		return wordpool.Level{}, err
	}
	if !level.HasDay(day) {
		return wordpool.Level{}, fmt.Errorf("%w: day %d is outside 1..%d of level %q", ErrInvalidKey, day, level.TotalDays, levelID)
	}
	return level, nil
}

func (t *Tracker) get(levelID string, day int) Record {
	record, ok := t.records[recordKey{level: levelID, day: day}]
	if !ok {
		return Record{Level: levelID, Day: day, Status: StatusNotStarted}
	}
	return record
}

func (t *Tracker) put(ctx context.Context, record Record) error {
	key := recordKey{level: record.Level, day: record.Day}
	previous, existed := t.records[key]

	record.LastStudiedAt = t.now()
	t.records[key] = record
	if err := t.flush(ctx); err != nil {
		if existed {
			t.records[key] = previous
		} else {
			delete(t.records, key)
		}
		return err
	}
	if t.observer != nil {
		t.observer.RecordChanged(record)
	}
	return nil
}

func (t *Tracker) flush(ctx context.Context) error {
	if err := t.collection.Save(ctx, t.All()); err != nil {
		return fmt.Errorf("collection.Save() > %w", err)
	}
	return nil
}

// Status returns the status of a day, StatusNotStarted if it has no record.
func (t *Tracker) Status(levelID string, day int) (Status, error) {
	if _, err := t.validate(levelID, day); err != nil {
		return "", err
	}
	return t.get(levelID, day).Status, nil
}

// Record returns the record of a day and whether one exists.
func (t *Tracker) Record(levelID string, day int) (Record, bool) {
	record, ok := t.records[recordKey{level: levelID, day: day}]
	return record, ok
}

// SetStatus upserts the status of a day, keeping its memorized ids.
func (t *Tracker) SetStatus(ctx context.Context, levelID string, day int, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if _, err := t.validate(levelID, day); err != nil {
		return err
	}
	record := t.get(levelID, day)
	record.Status = status
	return t.put(ctx, record)
}

// MarkMemorized adds itemID to the day's memorized set. The day becomes completed when
// the set reaches totalItemsInDay, otherwise a not-started day becomes in-progress.
// A non-positive totalItemsInDay means the size of the day's bucket.
func (t *Tracker) MarkMemorized(ctx context.Context, levelID string, day int, itemID string, totalItemsInDay int) (Record, error) {
	level, err := t.validate(levelID, day)
	if err != nil {
		return Record{}, err
	}
	bucket, _ := level.Bucket(day)
	if !slices.Contains(bucket.ItemIDs(), itemID) {
		return Record{}, fmt.Errorf("%w: item %q is not in day %d of level %q", ErrInvalidKey, itemID, day, levelID)
	}
	if totalItemsInDay <= 0 {
		totalItemsInDay = len(bucket.Items)
	}

	record := t.get(levelID, day)
	if !record.IsMemorized(itemID) {
		record.MemorizedItemIDs = append(slices.Clone(record.MemorizedItemIDs), itemID)
		slices.Sort(record.MemorizedItemIDs)
	}
	if len(record.MemorizedItemIDs) >= totalItemsInDay {
		record.Status = StatusCompleted
	} else if record.Status == StatusNotStarted {
		record.Status = StatusInProgress
	}

	if err := t.put(ctx, record); err != nil {
		return Record{}, err
	}
	return t.get(levelID, day), nil
}

// UnmarkMemorized removes itemID from the day's memorized set and always moves the day
// back to in-progress, even when it was completed.
func (t *Tracker) UnmarkMemorized(ctx context.Context, levelID string, day int, itemID string) (Record, error) {
	if _, err := t.validate(levelID, day); err != nil {
		return Record{}, err
	}

	record := t.get(levelID, day)
	record.MemorizedItemIDs = slices.DeleteFunc(slices.Clone(record.MemorizedItemIDs), func(id string) bool {
		return id == itemID
	})
	record.Status = StatusInProgress

	if err := t.put(ctx, record); err != nil {
		return Record{}, err
	}
	return t.get(levelID, day), nil
}

// CompletedDays returns the number of completed days of a level.
func (t *Tracker) CompletedDays(levelID string) int {
	count := 0
	for _, record := range t.Records(levelID) {
		if record.Status == StatusCompleted {
			count++
		}
	}
	return count
}

// CompletionRate returns round(100 * completed days / TotalDays).
func (t *Tracker) CompletionRate(levelID string) (int, error) {
	level, err := t.level(levelID)
	if err != nil {
		return 0, err
	}
	if level.TotalDays == 0 {
		return 0, nil
	}
	return int(math.Round(100 * float64(t.CompletedDays(levelID)) / float64(level.TotalDays))), nil
}

// MemorizedIDs returns every memorized item id of a level.
func (t *Tracker) MemorizedIDs(levelID string) (map[string]struct{}, error) {
	if _, err := t.level(levelID); err != nil {
		return nil, err
	}
	ids := make(map[string]struct{})
	for _, record := range t.Records(levelID) {
		for _, id := range record.MemorizedItemIDs {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// Records returns the records of a level ordered by day.
func (t *Tracker) Records(levelID string) []Record {
	var records []Record
	for key, record := range t.records {
		if key.level == levelID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Day < records[j].Day
	})
	return records
}

// All returns every record ordered by level and day.
func (t *Tracker) All() []Record {
	records := make([]Record, 0, len(t.records))
	for _, record := range t.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Level != records[j].Level {
			return records[i].Level < records[j].Level
		}
		return records[i].Day < records[j].Day
	})
	return records
}

// Reset deletes every record of a level. The records are kept when the store fails.
func (t *Tracker) Reset(ctx context.Context, levelID string) error {
	if _, err := t.level(levelID); err != nil {
		return err
	}
	kept := make(map[recordKey]Record, len(t.records))
	for key, record := range t.records {
		if key.level != levelID {
			kept[key] = record
		}
	}
	previous := t.records
	t.records = kept
	if err := t.flush(ctx); err != nil {
		t.records = previous
		return err
	}
	if t.observer != nil {
		t.observer.LevelReset(levelID)
	}
	return nil
}
