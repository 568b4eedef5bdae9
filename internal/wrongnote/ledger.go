// Package wrongnote keeps the per-item miss counts that drive remedial review.
package wrongnote

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/at-ishikawa/vocadays/internal/store"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

// Entry is a missed item. Item is a snapshot taken when the item was first missed.
type Entry struct {
	ItemID     string             `yaml:"item_id"`
	Item       wordpool.VocabItem `yaml:"item"`
	Level      string             `yaml:"level,omitempty"`
	Day        int                `yaml:"day,omitempty"`
	WrongCount int                `yaml:"wrong_count"`
	AddedAt    time.Time          `yaml:"added_at"`
}

// Observer is notified after a ledger change has been stored locally.
type Observer interface {
	EntryChanged(entry Entry)
	EntryRemoved(itemID string)
	Cleared()
}

// Ledger stores entries in insertion order. Entries never expire.
type Ledger struct {
	collection *store.Collection[Entry]
	observer   Observer
	now        func() time.Time
}

// NewLedger creates a ledger. observer may be nil.
func NewLedger(s store.Store, observer Observer) *Ledger {
	return &Ledger{
		collection: store.NewCollection[Entry](s, store.KeyWrongAnswers),
		observer:   observer,
		now:        time.Now,
	}
}

// RecordMiss increments the wrong count of item, inserting an entry with a count of 1
// the first time it is missed.
func (l *Ledger) RecordMiss(ctx context.Context, item wordpool.VocabItem, level string, day int) (Entry, error) {
	entries := l.collection.Load(ctx)

	var entry Entry
	index := slices.IndexFunc(entries, func(e Entry) bool { return e.ItemID == item.ID })
	if index >= 0 {
		entries[index].WrongCount++
		entry = entries[index]
	} else {
		entry = Entry{
			ItemID:     item.ID,
			Item:       item,
			Level:      level,
			Day:        day,
			WrongCount: 1,
			AddedAt:    l.now(),
		}
		entries = append(entries, entry)
	}

	if err := l.collection.Save(ctx, entries); err != nil {
		return Entry{}, fmt.Errorf("collection.Save() > %w", err)
	}
	if l.observer != nil {
		l.observer.EntryChanged(entry)
	}
	return entry, nil
}

// Remove deletes the entry of itemID. Removing a missing entry is not an error.
func (l *Ledger) Remove(ctx context.Context, itemID string) error {
	entries := l.collection.Load(ctx)
	remaining := slices.DeleteFunc(entries, func(e Entry) bool { return e.ItemID == itemID })
	if err := l.collection.Save(ctx, remaining); err != nil {
		return fmt.Errorf("collection.Save() > %w", err)
	}
	if l.observer != nil {
		l.observer.EntryRemoved(itemID)
	}
	return nil
}

// List returns the entries in the order they were first recorded.
func (l *Ledger) List(ctx context.Context) []Entry {
	return l.collection.Load(ctx)
}

// Entry returns the entry of itemID.
func (l *Ledger) Entry(ctx context.Context, itemID string) (Entry, bool) {
	for _, entry := range l.collection.Load(ctx) {
		if entry.ItemID == itemID {
			return entry, true
		}
	}
	return Entry{}, false
}

// Clear removes every entry.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.collection.Clear(ctx); err != nil {
		return fmt.Errorf("collection.Clear() > %w", err)
	}
	if l.observer != nil {
		l.observer.Cleared()
	}
	return nil
}

// ReviewItems returns up to limit item snapshots, most missed first. Ties keep insertion
// order. A non-positive limit returns every item.
func (l *Ledger) ReviewItems(ctx context.Context, limit int) []wordpool.VocabItem {
	entries := l.collection.Load(ctx)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.WrongCount - a.WrongCount
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]wordpool.VocabItem, len(entries))
	for i, entry := range entries {
		items[i] = entry.Item
	}
	return items
}
