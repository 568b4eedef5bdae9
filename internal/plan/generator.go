// Package plan re-partitions the not yet memorized part of a level into a custom schedule.
package plan

import (
	"errors"
	"fmt"
	"sort"

	"github.com/at-ishikawa/vocadays/internal/progress"
	"github.com/at-ishikawa/vocadays/internal/random"
	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

var (
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrInvalidItemsPerDay = errors.New("items per day must be positive")
	// ErrEmptyPool means every item of the level is memorized. It is the normal
	// terminal state of a course, not a fault.
	ErrEmptyPool = errors.New("no items remain to be planned")
)

// Plan maps 1-based plan days to item ids. Days without items are omitted.
type Plan struct {
	Level       string           `yaml:"level"`
	ItemsPerDay int              `yaml:"items_per_day"`
	Schedule    map[int][]string `yaml:"schedule"`
}

// Days returns the scheduled day numbers in order.
func (p Plan) Days() []int {
	days := make([]int, 0, len(p.Schedule))
	for day := range p.Schedule {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Covered returns the number of scheduled items.
func (p Plan) Covered() int {
	count := 0
	for _, ids := range p.Schedule {
		count += len(ids)
	}
	return count
}

// Uncovered returns how many of remaining items a partial-coverage plan leaves out.
func Uncovered(p Plan, remaining int) int {
	return max(remaining-p.Covered(), 0)
}

// ItemsPerDayFor spreads remaining items evenly over durationDays.
func ItemsPerDayFor(remaining, durationDays int) int {
	if durationDays <= 0 {
		return 0
	}
	return (remaining + durationDays - 1) / durationDays
}

// Generator creates plans for the levels of a curriculum.
type Generator struct {
	levels progress.LevelSource
}

func NewGenerator(levels progress.LevelSource) *Generator {
	return &Generator{levels: levels}
}

// Remaining returns the level's items whose ids are not in memorized, in pool order.
func (g *Generator) Remaining(levelID string, memorized map[string]struct{}) ([]wordpool.VocabItem, error) {
	level, ok := g.levels.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown level %q", progress.ErrInvalidKey, levelID)
	}
	return remaining(level, memorized), nil
}

func remaining(level wordpool.Level, memorized map[string]struct{}) []wordpool.VocabItem {
	var items []wordpool.VocabItem
	for _, item := range level.Pool() {
		if _, ok := memorized[item.ID]; ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Seed returns the shuffle seed of a level: its configured seed, or one derived from its id.
func Seed(level wordpool.Level) int64 {
	if level.Seed != 0 {
		return level.Seed
	}
	return random.SeedFromString(level.ID)
}

// CreatePlan shuffles the remaining pool with the level's seed and assigns plan day d
// (1-based) the slice [(d-1)*itemsPerDay, d*itemsPerDay). The result only depends on
// the arguments, so the same call always yields the same schedule.
func (g *Generator) CreatePlan(levelID string, durationDays int, memorized map[string]struct{}, itemsPerDay int) (Plan, error) {
	if durationDays <= 0 {
		return Plan{}, fmt.Errorf("%w: %d", ErrInvalidDuration, durationDays)
	}
	if itemsPerDay <= 0 {
		return Plan{}, fmt.Errorf("%w: %d", ErrInvalidItemsPerDay, itemsPerDay)
	}
	level, ok := g.levels.Level(levelID)
	if !ok {
		return Plan{}, fmt.Errorf("%w: unknown level %q", progress.ErrInvalidKey, levelID)
	}

	items := remaining(level, memorized)
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	random.Shuffle(random.New(Seed(level)), ids)

	schedule := make(map[int][]string)
	for d := 0; d < durationDays; d++ {
		start := d * itemsPerDay
		if start >= len(ids) {
			break
		}
		end := min(start+itemsPerDay, len(ids))
		schedule[d+1] = append([]string(nil), ids[start:end]...)
	}

	return Plan{
		Level:       levelID,
		ItemsPerDay: itemsPerDay,
		Schedule:    schedule,
	}, nil
}
