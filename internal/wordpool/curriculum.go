package wordpool

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidCurriculum is returned when a curriculum violates its load-time invariants.
var ErrInvalidCurriculum = errors.New("invalid curriculum")

// Curriculum is the read-only mapping from level to day buckets, loaded once at startup.
type Curriculum struct {
	Version string
	levels  map[string]Level
}

// NewCurriculum normalizes and validates levels and builds a curriculum.
// Buckets are sorted by day, bucket levels are filled in, and TotalDays defaults
// to the highest day number.
func NewCurriculum(version string, levels []Level) (*Curriculum, error) {
	byID := make(map[string]Level, len(levels))
	for _, level := range levels {
		if _, ok := byID[level.ID]; ok {
			return nil, fmt.Errorf("%w: duplicated level %q", ErrInvalidCurriculum, level.ID)
		}
		level = normalizeLevel(level)
		if err := validateLevel(level); err != nil {
			return nil, err
		}
		byID[level.ID] = level
	}
	return &Curriculum{
		Version: version,
		levels:  byID,
	}, nil
}

func normalizeLevel(level Level) Level {
	days := make([]DayBucket, len(level.Days))
	copy(days, level.Days)
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})
	maxDay := 0
	for i := range days {
		days[i].Level = level.ID
		if days[i].Day > maxDay {
			maxDay = days[i].Day
		}
	}
	level.Days = days
	if level.TotalDays == 0 {
		level.TotalDays = maxDay
	}
	return level
}

// Level returns the level with the given id.
func (c *Curriculum) Level(id string) (Level, bool) {
	level, ok := c.levels[id]
	return level, ok
}

// LevelIDs returns all level ids sorted.
func (c *Curriculum) LevelIDs() []string {
	ids := make([]string, 0, len(c.levels))
	for id := range c.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Bucket returns the bucket for (level, day).
func (c *Curriculum) Bucket(levelID string, day int) (DayBucket, bool) {
	level, ok := c.levels[levelID]
	if !ok {
		return DayBucket{}, false
	}
	return level.Bucket(day)
}

// Item returns an item of a level by id.
func (c *Curriculum) Item(levelID, itemID string) (VocabItem, bool) {
	level, ok := c.levels[levelID]
	if !ok {
		return VocabItem{}, false
	}
	item, _, ok := level.Item(itemID)
	return item, ok
}
