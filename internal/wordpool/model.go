// Package wordpool provides the vocabulary curriculum: items, day buckets and levels.
package wordpool

// Example is a usage sentence with its translation.
type Example struct {
	Sentence    string `yaml:"sentence" json:"sentence" validate:"required"`
	Translation string `yaml:"translation,omitempty" json:"translation,omitempty"`
}

// VocabItem is a single word of a course. It is immutable once a curriculum is published.
type VocabItem struct {
	ID            string    `yaml:"id" json:"id" validate:"required"`
	Headword      string    `yaml:"headword" json:"headword" validate:"required"`
	Definition    string    `yaml:"definition" json:"definition" validate:"required"`
	Pronunciation string    `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
	Synonyms      []string  `yaml:"synonyms,omitempty" json:"synonyms,omitempty" validate:"dive,required"`
	Antonyms      []string  `yaml:"antonyms,omitempty" json:"antonyms,omitempty" validate:"dive,required"`
	Examples      []Example `yaml:"examples,omitempty" json:"examples,omitempty" validate:"dive"`
	Category      string    `yaml:"category,omitempty" json:"category,omitempty"`
}

// HasRelations reports whether the item has synonyms or antonyms.
func (item VocabItem) HasRelations() bool {
	return len(item.Synonyms) > 0 || len(item.Antonyms) > 0
}

// DayBucket is the fixed set of items the curriculum assigns to one day of a level.
type DayBucket struct {
	Level string      `yaml:"-" json:"level"`
	Day   int         `yaml:"day" json:"day" validate:"min=1"`
	Items []VocabItem `yaml:"items" json:"items" validate:"required,dive"`
}

// ItemIDs returns the ids of the bucket's items in order.
func (b DayBucket) ItemIDs() []string {
	ids := make([]string, len(b.Items))
	for i, item := range b.Items {
		ids[i] = item.ID
	}
	return ids
}

// Level is a course track with its own pool and day curriculum.
type Level struct {
	ID        string      `yaml:"level" json:"level" validate:"required"`
	Name      string      `yaml:"name,omitempty" json:"name,omitempty"`
	TotalDays int         `yaml:"total_days,omitempty" json:"total_days,omitempty" validate:"gte=0"`
	Seed      int64       `yaml:"seed,omitempty" json:"seed,omitempty"`
	Days      []DayBucket `yaml:"days" json:"days" validate:"required,dive"`
}

// Pool returns every item of the level in day order.
func (l Level) Pool() []VocabItem {
	var pool []VocabItem
	for _, bucket := range l.Days {
		pool = append(pool, bucket.Items...)
	}
	return pool
}

// Bucket returns the bucket of the given day.
func (l Level) Bucket(day int) (DayBucket, bool) {
	for _, bucket := range l.Days {
		if bucket.Day == day {
			return bucket, true
		}
	}
	return DayBucket{}, false
}

// Item looks an item up by id together with the day it belongs to.
func (l Level) Item(id string) (VocabItem, int, bool) {
	for _, bucket := range l.Days {
		for _, item := range bucket.Items {
			if item.ID == id {
				return item, bucket.Day, true
			}
		}
	}
	return VocabItem{}, 0, false
}

// HasDay reports whether day is within the level's 1..TotalDays range.
func (l Level) HasDay(day int) bool {
	return day >= 1 && day <= l.TotalDays
}

// DisplayName returns Name if set, otherwise the id.
func (l Level) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}
