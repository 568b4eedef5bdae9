// Package testutil provides shared test helpers for creating config files and curriculum fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocadays/internal/wordpool"
)

// SetupTestConfig creates a minimal config file, a curriculum directory with one level
// ("basic", 3 days of 2 items) and a local data directory.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	curriculumDir := filepath.Join(tmpDir, "curriculum")
	dataDir := filepath.Join(tmpDir, "data")
	for _, d := range []string{curriculumDir, dataDir} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}
	WriteCurriculum(t, curriculumDir, NewLevel("basic", 3, 2, WithRelations()))

	configContent := fmt.Sprintf(`curriculum:
  path: %s
  version: test
storage:
  driver: file
  directory: %s
quiz:
  default_type: choice
  seed: 7
user:
  academy_id: test-academy
  user_id: test-user
`,
		curriculumDir,
		dataDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithRemote creates the config of SetupTestConfig mirrored to an HTTP remote.
func SetupTestConfigWithRemote(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("remote:\n  driver: http\n  timeout_seconds: 1\n  http:\n    base_url: %s\n    max_retry_attempts: 0\n", baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// LevelOption configures optional fields of a level fixture.
type LevelOption func(*levelConfig)

type levelConfig struct {
	totalDays int
	seed      int64
	relations bool
}

// WithTotalDays sets TotalDays of the level, which may exceed the number of day buckets.
func WithTotalDays(totalDays int) LevelOption {
	return func(cfg *levelConfig) {
		cfg.totalDays = totalDays
	}
}

// WithSeed sets the shuffle seed of the level.
func WithSeed(seed int64) LevelOption {
	return func(cfg *levelConfig) {
		cfg.seed = seed
	}
}

// WithRelations gives every item a synonym and every second item an antonym.
func WithRelations() LevelOption {
	return func(cfg *levelConfig) {
		cfg.relations = true
	}
}

// ItemID returns the id NewLevel assigns to the n-th (1-based) item of a day.
func ItemID(levelID string, day, n int) string {
	return fmt.Sprintf("%s-%d-%d", levelID, day, n)
}

// NewLevel creates a level with days buckets of itemsPerDay items each.
// Items are named after their position, e.g. headword "word1x2" for day 1 item 2.
func NewLevel(levelID string, days, itemsPerDay int, opts ...LevelOption) wordpool.Level {
	var cfg levelConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	level := wordpool.Level{
		ID:        levelID,
		Name:      "Level " + levelID,
		TotalDays: cfg.totalDays,
		Seed:      cfg.seed,
	}
	for day := 1; day <= days; day++ {
		bucket := wordpool.DayBucket{Level: levelID, Day: day}
		for n := 1; n <= itemsPerDay; n++ {
			item := wordpool.VocabItem{
				ID:         ItemID(levelID, day, n),
				Headword:   fmt.Sprintf("word%dx%d", day, n),
				Definition: fmt.Sprintf("definition %d of day %d", n, day),
			}
			if cfg.relations {
				item.Synonyms = []string{fmt.Sprintf("synonym%dx%d", day, n)}
				if n%2 == 0 {
					item.Antonyms = []string{fmt.Sprintf("antonym%dx%d", day, n)}
				}
			}
			bucket.Items = append(bucket.Items, item)
		}
		level.Days = append(level.Days, bucket)
	}
	if level.TotalDays == 0 {
		level.TotalDays = days
	}
	return level
}

// NewCurriculum builds a validated curriculum of levels.
func NewCurriculum(t *testing.T, levels ...wordpool.Level) *wordpool.Curriculum {
	t.Helper()
	curriculum, err := wordpool.NewCurriculum("test", levels)
	require.NoError(t, err)
	return curriculum
}

// WriteCurriculum writes one YAML file per level into dir.
func WriteCurriculum(t *testing.T, dir string, levels ...wordpool.Level) {
	t.Helper()
	for _, level := range levels {
		require.NoError(t, wordpool.WriteLevel(filepath.Join(dir, level.ID+".yml"), level))
	}
}
