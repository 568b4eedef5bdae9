package wordpool

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Reader reads raw levels from a curriculum source.
type Reader interface {
	ReadLevels() ([]Level, error)
}

// NewReader returns an XLSXReader for .xlsx files and a YAMLReader for anything else.
func NewReader(path string) Reader {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return NewXLSXReader(path)
	}
	return NewYAMLReader(path)
}

// Load reads and validates a curriculum.
func Load(reader Reader, version string) (*Curriculum, error) {
	levels, err := reader.ReadLevels()
	if err != nil {
		return nil, fmt.Errorf("ReadLevels() > %w", err)
	}
	curriculum, err := NewCurriculum(version, levels)
	if err != nil {
		return nil, fmt.Errorf("NewCurriculum() > %w", err)
	}
	slog.Default().Debug("loaded curriculum",
		slog.String("version", version),
		slog.Int("levels", len(levels)),
	)
	return curriculum, nil
}
