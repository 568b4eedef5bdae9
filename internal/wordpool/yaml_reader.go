package wordpool

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// YAMLReader reads one level per YAML file from a directory.
type YAMLReader struct {
	directory string
}

// NewYAMLReader creates a new YAMLReader.
func NewYAMLReader(directory string) *YAMLReader {
	return &YAMLReader{directory: directory}
}

// ReadLevels walks the directory and decodes every .yml/.yaml file as a Level.
// Files are read in lexical path order.
func (r *YAMLReader) ReadLevels() ([]Level, error) {
	var paths []string
	err := filepath.Walk(r.directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext == ".yml" || ext == ".yaml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", r.directory, err)
	}
	sort.Strings(paths)

	levels := make([]Level, 0, len(paths))
	for _, path := range paths {
		level, err := readYamlFile[Level](path)
		if err != nil {
			return nil, fmt.Errorf("readYamlFile(%s) > %w", path, err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

// WriteLevel writes a level as YAML. It is used to export an XLSX curriculum.
func WriteLevel(path string, level Level) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(level); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode(%s)> %w", path, err)
	}
	return encoder.Close()
}
