package wordpool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers understood by XLSXReader. Header matching is case-insensitive.
const (
	ColumnDay           = "day"
	ColumnID            = "id"
	ColumnHeadword      = "headword"
	ColumnDefinition    = "definition"
	ColumnPronunciation = "pronunciation"
	ColumnSynonyms      = "synonyms"
	ColumnAntonyms      = "antonyms"
	ColumnExamples      = "examples"
	ColumnCategory      = "category"
)

// XLSXReader reads a workbook where each sheet is a level and each row is an item.
//
// The first row is a header. Synonyms and antonyms are comma separated; examples are
// one per line as "sentence | translation".
type XLSXReader struct {
	path string
}

// NewXLSXReader creates a new XLSXReader.
func NewXLSXReader(path string) *XLSXReader {
	return &XLSXReader{path: path}
}

// ReadLevels reads every sheet of the workbook as a level named after the sheet.
func (r *XLSXReader) ReadLevels() ([]Level, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", r.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var levels []Level
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("GetRows(%s) > %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		level, err := parseSheet(sheet, rows)
		if err != nil {
			return nil, fmt.Errorf("parseSheet(%s) > %w", sheet, err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func parseSheet(sheet string, rows [][]string) (Level, error) {
	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{ColumnDay, ColumnID, ColumnHeadword, ColumnDefinition} {
		if _, ok := columns[required]; !ok {
			return Level{}, fmt.Errorf("%w: sheet %q has no %q column", ErrInvalidCurriculum, sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	level := Level{ID: sheet}
	bucketIndex := make(map[int]int)
	for n, row := range rows[1:] {
		if cell(row, ColumnID) == "" && cell(row, ColumnHeadword) == "" {
			continue
		}
		day, err := strconv.Atoi(cell(row, ColumnDay))
		if err != nil {
			return Level{}, fmt.Errorf("%w: sheet %q row %d: invalid day %q", ErrInvalidCurriculum, sheet, n+2, cell(row, ColumnDay))
		}

		item := VocabItem{
			ID:            cell(row, ColumnID),
			Headword:      cell(row, ColumnHeadword),
			Definition:    cell(row, ColumnDefinition),
			Pronunciation: cell(row, ColumnPronunciation),
			Synonyms:      splitList(cell(row, ColumnSynonyms)),
			Antonyms:      splitList(cell(row, ColumnAntonyms)),
			Examples:      parseExamples(cell(row, ColumnExamples)),
			Category:      cell(row, ColumnCategory),
		}

		i, ok := bucketIndex[day]
		if !ok {
			i = len(level.Days)
			bucketIndex[day] = i
			level.Days = append(level.Days, DayBucket{Day: day})
		}
		level.Days[i].Items = append(level.Days[i].Items, item)
	}
	return level, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func parseExamples(value string) []Example {
	if value == "" {
		return nil
	}
	var examples []Example
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sentence, translation, _ := strings.Cut(line, "|")
		examples = append(examples, Example{
			Sentence:    strings.TrimSpace(sentence),
			Translation: strings.TrimSpace(translation),
		})
	}
	return examples
}
