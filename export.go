// FILE: export.go
package puzzlekit

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// WritePuzzlesCSV serializes puzzles as UTF-8 comma-separated text at path,
// one row per puzzle in the canonical column order, with an optional header
// row. An existing file at path is truncated.
func WritePuzzlesCSV(puzzles []Puzzle, path string, header bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	w := csv.NewWriter(f)
	if header {
		if err := w.Write(Columns); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	for _, p := range puzzles {
		row := []string{
			p.PuzzleID,
			p.FEN,
			p.Moves,
			strconv.Itoa(p.Rating),
			strconv.Itoa(p.RatingDeviation),
			strconv.Itoa(p.Popularity),
			strconv.Itoa(p.NbPlays),
			p.Themes,
			p.GameURL,
			p.OpeningTags,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteRecordsCSV serializes raw records as comma-separated text. Column
// order is the sorted key set of the first record; every record must carry
// the same keys or the export fails with ErrInvalidArgument.
func WriteRecordsCSV(records []Record, path string, header bool) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records to write", ErrInvalidArgument)
	}
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("%w: record %d is nil", ErrInvalidArgument, i)
		}
	}

	columns := make([]string, 0, len(records[0]))
	for col := range records[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	w := csv.NewWriter(f)
	if header {
		if err := w.Write(columns); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	for i, r := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			v, ok := r[col]
			if !ok {
				f.Close()
				return fmt.Errorf("%w: record %d is missing column %s", ErrInvalidArgument, i, col)
			}
			row[j] = formatValue(v)
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// formatValue keeps integer columns loss-free in the CSV output.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
