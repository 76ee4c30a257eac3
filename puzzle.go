// FILE: puzzle.go

// Package puzzlekit provides programmatic access to the lichess chess puzzle
// database: random puzzles filtered by theme, rating and popularity, direct
// lookups by identifier, theme enumeration, dataset statistics and CSV
// export. The database file is fetched once into the user's home directory
// on first use, or supplied explicitly via Source.SetPath.
package puzzlekit

import (
	"database/sql"
	"fmt"
	"strings"
)

const selectColumns = "PuzzleId, FEN, Moves, Rating, RatingDeviation, Popularity, NbPlays, Themes, GameUrl, OpeningTags"

// Kit executes puzzle queries against the database owned by its Source.
type Kit struct {
	src *Source
}

// NewKit creates a kit over an existing source.
func NewKit(src *Source) *Kit {
	return &Kit{src: src}
}

// New creates a kit with its own source.
func New(opts ...Option) *Kit {
	return NewKit(NewSource(opts...))
}

// Source returns the source owning the kit's connections.
func (k *Kit) Source() *Source {
	return k.src
}

// Close releases every connection held by the kit's source.
func (k *Kit) Close() error {
	return k.src.CloseAll()
}

// Random returns up to f.Count puzzles sampled uniformly without replacement
// from the population matching f. It always returns a slice, even for a
// single puzzle, and returns the whole population (a short result, no error)
// when fewer than f.Count puzzles match.
func (k *Kit) Random(f Filter) ([]Puzzle, error) {
	if err := f.check(); err != nil {
		return nil, err
	}

	db, err := k.src.Conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + selectColumns + " FROM puzzles WHERE 1=1"
	var args []any

	if len(f.Themes) > 0 {
		clauses := make([]string, len(f.Themes))
		for i, theme := range f.Themes {
			clauses[i] = "Themes LIKE ?"
			args = append(args, "%"+theme+"%")
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}
	if f.RatingRange != nil {
		query += " AND Rating BETWEEN ? AND ?"
		args = append(args, f.RatingRange.Min, f.RatingRange.Max)
	}
	if f.PopularityRange != nil {
		query += " AND Popularity BETWEEN ? AND ?"
		args = append(args, f.PopularityRange.Min, f.PopularityRange.Max)
	}

	query += " ORDER BY RANDOM() LIMIT ?"
	args = append(args, f.Count)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	var puzzles []Puzzle
	for rows.Next() {
		var p Puzzle
		err := rows.Scan(
			&p.PuzzleID, &p.FEN, &p.Moves,
			&p.Rating, &p.RatingDeviation, &p.Popularity, &p.NbPlays,
			&p.Themes, &p.GameURL, &p.OpeningTags,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan failed: %w", ErrQuery, err)
		}
		puzzles = append(puzzles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return puzzles, nil
}

// ByID looks up one puzzle by its unique identifier. A missing identifier is
// not an error: the result is (nil, nil).
func (k *Kit) ByID(id string) (*Puzzle, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: puzzle id must not be empty", ErrInvalidArgument)
	}

	db, err := k.src.Conn()
	if err != nil {
		return nil, err
	}

	var p Puzzle
	row := db.QueryRow("SELECT "+selectColumns+" FROM puzzles WHERE PuzzleId = ?", id)
	err = row.Scan(
		&p.PuzzleID, &p.FEN, &p.Moves,
		&p.Rating, &p.RatingDeviation, &p.Popularity, &p.NbPlays,
		&p.Themes, &p.GameURL, &p.OpeningTags,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &p, nil
}

// Raw executes a caller-supplied query with bound parameters and returns the
// resulting rows keyed by column name.
//
// Only the bound parameters are safe against injection; the query string
// itself is passed to the engine verbatim. This is an escape hatch for
// advanced callers, not a general-purpose query builder — never interpolate
// untrusted input into the query text.
func (k *Kit) Raw(query string, args ...any) ([]Record, error) {
	db, err := k.src.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scan failed: %w", ErrQuery, err)
		}

		record := make(Record, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			record[col] = v
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return records, nil
}

// AllThemes returns the union of theme tokens across the whole table.
func (k *Kit) AllThemes() (map[string]struct{}, error) {
	db, err := k.src.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT DISTINCT Themes FROM puzzles")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	themes := make(map[string]struct{})
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("%w: scan failed: %w", ErrQuery, err)
		}
		for _, token := range strings.Fields(value) {
			themes[token] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return themes, nil
}

// RatingRange returns the minimum and maximum Rating over the whole table,
// ignoring any filters used elsewhere.
func (k *Kit) RatingRange() (Range, error) {
	return k.columnRange("Rating")
}

// PopularityRange returns the minimum and maximum Popularity over the whole
// table, ignoring any filters used elsewhere.
func (k *Kit) PopularityRange() (Range, error) {
	return k.columnRange("Popularity")
}

func (k *Kit) columnRange(column string) (Range, error) {
	db, err := k.src.Conn()
	if err != nil {
		return Range{}, err
	}

	var min, max sql.NullInt64
	row := db.QueryRow("SELECT MIN(" + column + "), MAX(" + column + ") FROM puzzles")
	if err := row.Scan(&min, &max); err != nil {
		return Range{}, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if !min.Valid || !max.Valid {
		return Range{}, fmt.Errorf("%w: puzzles table is empty", ErrQuery)
	}
	return Range{Min: int(min.Int64), Max: int(max.Int64)}, nil
}

// Attributes returns the set of column names defined on the puzzles table.
func (k *Kit) Attributes() (map[string]struct{}, error) {
	db, err := k.src.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("PRAGMA table_info(puzzles)")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	defer rows.Close()

	attrs := make(map[string]struct{})
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("%w: scan failed: %w", ErrQuery, err)
		}
		attrs[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return attrs, nil
}
