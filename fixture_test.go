// FILE: fixture_test.go
package puzzlekit

import (
	"database/sql"
	"path/filepath"
	"testing"
)

const testSchema = `
CREATE TABLE puzzles (
	PuzzleId TEXT PRIMARY KEY,
	FEN TEXT NOT NULL,
	Moves TEXT NOT NULL,
	Rating INTEGER NOT NULL,
	RatingDeviation INTEGER NOT NULL,
	Popularity INTEGER NOT NULL,
	NbPlays INTEGER NOT NULL,
	Themes TEXT NOT NULL,
	GameUrl TEXT NOT NULL,
	OpeningTags TEXT NOT NULL
);`

// seedPuzzles returns a small fixture population with known rating and
// popularity extremes.
func seedPuzzles() []Puzzle {
	return []Puzzle{
		{PuzzleID: "00001", FEN: "6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", Moves: "d1d8", Rating: 629, RatingDeviation: 75, Popularity: 95, NbPlays: 1200, Themes: "mateIn1 short backRankMate", GameURL: "https://lichess.org/a1b2c3d4#31"},
		{PuzzleID: "00002", FEN: "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4", Moves: "f3e5 c6e5", Rating: 917, RatingDeviation: 80, Popularity: 80, NbPlays: 640, Themes: "fork middlegame", GameURL: "https://lichess.org/e5f6g7h8#12", OpeningTags: "Italian_Game"},
		{PuzzleID: "00003", FEN: "8/5pk1/6p1/8/8/6P1/5PK1/8 w - - 0 40", Moves: "f2f4 g7f6", Rating: 800, RatingDeviation: 90, Popularity: -10, NbPlays: 55, Themes: "endgame pin", GameURL: "https://lichess.org/i9j0k1l2#79"},
		{PuzzleID: "00004", FEN: "r3k2r/ppp2ppp/8/4q3/8/2N5/PPP2PPP/R2QK2R b KQkq - 0 12", Moves: "e5e2 d1e2", Rating: 1093, RatingDeviation: 85, Popularity: 100, NbPlays: 2100, Themes: "mateIn2 long", GameURL: "https://lichess.org/m3n4o5p6#24", OpeningTags: "Sicilian_Defense"},
		{PuzzleID: "00005", FEN: "rnb1kbnr/pp1ppppp/8/q1p5/4P3/2N5/PPPP1PPP/R1BQKBNR w KQkq - 2 3", Moves: "c3d5 a5d8", Rating: 1858, RatingDeviation: 70, Popularity: 60, NbPlays: 310, Themes: "sacrifice crushing", GameURL: "https://lichess.org/q7r8s9t0#5"},
		{PuzzleID: "00006", FEN: "4r1k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 30", Moves: "e1e8", Rating: 1000, RatingDeviation: 95, Popularity: 90, NbPlays: 860, Themes: "", GameURL: "https://lichess.org/u1v2w3x4#59"},
	}
}

// createTestDB writes a puzzles database into a temp dir and returns its path.
func createTestDB(t *testing.T, puzzles []Puzzle) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "puzzles.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("Failed to create fixture schema: %v", err)
	}
	for _, p := range puzzles {
		_, err := db.Exec(
			"INSERT INTO puzzles VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.PuzzleID, p.FEN, p.Moves,
			p.Rating, p.RatingDeviation, p.Popularity, p.NbPlays,
			p.Themes, p.GameURL, p.OpeningTags,
		)
		if err != nil {
			t.Fatalf("Failed to insert fixture puzzle %s: %v", p.PuzzleID, err)
		}
	}
	return path
}

// newTestKit builds a kit bound to a fixture database.
func newTestKit(t *testing.T, puzzles []Puzzle) *Kit {
	t.Helper()

	kit := New()
	if err := kit.Source().SetPath(createTestDB(t, puzzles)); err != nil {
		t.Fatalf("SetPath failed: %v", err)
	}
	t.Cleanup(func() { kit.Close() })
	return kit
}
