// FILE: schema.go
package puzzlekit

// Puzzle represents a row in the puzzles table.
type Puzzle struct {
	PuzzleID        string `db:"PuzzleId" json:"puzzleId"`
	FEN             string `db:"FEN" json:"fen"`
	Moves           string `db:"Moves" json:"moves"`
	Rating          int    `db:"Rating" json:"rating"`
	RatingDeviation int    `db:"RatingDeviation" json:"ratingDeviation"`
	Popularity      int    `db:"Popularity" json:"popularity"`
	NbPlays         int    `db:"NbPlays" json:"nbPlays"`
	Themes          string `db:"Themes" json:"themes"` // space-separated tag tokens
	GameURL         string `db:"GameUrl" json:"gameUrl"`
	OpeningTags     string `db:"OpeningTags" json:"openingTags"`
}

// Record is a raw result row keyed by column name, as produced by Raw.
type Record map[string]any

// Columns lists the puzzles table columns in canonical order.
var Columns = []string{
	"PuzzleId",
	"FEN",
	"Moves",
	"Rating",
	"RatingDeviation",
	"Popularity",
	"NbPlays",
	"Themes",
	"GameUrl",
	"OpeningTags",
}
