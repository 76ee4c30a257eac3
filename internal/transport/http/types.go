// FILE: internal/transport/http/types.go
package http

import (
	"puzzlekit"
	"puzzlekit/internal/service"
)

// Error codes
const (
	ErrPuzzleNotFound = "PUZZLE_NOT_FOUND"
	ErrInvalidRequest = "INVALID_REQUEST"
	ErrDatasetMissing = "DATASET_MISSING"
	ErrInternalError  = "INTERNAL_ERROR"
)

// Response types

type PuzzlesResponse struct {
	Puzzles []puzzlekit.Puzzle `json:"puzzles"`
	Count   int                `json:"count"`
}

type ThemesResponse struct {
	Themes []string `json:"themes"`
	Count  int      `json:"count"`
}

type StatsResponse struct {
	Stats service.Stats `json:"stats"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
