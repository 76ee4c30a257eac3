// FILE: internal/service/service.go

// Package service wires configuration into a puzzle kit and exposes the
// operations shared by the HTTP transport and the interactive CLI.
package service

import (
	"net/http"
	"sort"

	"puzzlekit"
	"puzzlekit/internal/config"
)

// Stats aggregates whole-table dataset statistics.
type Stats struct {
	Rating     puzzlekit.Range `json:"rating"`
	Popularity puzzlekit.Range `json:"popularity"`
	Attributes []string        `json:"attributes"`
}

// Service owns one kit for the lifetime of the process.
type Service struct {
	kit *puzzlekit.Kit
}

// New builds a service from configuration. A configured DBPath must point at
// an existing file; otherwise the default location (with first-use download)
// applies.
func New(cfg *config.Config) (*Service, error) {
	opts := []puzzlekit.Option{
		puzzlekit.WithHTTPClient(&http.Client{Timeout: cfg.DownloadTimeout}),
	}
	if cfg.DownloadURL != "" {
		opts = append(opts, puzzlekit.WithDownloadURL(cfg.DownloadURL))
	}

	kit := puzzlekit.New(opts...)
	if cfg.DBPath != "" {
		if err := kit.Source().SetPath(cfg.DBPath); err != nil {
			return nil, err
		}
	}

	return &Service{kit: kit}, nil
}

// NewWithKit wraps an existing kit, used by tests.
func NewWithKit(kit *puzzlekit.Kit) *Service {
	return &Service{kit: kit}
}

// Close releases all database connections.
func (s *Service) Close() error {
	return s.kit.Close()
}

// SetPath repoints subsequent queries at another existing database file.
func (s *Service) SetPath(path string) error {
	return s.kit.Source().SetPath(path)
}

// Random returns randomly sampled puzzles matching the filter.
func (s *Service) Random(f puzzlekit.Filter) ([]puzzlekit.Puzzle, error) {
	return s.kit.Random(f)
}

// ByID returns the puzzle with the given identifier, or nil when absent.
func (s *Service) ByID(id string) (*puzzlekit.Puzzle, error) {
	return s.kit.ByID(id)
}

// Themes returns every known theme token in sorted order.
func (s *Service) Themes() ([]string, error) {
	set, err := s.kit.AllThemes()
	if err != nil {
		return nil, err
	}
	themes := make([]string, 0, len(set))
	for t := range set {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	return themes, nil
}

// Stats returns rating and popularity extremes plus the table's column
// names in sorted order.
func (s *Service) Stats() (*Stats, error) {
	rating, err := s.kit.RatingRange()
	if err != nil {
		return nil, err
	}
	popularity, err := s.kit.PopularityRange()
	if err != nil {
		return nil, err
	}
	attrSet, err := s.kit.Attributes()
	if err != nil {
		return nil, err
	}

	attrs := make([]string, 0, len(attrSet))
	for a := range attrSet {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)

	return &Stats{Rating: rating, Popularity: popularity, Attributes: attrs}, nil
}

// Export writes puzzles matching the filter to a CSV file and reports how
// many rows were written.
func (s *Service) Export(f puzzlekit.Filter, path string, header bool) (int, error) {
	puzzles, err := s.kit.Random(f)
	if err != nil {
		return 0, err
	}
	if err := puzzlekit.WritePuzzlesCSV(puzzles, path, header); err != nil {
		return 0, err
	}
	return len(puzzles), nil
}
