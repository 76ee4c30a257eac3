// FILE: cmd/puzzle-cli/main.go

// Package main implements an interactive browser for the puzzle database.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"puzzlekit"
	"puzzlekit/internal/config"
	"puzzlekit/internal/service"

	"github.com/chzyer/readline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	svc, err := service.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}
	defer svc.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Cyan + "puzzles> " + Reset,
		HistoryFile:     ".puzzle_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", Red, err.Error(), Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Puzzle Browser%s\n", Cyan, Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		if err := execute(svc, line); err != nil {
			fmt.Printf("%s%s%s\n", Red, err.Error(), Reset)
		}
	}
}

func execute(svc *service.Service, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "random":
		return cmdRandom(svc, args)
	case "id":
		return cmdByID(svc, args)
	case "themes":
		return cmdThemes(svc)
	case "stats":
		return cmdStats(svc)
	case "export":
		return cmdExport(svc, args)
	case "path":
		return cmdPath(svc, args)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func printHelp() {
	fmt.Print(`Commands:
  random [N] [themes=a,b] [rating=MIN:MAX] [pop=MIN:MAX]
        show N random puzzles matching the filters (default 1)
  id <PuzzleId>
        show one puzzle by identifier
  themes
        list every known theme tag
  stats
        show rating/popularity ranges and table columns
  export <file> [N] [themes=...] [rating=MIN:MAX] [pop=MIN:MAX]
        write matching puzzles to a CSV file (with header)
  path <dbfile>
        switch to another puzzle database file
  help  show this help
  exit  quit
`)
}

func cmdRandom(svc *service.Service, args []string) error {
	filter, err := parseFilter(args)
	if err != nil {
		return err
	}

	puzzles, err := svc.Random(filter)
	if err != nil {
		return err
	}
	if len(puzzles) == 0 {
		fmt.Printf("%sNo puzzles match%s\n", Yellow, Reset)
		return nil
	}
	for i := range puzzles {
		printPuzzle(&puzzles[i])
	}
	return nil
}

func cmdByID(svc *service.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: id <PuzzleId>")
	}
	puzzle, err := svc.ByID(args[0])
	if err != nil {
		return err
	}
	if puzzle == nil {
		fmt.Printf("%sNo puzzle with id %s%s\n", Yellow, args[0], Reset)
		return nil
	}
	printPuzzle(puzzle)
	return nil
}

func cmdThemes(svc *service.Service) error {
	themes, err := svc.Themes()
	if err != nil {
		return err
	}
	fmt.Printf("%s%d themes:%s %s\n", Green, len(themes), Reset, strings.Join(themes, " "))
	return nil
}

func cmdStats(svc *service.Service) error {
	stats, err := svc.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("%sRating:%s     %d .. %d\n", Green, Reset, stats.Rating.Min, stats.Rating.Max)
	fmt.Printf("%sPopularity:%s %d .. %d\n", Green, Reset, stats.Popularity.Min, stats.Popularity.Max)
	fmt.Printf("%sColumns:%s    %s\n", Green, Reset, strings.Join(stats.Attributes, " "))
	return nil
}

func cmdExport(svc *service.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: export <file> [N] [filters]")
	}
	filter, err := parseFilter(args[1:])
	if err != nil {
		return err
	}

	n, err := svc.Export(filter, args[0], true)
	if err != nil {
		return err
	}
	fmt.Printf("%sWrote %d puzzles to %s%s\n", Green, n, args[0], Reset)
	return nil
}

func cmdPath(svc *service.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: path <dbfile>")
	}
	if err := svc.SetPath(args[0]); err != nil {
		return err
	}
	fmt.Printf("%sUsing database %s%s\n", Green, args[0], Reset)
	return nil
}

// parseFilter reads [N] [themes=a,b] [rating=MIN:MAX] [pop=MIN:MAX] tokens.
func parseFilter(args []string) (puzzlekit.Filter, error) {
	var filter puzzlekit.Filter

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "themes="):
			for _, t := range strings.Split(strings.TrimPrefix(arg, "themes="), ",") {
				if t != "" {
					filter.Themes = append(filter.Themes, t)
				}
			}
		case strings.HasPrefix(arg, "rating="):
			r, err := parseRange(strings.TrimPrefix(arg, "rating="))
			if err != nil {
				return filter, fmt.Errorf("rating: %w", err)
			}
			filter.RatingRange = r
		case strings.HasPrefix(arg, "pop="):
			r, err := parseRange(strings.TrimPrefix(arg, "pop="))
			if err != nil {
				return filter, fmt.Errorf("pop: %w", err)
			}
			filter.PopularityRange = r
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return filter, fmt.Errorf("unrecognized argument %q", arg)
			}
			filter.Count = n
		}
	}

	return filter, nil
}

// parseRange reads MIN:MAX. Colon-separated so negative popularity bounds
// parse cleanly.
func parseRange(s string) (*puzzlekit.Range, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected MIN:MAX, got %q", s)
	}
	min, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("bad minimum %q", parts[0])
	}
	max, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("bad maximum %q", parts[1])
	}
	return &puzzlekit.Range{Min: min, Max: max}, nil
}

func printPuzzle(p *puzzlekit.Puzzle) {
	fmt.Printf("%s%s%s  rating %d (±%d)  popularity %d  plays %d\n",
		Magenta, p.PuzzleID, Reset, p.Rating, p.RatingDeviation, p.Popularity, p.NbPlays)
	fmt.Printf("  %sFEN:%s    %s\n", Blue, Reset, p.FEN)
	fmt.Printf("  %sMoves:%s  %s\n", Blue, Reset, p.Moves)
	if p.Themes != "" {
		fmt.Printf("  %sThemes:%s %s\n", Blue, Reset, p.Themes)
	}
	if p.OpeningTags != "" {
		fmt.Printf("  %sOpening:%s %s\n", Blue, Reset, p.OpeningTags)
	}
	fmt.Printf("  %sGame:%s   %s\n", Blue, Reset, p.GameURL)
}
