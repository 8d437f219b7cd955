package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/former/pkg/classify"
	"github.com/herohde/former/pkg/engine"
	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/render"
	"github.com/herohde/former/pkg/seed"
	"github.com/seekerror/logw"
)

var (
	width   = flag.Uint("width", 500, "Beam width (candidates retained per depth)")
	w       = flag.Uint("w", 0, "Shorthand for -width")
	threads = flag.Uint("threads", 0, "Worker goroutines (0 = number of CPUs)")
	t       = flag.Uint("t", 0, "Shorthand for -threads")
	image   = flag.String("image", "", "Classify a board from an image file instead of fetching today's seed")
	seedArg = flag.String("seed", "", "Generate a board directly from a seed string, bypassing the network fetch")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: former [options] [beam_width] [threads]

FORMER solves the color-grouping puzzle with a parallel beam search.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	ctx := context.Background()

	beamWidth := *width
	if *w != 0 {
		beamWidth = *w
	}
	maxThreads := *threads
	if *t != 0 {
		maxThreads = *t
	}
	if args := flag.Args(); len(args) > 0 {
		var err error
		beamWidth, maxThreads, err = parsePositional(args, beamWidth, maxThreads)
		if err != nil {
			flag.Usage()
			logw.Errorf(ctx, "%v", err)
			os.Exit(1)
		}
	}

	g, err := loadGrid(ctx)
	if err != nil {
		logw.Errorf(ctx, "%v", err)
		os.Exit(2)
	}

	e := engine.New(ctx, "former", engine.WithOptions(engine.Options{
		BeamWidth:  beamWidth,
		MaxThreads: maxThreads,
	}))
	logw.Infof(ctx, "%v solving:\n%v", e.Name(), render.Board(g))

	_, out, err := e.Solve(ctx, g, engine.Options{})
	if err != nil {
		logw.Errorf(ctx, "%v", err)
		os.Exit(2)
	}

	sol := <-out
	fmt.Println(render.Solution(sol))
}

// loadGrid resolves the starting board from the CLI's input modes, in
// order of precedence: an explicit seed, an image, or today's fetched seed.
// If both -seed and -image are given, -seed is used.
func loadGrid(ctx context.Context) (grid.Grid, error) {
	switch {
	case *seedArg != "":
		return seed.GenerateBoard(*seedArg), nil

	case *image != "":
		g, err := classify.FromFile(*image)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("classify %v: %w", *image, err)
		}
		return g, nil

	default:
		s, err := seed.FetchTodaySeed(ctx)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("fetch today's seed: %w", err)
		}
		return seed.GenerateBoard(s), nil
	}
}

func parsePositional(args []string, beamWidth, maxThreads uint) (uint, uint, error) {
	if len(args) > 2 {
		return 0, 0, fmt.Errorf("too many positional arguments: %v", args)
	}

	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 0 {
		return 0, 0, fmt.Errorf("invalid beam_width: %v", args[0])
	}
	beamWidth = uint(n)

	if len(args) == 2 {
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil || n < 0 {
			return 0, 0, fmt.Errorf("invalid threads: %v", args[1])
		}
		maxThreads = uint(n)
	}
	return beamWidth, maxThreads, nil
}
