// Command sudoku generates puzzles offline, without the server.
package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/jozef-javorsky-dodo/sudoku-server/internal/sudoku"
)

var log = logrus.New()

var (
	difficultyFlag = flag.String("difficulty", "medium", "easy|medium|hard|expert|master")
	countFlag      = flag.Int("count", 1, "number of puzzles to generate")
	seedFlag       = flag.Uint64("seed", 0, "rng seed (0 picks a random one)")
	solutionsFlag  = flag.Bool("solutions", false, "print solutions alongside puzzles")
	logFileFlag    = flag.String("log-file", "", "also log to a rotating file")
	verboseFlag    = flag.Bool("v", false, "debug logging")
)

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if *verboseFlag {
		log.SetLevel(logrus.DebugLevel)
	}

	if *logFileFlag == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   *logFileFlag,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create rotating log file hook: ", err)
	}
	log.AddHook(hook)
}

type generated struct {
	puzzle   sudoku.Grid
	solution sudoku.Grid
}

func main() {
	flag.Parse()
	setupLogging()

	difficulty, err := sudoku.ParseDifficulty(*difficultyFlag)
	if err != nil {
		log.Fatal(err)
	}

	count := *countFlag
	if count < 1 {
		log.Fatal("count must be positive")
	}

	seed := *seedFlag
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}

	log.WithFields(logrus.Fields{
		"difficulty": difficulty,
		"count":      count,
		"seed":       seed,
	}).Debug("generating")

	start := time.Now()

	// each worker owns its rng; concurrent generations must not share
	// an entropy source
	results := make([]generated, count)
	var g errgroup.Group
	g.SetLimit(4)
	for i := range count {
		g.Go(func() error {
			rnd := rand.New(rand.NewPCG(seed, uint64(i)))
			puzzle, solution, err := sudoku.Generate(difficulty, rnd)
			if err != nil {
				return fmt.Errorf("puzzle %d: %w", i, err)
			}
			results[i] = generated{puzzle, solution}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"count":    count,
		"duration": time.Since(start),
	}).Info("done")

	for i, r := range results {
		fmt.Printf("puzzle %d (%s, %d givens)\n%s",
			i+1, difficulty, r.puzzle.FilledCount(), r.puzzle.String())
		if *solutionsFlag {
			fmt.Printf("solution %d\n%s", i+1, r.solution.String())
		}
		fmt.Println()
	}
}
