package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/forkmerge"
	"github.com/exascience/forkmerge/parallel"
	"github.com/exascience/forkmerge/sort"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := &cli.App{
		Name:      "forkmerge",
		Usage:     "sort whitespace-separated integers with a fork-join parallel merge sort",
		ArgsUsage: "[file ...]",
	}

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "cutoff",
			Usage:   "recursion depth at which no more goroutines are forked (negative: derive from GOMAXPROCS)",
			Value:   -1,
			EnvVars: []string{"FORKMERGE_CUTOFF"},
		},
		&cli.Int64Flag{
			Name:    "max-tasks",
			Usage:   "maximum number of forked sorts running at the same time (0: unbounded)",
			Value:   0,
			EnvVars: []string{"FORKMERGE_MAX_TASKS"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level",
			Value:   "info",
			EnvVars: []string{"FORKMERGE_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:  "check",
			Usage: "verify that the output is sorted before writing it",
		},
		&cli.Float64SliceFlag{
			Name:  "quantiles",
			Usage: "report these quantiles (between 0 and 1) of the sorted input on stderr",
		},
	}

	app.Action = run
	return app
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func configFromFlags(cctx *cli.Context, logger *zap.Logger) (sort.Config, error) {
	c := sort.DefaultConfig()
	c.Cutoff = forkmerge.ComputeEffectiveCutoff(cctx.Int("cutoff"))
	c.Logger = logger
	switch maxTasks := cctx.Int64("max-tasks"); {
	case maxTasks > 0:
		c.Spawner = parallel.NewBounded(maxTasks)
	case maxTasks < 0:
		return c, fmt.Errorf("invalid max-tasks: %d", maxTasks)
	}
	return c, nil
}

func run(cctx *cli.Context) error {
	logger, err := newLogger(cctx.String("log-level"))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	c, err := configFromFlags(cctx, logger)
	if err != nil {
		return err
	}
	quantiles := cctx.Float64Slice("quantiles")
	for _, p := range quantiles {
		if p < 0 || p > 1 {
			return fmt.Errorf("invalid quantile: %v", p)
		}
	}

	var a []int
	if cctx.Args().Len() == 0 {
		a, err = readInts(cctx.App.Reader, "stdin")
	} else {
		a, err = readFiles(cctx.Context, cctx.Args().Slice())
	}
	if err != nil {
		return err
	}
	logger.Info("sorting", zap.Int("n", len(a)), zap.Int("cutoff", c.Cutoff))

	c.SortInts(a)

	if cctx.Bool("check") && !sort.IntsAreSorted(a) {
		return fmt.Errorf("output of %d integers is not sorted", len(a))
	}
	if len(quantiles) > 0 && len(a) > 0 {
		reportQuantiles(cctx.App.ErrWriter, a, quantiles)
	}
	return writeInts(cctx.App.Writer, a)
}

func reportQuantiles(w io.Writer, a []int, quantiles []float64) {
	x := make([]float64, len(a))
	for i, v := range a {
		x[i] = float64(v)
	}
	for _, p := range quantiles {
		fmt.Fprintf(w, "q%v: %v\n", p, stat.Quantile(p, stat.Empirical, x, nil))
	}
}

func writeInts(w io.Writer, a []int) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, v := range a {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
