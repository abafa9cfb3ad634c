package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MJE43/pf-grid-verify/internal/engine"
	"github.com/MJE43/pf-grid-verify/internal/games"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("debug-deltas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.String("seed", "abc123", "revealed seed")
	mode := fs.String("mode", games.DefaultModeID, "game mode")
	from := fs.Uint64("from", 1, "first price index")
	count := fs.Int("count", 16, "number of indices")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	m, ok := games.GetMode(*mode)
	if !ok {
		fmt.Fprintf(stderr, "unknown mode %q (have %v)\n", *mode, games.ListModes())
		return 1
	}
	if *count <= 0 {
		fmt.Fprintf(stderr, "count must be positive, got %d\n", *count)
		return 1
	}

	fmt.Fprintf(stdout, "Seed digest: %s\n", engine.Digest(*seed))
	fmt.Fprintf(stdout, "Mode: %s\n\n", m.Spec().ID)
	fmt.Fprintf(stdout, "%8s  %-24s  %10s  %5s  %6s\n", "index", "message", "value", "delta", "prefix")

	var prefix int64
	values := engine.StepValues(*seed, *from, *count)
	for i, v := range values {
		index := *from + uint64(i)
		delta := m.Bucket(v)
		prefix += int64(delta)
		fmt.Fprintf(stdout, "%8d  %-24s  %10d  %+5d  %+6d\n", index, engine.StepMessage(*seed, index), v, delta, prefix)
	}
	if *from > 1 {
		fmt.Fprintln(stdout, "\nprefix column is relative to the first listed index")
	}
	return 0
}
