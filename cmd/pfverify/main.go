package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/MJE43/pf-grid-verify/internal/config"
	"github.com/MJE43/pf-grid-verify/internal/engine"
	"github.com/MJE43/pf-grid-verify/internal/report"
	"github.com/MJE43/pf-grid-verify/internal/verify"
)

const (
	exitOK                 = 0
	exitError              = 1
	exitCommitmentMismatch = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pfverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	requestPath := fs.String("request", "-", "verification request JSON file, or - for stdin")
	batch := fs.Bool("batch", false, "request file holds a JSON array of requests")
	format := fs.String("format", "text", "output format: text or json")
	envFile := fs.String("env", ".env", "optional .env file")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *showVersion {
		info := verify.GetVersionInfo()
		fmt.Fprintf(stdout, "pfverify %s (commit %s, built %s)\n", info.EngineVersion, info.GitCommit, info.BuildTime)
		return exitOK
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitError
	}

	logger := log.New(stderr, "[VERIFY] ", log.LstdFlags)

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Printf("config_error error=%q", err)
		return exitError
	}

	opts := verify.Options{
		MaxIndex: cfg.MaxIndex,
		Workers:  cfg.Workers,
		Logger:   logger,
	}
	if cfg.AuditLog {
		opts.Audit = verify.NewAuditLoggerTo(stderr)
	}
	v := verify.New(opts)

	in := stdin
	if *requestPath != "-" {
		f, err := os.Open(*requestPath)
		if err != nil {
			logger.Printf("open_failed path=%s error=%q", *requestPath, err)
			return exitError
		}
		defer f.Close()
		in = f
	}

	reqs, err := decodeRequests(in, *batch)
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	items, err := v.VerifyBatch(ctx, reqs)
	if err != nil {
		logger.Printf("batch_aborted error=%q", err)
		return exitError
	}

	code := exitOK
	for _, it := range items {
		if it.Err != nil {
			fmt.Fprintf(stderr, "request %d: ", it.Index)
			printError(stderr, it.Err)
			if errors.Is(it.Err, verify.ErrIndexOutOfRange) {
				fmt.Fprintf(stderr, "request %d: ceiling is index %d, raise %s to verify higher grids\n",
					it.Index, v.Ceiling(), config.EnvMaxIndex)
			}
			code = exitError
			continue
		}
		view := report.Build(it.Result)
		if *format == "json" {
			err = report.WriteJSON(stdout, view)
		} else {
			err = report.WriteText(stdout, view)
			fmt.Fprintln(stdout)
		}
		if err != nil {
			logger.Printf("write_failed error=%q", err)
			return exitError
		}
		if it.Result.Commitment == engine.CommitmentFailed && code == exitOK {
			code = exitCommitmentMismatch
		}
	}
	return code
}

// decodeRequests reads one request, or an array of them in batch mode.
// Type errors are reported as invalid input naming the offending field.
func decodeRequests(r io.Reader, batch bool) ([]verify.Request, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var reqs []verify.Request
	var err error
	if batch {
		err = dec.Decode(&reqs)
	} else {
		var req verify.Request
		if err = dec.Decode(&req); err == nil {
			reqs = []verify.Request{req}
		}
	}
	if err == nil {
		return reqs, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil, verify.NewError(verify.ErrTypeInvalidInput, "malformed request field").
			WithField(typeErr.Field).
			WithContext("expected", typeErr.Type.String()).
			WithContext("got", typeErr.Value).
			WithCause(err).
			Build()
	}
	return nil, verify.NewError(verify.ErrTypeInvalidInput, "malformed request").
		WithCause(err).
		Build()
}

func printError(w io.Writer, err error) {
	var verr *verify.Error
	if errors.As(err, &verr) {
		fmt.Fprintf(w, "%s [%s]", verr.Error(), verr.Type)
		if exp, ok := verr.Context["expected"]; ok {
			fmt.Fprintf(w, " expected %v", exp)
		}
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, err)
}
