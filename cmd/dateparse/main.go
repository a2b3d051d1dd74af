package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"datebot/internal/bot"
	"datebot/internal/clock"
	"datebot/internal/dateinput"
	"datebot/internal/dateparse"
	"datebot/internal/db"
	"datebot/internal/logging"
	"datebot/internal/models"
	"datebot/internal/repository"
)

type output struct {
	Input     string `json:"input"`
	ISO       string `json:"iso,omitempty"`
	Formatted string `json:"formatted,omitempty"`
	Source    string `json:"source,omitempty"`
	Rule      string `json:"rule,omitempty"`
	Error     string `json:"error,omitempty"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run resolves every argument, or every stdin line when there are none, and
// returns 1 if any of them was not recognized.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dateparse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	refFlag := fs.String("ref", "", "reference date YYYY-MM-DD (default: today)")
	tzFlag := fs.String("tz", clock.DefaultZone, "timezone for today")
	jsonFlag := fs.Bool("json", false, "print one JSON object per input")
	recordFlag := fs.Bool("record", false, "log attempts to DATABASE_URL")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	loc, err := clock.LoadLocation(*tzFlag)
	if err != nil {
		fmt.Fprintf(stderr, "invalid tz: %v\n", err)
		return 2
	}
	resolver := dateinput.New(clock.NewZoned(loc), logging.Discard())
	ref := resolver.Today()
	if *refFlag != "" {
		parsed, err := time.Parse("2006-01-02", *refFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid ref: %v\n", err)
			return 2
		}
		ref = dateparse.ReferenceFrom(parsed)
	}

	var store bot.AttemptStore
	if *recordFlag {
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			fmt.Fprintln(stderr, "-record needs DATABASE_URL")
			return 2
		}
		pool, err := db.NewPool(ctx, url)
		if err != nil {
			fmt.Fprintf(stderr, "db error: %v\n", err)
			return 1
		}
		defer pool.Close()
		repo := repository.New(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			fmt.Fprintf(stderr, "schema error: %v\n", err)
			return 1
		}
		store = repo
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "read stdin: %v\n", err)
			return 1
		}
	}
	if len(inputs) == 0 {
		fmt.Fprintln(stderr, "usage: dateparse [-ref YYYY-MM-DD] [-tz Europe/Moscow] [-json] [-record] \"27 января 2026\" ...")
		return 2
	}

	enc := json.NewEncoder(stdout)
	status := 0
	for _, input := range inputs {
		result, err := resolver.ResolveAt(input, ref)
		if store != nil {
			if _, recErr := store.RecordParseAttempt(ctx, bot.Attempt(models.ChannelCLI, input, result, err)); recErr != nil {
				fmt.Fprintf(stderr, "record error: %v\n", recErr)
			}
		}
		out := output{Input: input}
		if err != nil {
			if errors.Is(err, dateinput.ErrInvalidReference) {
				fmt.Fprintf(stderr, "invalid ref: %v\n", err)
				return 2
			}
			out.Error = err.Error()
			status = 1
		} else {
			out.ISO = result.Date.String()
			out.Formatted = dateparse.Format(result.Date)
			out.Source = string(result.Source)
			out.Rule = result.Rule
		}

		if *jsonFlag {
			_ = enc.Encode(out)
			continue
		}
		if out.Error != "" {
			fmt.Fprintf(stdout, "%s\t-\n", input)
		} else {
			fmt.Fprintf(stdout, "%s\t%s\n", input, out.Formatted)
		}
	}
	return status
}
