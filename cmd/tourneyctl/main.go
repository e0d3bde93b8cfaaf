package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/tourney/brackets"
	"github.com/Dosada05/tourney/repositories"
	"github.com/Dosada05/tourney/services"
)

//go:embed help.txt
var helpText string

type cmdHandler func(ctx context.Context, env *cliEnv, args []string) error

var commands = map[string]cmdHandler{
	"help":       handleHelp,
	"bracket":    drawCommand(brackets.FormatSingleElimination),
	"roundrobin": drawCommand(brackets.FormatRoundRobin),
	"groups":     drawCommand(brackets.FormatGroups),
	"courts":     drawCommand(brackets.FormatCourts),
	"import":     handleImport,
}

type cliEnv struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, helpText)
		return 2
	}
	handler, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(stderr, helpText)
		return 2
	}

	env := &cliEnv{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	if err := handler(ctx, env, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func handleHelp(ctx context.Context, env *cliEnv, args []string) error {
	fmt.Fprint(env.stdout, helpText)
	return nil
}

func drawCommand(format brackets.Format) cmdHandler {
	return func(ctx context.Context, env *cliEnv, args []string) error {
		fs := flag.NewFlagSet(string(format), flag.ContinueOnError)
		fs.SetOutput(env.stderr)
		names := fs.String("names", "", "comma separated participant list")
		teams := fs.Int("teams", 0, "generate Team 1..Team N when no names are given")
		seed := fs.Int64("seed", 0, "seed for the random draw (0 picks one)")
		title := fs.String("title", "", "tournament name")
		rules := fs.String("rules", "", "rules printed under the draw")
		date := fs.String("date", "", "event date")
		var shuffle *bool
		if format == brackets.FormatRoundRobin {
			shuffle = fs.Bool("shuffle", false, "shuffle the round-robin order")
		}
		courts := 0
		if format == brackets.FormatCourts {
			fs.IntVar(&courts, "courts", 2, "number of courts")
		}
		if err := fs.Parse(args); err != nil {
			return err
		}

		in := services.GenerateInput{
			Name:              *title,
			Format:            string(format),
			Participants:      fs.Args(),
			ParticipantsText:  *names,
			TeamCount:         *teams,
			Courts:            courts,
			Rules:             *rules,
			Date:              *date,
			ShuffleRoundRobin: shuffle,
		}
		if *seed != 0 {
			in.Seed = seed
		}

		svc := services.NewTournamentService(
			repositories.NewTournamentRepository(repositories.NewMemoryRowStore()), env.logger)
		t, err := svc.Preview(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprint(env.stdout, services.RenderTournament(t))
		fmt.Fprintf(env.stdout, "\nSeed: %d\n", t.Seed)
		return nil
	}
}

func handleImport(ctx context.Context, env *cliEnv, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	cache := fs.Duration("cache", 10*time.Minute, "how long fetched pages are reused")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("import needs at least one URL")
	}

	names, err := services.NewRegistrationImporter(*cache, env.logger).Import(ctx, fs.Args()...)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(env.stdout, name)
	}
	return nil
}
