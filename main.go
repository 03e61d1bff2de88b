package main

import (
	"context"
	"flag"
	"fmt"
	"gomoku/agent"
	"gomoku/config"
	"gomoku/experiments"
	"gomoku/game"
	"gomoku/gtp"
	"gomoku/searcher"
	"gomoku/ui"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	flagMode       = flag.String("mode", "gtp", "Front end: gtp, tui or experiment")
	flagExperiment = flag.String("experiment", "exploration", "Experiment to run: exploration, simulations or policy")
	flagConfig     = flag.String("config", "", "Config file (defaults to the XDG config dir)")
	flagColor      = flag.String("color", "black", "Human color in the terminal UI")
	flagLog        = flag.String("log", "", "Log file (the terminal UI only logs when set)")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the XDG config dir and exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagSave {
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Str("mode", *flagMode).Msg("exited with error")
		stop()
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if *flagConfig != "" {
		return config.Load(*flagConfig)
	}
	return config.InitConfig()
}

// setupLogging writes human readable logs to stderr, or to the -log file. GTP owns stdout and the
// terminal UI owns the screen.
func setupLogging(cfg *config.Config) (*os.File, error) {
	zerolog.SetGlobalLevel(cfg.Level())

	var out io.Writer = os.Stderr
	var file *os.File
	if *flagLog != "" {
		f, err := os.Create(*flagLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, file = f, f
	} else if *flagMode == "tui" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: file != nil})
	return file, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	switch *flagMode {
	case "gtp":
		conn, err := gtp.NewConnection(cfg.BoardSize, cfg.TimeLimitDuration(), cfg.SearchOptions(), os.Stdout)
		if err != nil {
			return err
		}
		return conn.Serve(ctx, os.Stdin)

	case "tui":
		human, err := game.ParseColor(*flagColor)
		if err != nil {
			return err
		}
		board, err := game.NewBoard(cfg.BoardSize)
		if err != nil {
			return err
		}
		options := append(cfg.SearchOptions(), searcher.WithDuration(cfg.TimeLimitDuration()))
		return ui.Run(ctx, board, human, agent.NewEvaluationAgent(searcher.NewMCTS(options...)))

	case "experiment":
		runExperiment, err := experiments.ByName(*flagExperiment)
		if err != nil {
			return err
		}
		dir, err := runExperiment(ctx)
		if err != nil {
			return err
		}
		log.Info().Str("experiment", *flagExperiment).Str("results", dir).Msg("experiment finished")
		return nil

	default:
		return fmt.Errorf("unknown mode %q", *flagMode)
	}
}
