package main

import (
	"fmt"
	"os"

	"github.com/Mshel/gobble/internal/game"
	"github.com/Mshel/gobble/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli"
)

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "gobble"
	app.Usage = "Eat or be eaten in a walled terminal arena"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "bots", Value: -1, Usage: "Number of autonomous blobs (default from config)"},
		cli.Int64Flag{Name: "seed", Usage: "Random seed; 0 picks one from the clock"},
		cli.Float64Flag{Name: "round", Usage: "Round length in seconds (default from config)"},
		cli.StringFlag{Name: "env", Value: "", Usage: "Dotenv file with ARENA_* settings"},
		cli.StringFlag{Name: "bot-script", Value: "", Usage: "Lua script steering the bots"},
		cli.StringFlag{Name: "log-file", Value: "arena.log", Usage: "Destination file for logs"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := game.LoadConfig(c.String("env"))
		if err != nil {
			return err
		}
		if c.Int("bots") >= 0 {
			cfg.BotCount = c.Int("bots")
		}
		if c.IsSet("seed") {
			cfg.Seed = c.Int64("seed")
		}
		if c.IsSet("round") {
			cfg.RoundSeconds = c.Float64("round")
		}
		if script := c.String("bot-script"); script != "" {
			cfg.BotScript = script
		}
		return runAction(cfg, c.String("log-file"), c.Bool("debug"))
	}
	return app
}

// runAction owns the terminal with the TUI, so logs go to a file.
func runAction(cfg game.Config, logFile string, isDebug bool) error {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}
	defer f.Close()

	level := log.InfoLevel
	if isDebug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "gobble",
	})

	cfg = cfg.Sanitize(logger)
	logger.Info("Starting", "bots", cfg.BotCount, "seed", cfg.Seed, "round", cfg.RoundSeconds)

	p := tea.NewProgram(ui.NewControllerModel(cfg, logger, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}
