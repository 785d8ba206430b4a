// moofield is a single-player survival sandbox played in the terminal.
//
// Usage:
//
//	moofield                 - Start the mode picker
//	moofield play [mode]     - Play a mode directly (survival, sandbox)
//	moofield serve           - Start SSH server for remote play
//	moofield sim             - Let the autopilot play headless runs
//	moofield runs [mode]     - Show recorded runs
//	moofield modes           - List available modes
//	moofield catalog         - Print or check the game catalog
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible worlds
//	--db <path>           - Set database path (default: ~/.moofield/runs.db)
//	--catalog <path>      - Use a custom catalog YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/moofield/internal/games/survival"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagCatalog    string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured before any subcommand runs.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moofield",
	Short: "Moofield - gather, build and survive in your terminal",
	Long: `Moofield is a single-player survival game played in the terminal.
Gather wood and stone, build walls, spikes and mills, age up to unlock
better tools and outlast the wildlife.

Available commands:
  play     - Play a mode directly
  serve    - Start SSH server for remote play
  sim      - Let the autopilot play headless runs
  runs     - Show recorded runs
  modes    - List available modes
  catalog  - Print or check the game catalog

Examples:
  moofield
  moofield play sandbox --difficulty hard
  moofield serve --ssh :2222
  moofield sim --runs 8 --ticks 36000
  moofield runs survival`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runMenu

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.moofield/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(catalogCmd)
}

// setup builds the logger and hands the catalog settings to the game package.
// Interactive commands log nowhere unless --log-file is set, since stderr
// shares the terminal with the game.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile, out = f, f
	case interactive(cmd):
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "moofield",
		Level:           level,
	})

	survival.SetConfigPath(flagCatalog)
	survival.SetDifficultyPreset(flagDifficulty)
	survival.SetLogger(logger.WithPrefix("sim"))
	return nil
}

func interactive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd || (cmd == runsCmd && flagRunsInteractive)
}
