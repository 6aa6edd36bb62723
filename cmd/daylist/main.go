// Package main provides the daylist command line entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/daylist/internal/infra/config"
	"github.com/osa030/daylist/internal/infra/logger"
)

var (
	app        = kingpin.New("daylist", "Broadcast day playlist generator")
	configPath = app.Flag("config", "Path to config file (.yaml or legacy .txt)").Envar("DAYLIST_CONFIG").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	quiet      = app.Flag("quiet", "Only log errors").Short('q').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// generate command (default)
	generateCmd     = app.Command("generate", "Generate and export the day playlist (default)").Default()
	generateDate    = generateCmd.Flag("date", "Broadcast date (YYYY-MM-DD, default: today)").String()
	generateFormat  = generateCmd.Flag("format", "Export format").Default("both").Enum("lst", "m3u", "both")
	generateOutput  = generateCmd.Flag("output", "Output base path (overrides export.output)").String()
	generatePreview = generateCmd.Flag("preview", "Print the preview after exporting").Bool()
	metricsFile     = generateCmd.Flag("metrics-file", "Write generation metrics to this textfile").String()

	// preview command
	previewCmd    = app.Command("preview", "Generate and print the preview without exporting")
	previewDate   = previewCmd.Flag("date", "Broadcast date (YYYY-MM-DD, default: today)").String()
	previewDetail = previewCmd.Flag("detail", "List every item of every block").Bool()

	// retime command
	retimeCmd   = app.Command("retime", "Change a block's time range and shift the following blocks")
	retimeBlock = retimeCmd.Flag("block", "Block number (1-based)").Required().Int()
	retimeRange = retimeCmd.Flag("range", `New range "HH:mm:ss - HH:mm:ss"`).Required().String()

	// inspect command
	inspectCmd  = app.Command("inspect", "Read back an exported .lst or .m3u file")
	inspectPath = inspectCmd.Arg("file", "Playlist file").Required().ExistingFile()

	// convert command
	convertCmd  = app.Command("convert", "Convert a config between YAML and the legacy text layout")
	convertFrom = convertCmd.Arg("from", "Source config").Required().ExistingFile()
	convertTo   = convertCmd.Arg("to", "Target config (.yaml or .txt)").Required().String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available candidate filters and exit")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Handle list-filters command
	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	closer, err := logger.Init(logger.FromFlags(*verbose, *quiet, *logfile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, command)
	stop()
	_ = closer.Close()

	if err != nil {
		zlog.Error().Msgf("%s failed: %v", command, err)
		os.Exit(1)
	}
}

// run executes one command. Using a separate function ensures deferred
// cleanup runs before the process exits.
func run(ctx context.Context, command string) error {
	if command == convertCmd.FullCommand() {
		return convert(*convertFrom, *convertTo)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch command {
	case generateCmd.FullCommand():
		return generateAndExport(ctx, cfg)
	case previewCmd.FullCommand():
		return previewOnly(ctx, cfg)
	case retimeCmd.FullCommand():
		return retime(cfg)
	case inspectCmd.FullCommand():
		return inspect(cfg, *inspectPath)
	}
	return nil
}

// loadConfig loads --config, or the defaults with environment folders and
// the standard day when no file is given.
func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		zlog.Info().Msg("No config file given, using defaults")
		return config.Default()
	}
	zlog.Info().Msgf("Loading config from %s", *configPath)
	return config.Load(*configPath)
}
