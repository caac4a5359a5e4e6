package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/workhours/internal/archive"
	"github.com/workhours/internal/config"
	"github.com/workhours/internal/messages"
	"github.com/workhours/internal/storage"
	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
)

var (
	cfg      *config.Config
	db       *storage.Database
	app      *tracker.App
	toaster  *tracker.Toaster
	money    *timecalc.CurrencyFormatter
	archiver *archive.Archiver
	debug    bool
)

// errReported marks errors the user has already seen as a notification.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:           "workhours",
	Short:         "Track daily work hours and earnings",
	Long:          `workhours records clock-in and clock-out times per day, marks days off, and derives weekly and monthly totals, averages and wages.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Annotations[skipSetup] != "" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		setupLogging(cfg.Level())

		money, err = cfg.CurrencyFormatter()
		if err != nil {
			return err
		}
		db, err = storage.New(cfg.DatabasePath)
		if err != nil {
			return err
		}

		toaster = tracker.NewToaster(printNotification(cmd.OutOrStdout(), cmd.ErrOrStderr()))
		app = tracker.Open(db, tracker.Options{
			Notifier:       toaster,
			Messages:       messages.New(cfg.Language),
			Logger:         &log.Logger,
			NotifyDuration: cfg.NotifyDuration(),
		})
		archiver = archive.New(cfg.HistoryPath, money)
		log.Debug().Str("db", cfg.DatabasePath).Int("records", app.Store().Len()).Msg("state loaded")
		return nil
	},
}

// cleanup releases what PersistentPreRunE opened. main calls it after
// Execute, since cobra skips post-run hooks when a command fails.
func cleanup() {
	if toaster != nil {
		toaster.Dismiss()
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
		db = nil
	}
}

func setupLogging(level zerolog.Level) {
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// printNotification shows notifications the way a terminal can: success on
// out, errors on errOut.
func printNotification(out, errOut io.Writer) func(tracker.Notification) {
	return func(n tracker.Notification) {
		if n.Kind == tracker.KindError {
			fmt.Fprintf(errOut, "✗ %s\n", n.Message)
			return
		}
		fmt.Fprintf(out, "✓ %s\n", n.Message)
	}
}

// reported tags err, coming from an App operation, as already shown.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", errReported, err)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
