package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workhours/internal/config"
	"github.com/workhours/internal/messages"
)

// skipSetup marks commands that must run without opening the database.
const skipSetup = "skipSetup"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration and what is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		namespaces, err := db.Namespaces()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg, messages.New(cfg.Language).Languages(), namespaces)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change locale, currency, language or notification time",
	Long: `Write config values to the config file. Environment overrides are not
saved.

Examples:
  workhours config set --locale en-US --currency USD
  workhours config set --lang tr --notify 5`,
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var ch configChanges
		if flags.Changed("locale") {
			v, _ := flags.GetString("locale")
			ch.Locale = &v
		}
		if flags.Changed("currency") {
			v, _ := flags.GetString("currency")
			ch.Currency = &v
		}
		if flags.Changed("lang") {
			v, _ := flags.GetString("lang")
			ch.Language = &v
		}
		if flags.Changed("notify") {
			v, _ := flags.GetInt("notify")
			ch.NotifySeconds = &v
		}
		if ch.empty() {
			return fmt.Errorf("nothing to change, use --locale, --currency, --lang or --notify")
		}

		c, err := config.LoadFile()
		if err != nil {
			return err
		}
		languages := messages.New("").Languages()
		if err := ch.apply(c, languages); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", config.Path())
		return nil
	},
}

// configChanges holds the flags given to config set; nil means unchanged.
type configChanges struct {
	Locale        *string
	Currency      *string
	Language      *string
	NotifySeconds *int
}

func (ch configChanges) empty() bool {
	return ch.Locale == nil && ch.Currency == nil && ch.Language == nil && ch.NotifySeconds == nil
}

// apply edits c and validates the result. languages are the accepted
// values of Language.
func (ch configChanges) apply(c *config.Config, languages []string) error {
	if ch.Language != nil {
		lang := strings.ToLower(strings.TrimSpace(*ch.Language))
		if !slices.Contains(languages, lang) {
			return fmt.Errorf("unknown language %q (available: %s)", *ch.Language, strings.Join(languages, ", "))
		}
		c.Language = lang
	}
	if ch.Locale != nil {
		c.Locale = strings.TrimSpace(*ch.Locale)
	}
	if ch.Currency != nil {
		c.Currency = strings.ToUpper(strings.TrimSpace(*ch.Currency))
	}
	if ch.NotifySeconds != nil {
		c.NotifySeconds = *ch.NotifySeconds
	}
	return c.Validate()
}

func printConfig(w io.Writer, c *config.Config, languages, namespaces []string) {
	stored := "-"
	if len(namespaces) > 0 {
		stored = strings.Join(namespaces, ", ")
	}
	fmt.Fprintf(w, "Config file: %s\n", config.Path())
	fmt.Fprintf(w, "Database:    %s\n", c.DatabasePath)
	fmt.Fprintf(w, "History:     %s\n", c.HistoryPath)
	fmt.Fprintf(w, "Locale:      %s\n", c.Locale)
	fmt.Fprintf(w, "Currency:    %s\n", c.Currency)
	fmt.Fprintf(w, "Language:    %s (available: %s)\n", c.Language, strings.Join(languages, ", "))
	fmt.Fprintf(w, "Notify:      %s\n", c.NotifyDuration())
	fmt.Fprintf(w, "Log level:   %s\n", c.Level())
	fmt.Fprintf(w, "Stored:      %s\n", stored)
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().String("locale", "", "Locale for wage formatting, e.g. en-US")
	configSetCmd.Flags().String("currency", "", "ISO 4217 currency code, e.g. EUR")
	configSetCmd.Flags().String("lang", "", "Notification language ("+strings.Join(messages.New("").Languages(), ", ")+")")
	configSetCmd.Flags().Int("notify", 0, "Seconds a notification stays up")
}
