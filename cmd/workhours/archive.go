package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workhours/internal/export"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [YYYY-MM]",
	Short: "Archive a month to markdown",
	Long: `Write a markdown summary of a month (default the viewed month) to the
history directory. Records stay in the database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month := app.Month()
		if len(args) > 0 {
			var err error
			if month, err = parseMonth(args[0], time.Local); err != nil {
				return err
			}
		}

		path, err := archiver.ArchiveMonth(month, app.Store(), app.Settings())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived %s to %s\n", month.Format("January 2006"), path)
		return nil
	},
}

var archiveAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Archive all past months",
	Long:  `Archive every month before the current one that has records and no archive yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		archived, err := archiver.ArchivePastMonths(time.Now(), app.Store(), app.Settings())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(archived) == 0 {
			fmt.Fprintln(out, "No months to archive (current month or already archived)")
			return nil
		}
		fmt.Fprintf(out, "Archived %d month(s):\n", len(archived))
		for _, f := range archived {
			fmt.Fprintf(out, "  - %s\n", f)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [YYYY-MM]",
	Short: "List archived months or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			month, err := parseMonth(args[0], time.Local)
			if err != nil {
				return err
			}
			content, err := archiver.ReadArchive(month)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, content)
			return nil
		}

		archives, err := archiver.ListArchives()
		if err != nil {
			return err
		}
		if len(archives) == 0 {
			fmt.Fprintln(out, "No archives found. Run 'workhours archive' first.")
			return nil
		}
		fmt.Fprintln(out, "Archived months:")
		for _, a := range archives {
			fmt.Fprintf(out, "  %s\n", a)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:     "export [format]",
	Aliases: []string{"exp"},
	Short:   "Export a month to CSV, JSON or iCalendar",
	Long: `Export the recorded days of a month (default the viewed month).

Examples:
  workhours export csv -o hours.csv
  workhours export json --month 2024-01
  workhours export ics -o work.ics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		monthStr, _ := cmd.Flags().GetString("month")
		outputPath, _ := cmd.Flags().GetString("output")
		if len(args) > 0 {
			formatName = args[0]
		}

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		month := app.Month()
		if monthStr != "" {
			if month, err = parseMonth(monthStr, time.Local); err != nil {
				return err
			}
		}
		report := export.NewReport(month, app.Store(), app.Settings(), time.Now())

		var output io.Writer = cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return err
			}
			defer f.Close()
			output = f
		}
		return export.Write(output, format, report)
	},
}

func init() {
	archiveCmd.AddCommand(archiveAutoCmd)

	exportCmd.Flags().StringP("format", "f", "csv", "Output format: csv, json, ics")
	exportCmd.Flags().StringP("month", "m", "", "Month to export (YYYY-MM)")
	exportCmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
}
