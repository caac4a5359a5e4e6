package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
	"github.com/workhours/internal/visualization"
)

var dayCmd = &cobra.Command{
	Use:     "day [date]",
	Aliases: []string{"d", "today"},
	Short:   "Show a day",
	Long:    `Show the record of a day (default today) with its duration and earnings. Dates are YYYY-MM-DD, "yesterday" or "tomorrow".`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectDay(args); err != nil {
			return err
		}
		printDay(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var daySetCmd = &cobra.Command{
	Use:   "set [date]",
	Short: "Record start and end time of a day",
	Long: `Record the hours of a day. Any edit marks the day as custom, so later
changes to the default hours leave it alone.

Examples:
  workhours day set --end 16:30
  workhours day set 2024-01-05 --start 09:00 --end 17:30
  workhours day set 2024-01-06 --off=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("start") && !flags.Changed("end") && !flags.Changed("off") {
			return fmt.Errorf("nothing to change, use --start, --end or --off")
		}
		if err := selectDay(args); err != nil {
			return err
		}
		start, _ := flags.GetString("start")
		end, _ := flags.GetString("end")
		off, _ := flags.GetBool("off")
		app.EditForm(func(f *tracker.FormState) {
			if flags.Changed("start") {
				f.SetStart(start)
			}
			if flags.Changed("end") {
				f.SetEnd(end)
			}
			if flags.Changed("off") {
				f.SetOff(off)
			}
		})
		if err := app.SaveDay(); err != nil {
			return reported(err)
		}
		printDay(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var dayOffCmd = &cobra.Command{
	Use:   "off [date]",
	Short: "Mark a day as off",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectDay(args); err != nil {
			return err
		}
		app.EditForm(func(f *tracker.FormState) { f.SetOff(true) })
		if err := app.SaveDay(); err != nil {
			return reported(err)
		}
		printDay(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var dayClearCmd = &cobra.Command{
	Use:     "clear [date]",
	Aliases: []string{"rm"},
	Short:   "Remove the record of a day",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectDay(args); err != nil {
			return err
		}
		if err := app.ClearDay(); err != nil {
			return reported(err)
		}
		printDay(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:     "week [date]",
	Aliases: []string{"w"},
	Short:   "Show weekly summary",
	Long:    `Display the Monday to Sunday week containing the given date (default today).`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := selectDay(args); err != nil {
			return err
		}
		printWeek(cmd.OutOrStdout(), app, money, time.Now())

		if svgPath, _ := cmd.Flags().GetString("svg"); svgPath != "" {
			svg := visualization.New().GenerateWeekSVG(app.WeekBreakdown(), app.WeeklyStats(), defaultDayMinutes(app.Settings()))
			return writeFile(svgPath, svg)
		}
		return nil
	},
}

var monthCmd = &cobra.Command{
	Use:       "month [YYYY-MM|next|prev]",
	Aliases:   []string{"m"},
	Short:     "Show monthly summary",
	Long:      `Display the last viewed month, or move to another month first. The viewed month is remembered between runs.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"next", "prev"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			var err error
			switch args[0] {
			case "next":
				err = app.ChangeMonth(1)
			case "prev", "previous":
				err = app.ChangeMonth(-1)
			default:
				month, perr := parseMonth(args[0], time.Local)
				if perr != nil {
					return perr
				}
				err = app.SetMonth(month)
			}
			if err != nil {
				return reported(err)
			}
		}
		printMonth(cmd.OutOrStdout(), app, money, time.Now())

		if svgPath, _ := cmd.Flags().GetString("svg"); svgPath != "" {
			svg := visualization.New().GenerateMonthSVG(app.Month(), app.Breakdown(), app.MonthlyStats())
			return writeFile(svgPath, svg)
		}
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show default hours, hourly rate and holidays",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings and apply them to the viewed month",
	Long: `Change the default hours, hourly rate or holiday weekdays. Saving
rewrites every day of the viewed month that was not edited by hand: holiday
weekdays become days off and the other days get the default hours.

Examples:
  workhours settings set --start 09:00 --end 17:30
  workhours settings set --rate 25 --holidays sat,sun`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		s := app.Settings()
		if flags.Changed("start") {
			s.DefaultStartTime, _ = flags.GetString("start")
		}
		if flags.Changed("end") {
			s.DefaultEndTime, _ = flags.GetString("end")
		}
		if flags.Changed("rate") {
			s.HourlyRate, _ = flags.GetString("rate")
		}
		if flags.Changed("holidays") {
			raw, _ := flags.GetString("holidays")
			days, err := parseHolidays(raw)
			if err != nil {
				return err
			}
			s.HolidayDays = days
		}
		if err := app.ApplySettings(s); err != nil {
			return reported(err)
		}
		printSettings(cmd.OutOrStdout(), app, money)
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the display mode",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			mode := "light"
			if app.DarkMode() {
				mode = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", mode)
			return nil
		}
		var err error
		switch args[0] {
		case "dark":
			err = app.SetDarkMode(true)
		case "light":
			err = app.SetDarkMode(false)
		case "toggle":
			err = app.ToggleDarkMode()
		default:
			return fmt.Errorf("unknown theme %q (use dark, light or toggle)", args[0])
		}
		return reported(err)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for workhours.

To load completions:

Bash:
  $ source <(workhours completion bash)

Zsh:
  $ workhours completion zsh > "${fpath[1]}/_workhours"

Fish:
  $ workhours completion fish > ~/.config/fish/completions/workhours.fish

PowerShell:
  PS> workhours completion powershell > workhours.ps1
  PS> . workhours.ps1
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(out)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(out)
		}
		return nil
	},
}

// selectDay selects the day named by args[0] (default today), moving the
// viewed month first when the day lies outside it.
func selectDay(args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	day, err := parseDay(arg, time.Now())
	if err != nil {
		return err
	}
	month := app.Month()
	if day.Year() != month.Year() || day.Month() != month.Month() {
		if err := app.SetMonth(day); err != nil {
			return reported(err)
		}
	}
	app.SelectDay(day)
	return nil
}

// defaultDayMinutes is the length of a day worked at the default hours.
func defaultDayMinutes(s tracker.Settings) int {
	return max(0, timecalc.TimeToMinutes(s.DefaultEndTime)-timecalc.TimeToMinutes(s.DefaultStartTime))
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func init() {
	dayCmd.AddCommand(daySetCmd)
	dayCmd.AddCommand(dayOffCmd)
	dayCmd.AddCommand(dayClearCmd)

	daySetCmd.Flags().StringP("start", "s", "", "Start time (HH:MM)")
	daySetCmd.Flags().StringP("end", "e", "", "End time (HH:MM)")
	daySetCmd.Flags().Bool("off", false, "Mark the day as off")

	weekCmd.Flags().String("svg", "", "Also write the week as an SVG chart to this file")
	monthCmd.Flags().String("svg", "", "Also write the month as an SVG chart to this file")

	settingsCmd.AddCommand(settingsSetCmd)
	settingsSetCmd.Flags().StringP("start", "s", "", "Default start time (HH:MM)")
	settingsSetCmd.Flags().StringP("end", "e", "", "Default end time (HH:MM)")
	settingsSetCmd.Flags().StringP("rate", "r", "", "Hourly rate, empty to disable wages")
	settingsSetCmd.Flags().String("holidays", "", "Holiday weekdays, e.g. sat,sun or 0,6")
}
