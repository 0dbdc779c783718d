package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/spf13/cobra"
)

func newRegionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the federative units accepted by --region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRegions(domain.Regions, app.calendar().HasRegion))
			return nil
		},
	}
}

func newHolidaysCmd(app *App) *cobra.Command {
	var (
		year        int
		month       string
		region      regionFlag
		asJSON      bool
		asGrid      bool
		nationalRaw bool
	)

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Show the commemorative dates of a year or month",
		Example: `  pauta holidays --year 2025 --region SP
  pauta holidays --month 2024-11 --grid
  pauta holidays --month 12 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = app.now().Year()
			}
			if year < 1 || year > 9999 {
				return fmt.Errorf("invalid year %d", year)
			}

			var m time.Month
			if month != "" {
				var err error
				if year, m, err = parseMonthFlag(month, year); err != nil {
					return err
				}
			} else if asGrid {
				m = app.now().Month()
			}

			cal := app.calendar()
			var holidays []holiday.Holiday
			switch {
			case nationalRaw && m != 0:
				return fmt.Errorf("--national-only cannot be combined with a month")
			case nationalRaw:
				holidays = cal.National(year)
			case m != 0:
				holidays = cal.Month(year, m, region.code)
			default:
				holidays = cal.Holidays(year, region.code)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if holidays == nil {
					holidays = []holiday.Holiday{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(holidays)
			}
			if m != 0 && asGrid {
				fmt.Fprint(out, formatter.FormatMonthGrid(year, m, holidays))
				return nil
			}
			fmt.Fprint(out, formatter.FormatHolidayList(holidaysTitle(year, m, region.code), holidays))
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Calendar year (default current year)")
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as 1-12 or YYYY-MM")
	addRegionFlag(cmd.Flags(), &region, "State code whose holidays are added (e.g. SP)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.Flags().BoolVar(&asGrid, "grid", false, "Draw a month calendar (current month unless --month)")
	cmd.Flags().BoolVar(&nationalRaw, "national-only", false, "Print the national table before merging, in rule order")
	cmd.MarkFlagsMutuallyExclusive("json", "grid")

	return cmd
}

// parseMonthFlag accepts "YYYY-MM", which also sets the year, or a month
// number that keeps year.
func parseMonthFlag(s string, year int) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "-") {
		return holiday.ParseMonthKey(s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, 0, fmt.Errorf("invalid month %q: use 1-12 or YYYY-MM", s)
	}
	return year, time.Month(n), nil
}

func holidaysTitle(year int, m time.Month, region string) string {
	title := strconv.Itoa(year)
	if m != 0 {
		title = domain.MonthTitle(m) + " " + title
	}
	if region != "" {
		return title + " · " + domain.RegionName(region)
	}
	return title + " · national"
}
