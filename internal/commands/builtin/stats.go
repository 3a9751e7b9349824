package builtin

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"paramshell/internal/commands"
	"paramshell/internal/services"
	pt "paramshell/pkg/paramtypes"
)

// FormatMinVersion is the first client version that understands --format.
const FormatMinVersion = "0.3.0"

func statsScheme(withFormat bool) pt.ParametersList {
	list := pt.ParametersList{
		pt.EnumParam("metric", services.MetricHours, services.MetricShifts, services.MetricOvertime),
		pt.AllIfFirst(
			pt.LiteralParam("from"),
			pt.DateParam("from-date"),
			pt.LiteralParam("to"),
			pt.DateParam("to-date"),
		),
	}
	if withFormat {
		list = append(list, pt.EnumParam("--format", "table", "csv").AsNamedPair())
	}
	return list
}

func statsCommand() *commands.Command {
	return &commands.Command{
		Name:        "stats",
		Description: "Summarize the roster per employee",
		Source:      commands.SourceBuiltin,
		Variants: []commands.Variant{
			{
				Name:         "formatted",
				Description:  "Report as a table or as CSV",
				Scheme:       statsScheme(true),
				Requirements: []pt.Requirement{pt.MinVersion(FormatMinVersion)},
				Examples: []pt.HelpExample{
					{Command: "stats overtime --format csv", Description: "Overtime per employee as CSV"},
				},
				Handler: showStats,
			},
			{
				Name:        "default",
				Description: "Report as a table",
				Scheme:      statsScheme(false),
				Examples: []pt.HelpExample{
					{Command: "stats hours", Description: "Hours worked per employee"},
					{Command: "stats shifts from 01/03/2024 to 31/03/2024", Description: "Shift counts for March"},
				},
				Handler: showStats,
			},
		},
		Notes: []string{
			"Overtime counts the hours of each shift beyond eight.",
			"--format needs client version " + FormatMinVersion + " or newer.",
		},
	}
}

func showStats(_ context.Context, inv *commands.Invocation) error {
	roster, err := services.GetGlobalShiftService()
	if err != nil {
		return fmt.Errorf("shift service not available: %w", err)
	}

	params := inv.Params()
	metric, _ := params.String("metric")

	var filter services.ShiftFilter
	if params.Has("from") {
		filter.From, _ = params.Date("from-date")
		filter.To, _ = params.Date("to-date")
		if filter.To.Before(filter.From) {
			return fmt.Errorf("range ends on %s before it starts on %s",
				filter.To.Format(dateLayout), filter.From.Format(dateLayout))
		}
	}

	format, ok := params.String("--format")
	if !ok {
		format = "table"
		if _, given := inv.Outcome.NamedPairs["--format"]; given {
			inv.Printer.Warning("Ignoring --format, showing a table")
		}
	}

	rows, err := roster.Stats(metric, filter)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		inv.Printer.Info("No shifts in range")
		return nil
	}

	var text string
	if format == "csv" {
		text, err = statsCSV(metric, rows)
		if err != nil {
			return err
		}
	} else {
		text = statsTable(metric, rows)
	}
	inv.Printer.Print(text)
	return nil
}

func statsTable(metric string, rows []services.StatRow) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 1, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Employee\t%s\n", strings.ToUpper(metric[:1])+metric[1:])
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row.Employee, formatNumber(row.Value))
	}
	_ = w.Flush()
	return b.String()
}

func statsCSV(metric string, rows []services.StatRow) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	records := [][]string{{"employee", metric}}
	for _, row := range rows {
		records = append(records, []string{row.Employee, formatNumber(row.Value)})
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return b.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
