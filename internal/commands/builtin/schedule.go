package builtin

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"paramshell/internal/commands"
	"paramshell/internal/services"
	pt "paramshell/pkg/paramtypes"
)

func scheduleCommand() *commands.Command {
	return &commands.Command{
		Name:        "schedule",
		Description: "Inspect the shift schedule",
		Source:      commands.SourceBuiltin,
		SubCommands: []*commands.Command{{
			Name:        "show",
			Description: "List the shifts of a day or of the coming week",
			Source:      commands.SourceBuiltin,
			Variants: []commands.Variant{{
				Name:        "by-day",
				Description: "Shifts for today, the next seven days or a given date",
				Scheme: pt.ParametersList{
					pt.OneOf(
						pt.LiteralParam("today"),
						pt.LiteralParam("week"),
						pt.DateParam("day").Describe("DD/MM/YYYY"),
					),
					pt.StringParam("--user").AsNamedPair().Describe("only this employee"),
					pt.DateParam("--after").AsNamedPair().Describe("only days after this date"),
				},
				Examples: []pt.HelpExample{
					{Command: "schedule show today", Description: "Everything scheduled today"},
					{Command: "schedule show week --user ann", Description: "Ann's shifts for the next seven days"},
					{Command: "schedule show 12/03/2024", Description: "Shifts on the 12th of March 2024"},
				},
				Handler: showSchedule,
			}},
		}},
	}
}

func showSchedule(_ context.Context, inv *commands.Invocation) error {
	roster, err := services.GetGlobalShiftService()
	if err != nil {
		return fmt.Errorf("shift service not available: %w", err)
	}

	params := inv.Params()
	today := roster.Today()
	var filter services.ShiftFilter
	switch {
	case params.Has("today"):
		filter.From, filter.To = today, today
	case params.Has("week"):
		filter.From, filter.To = today, today.AddDate(0, 0, 6)
	default:
		day, _ := params.Date("day")
		filter.From, filter.To = day, day
	}
	if user, ok := params.String("--user"); ok {
		filter.Employee = user
	}
	if after, ok := params.Date("--after"); ok {
		if next := after.AddDate(0, 0, 1); next.After(filter.From) {
			filter.From = next
		}
	}

	shifts := roster.List(filter)
	if len(shifts) == 0 {
		inv.Printer.Info("No shifts scheduled")
		return nil
	}
	inv.Printer.Print(formatShifts(shifts))
	return nil
}

func formatShifts(shifts []services.Shift) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 1, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDay\tHours\tEmployee\tNote")
	for _, s := range shifts {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s-%s\t%s\t%s\n",
			s.ID, s.Day.Format(dateLayout), s.Start, s.End, s.Employee, s.Note)
	}
	_ = w.Flush()
	return b.String()
}
