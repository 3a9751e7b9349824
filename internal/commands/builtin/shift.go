package builtin

import (
	"context"
	"fmt"

	"paramshell/internal/commands"
	"paramshell/internal/services"
	pt "paramshell/pkg/paramtypes"
)

// ActionShiftRemove is the permission needed to delete shifts.
const ActionShiftRemove = "shift.remove"

func shiftCommand() *commands.Command {
	return &commands.Command{
		Name:        "shift",
		Description: "Add shifts to the roster or remove them",
		Source:      commands.SourceBuiltin,
		SubCommands: []*commands.Command{
			{
				Name:        "add",
				Description: "Add a shift to the roster",
				Source:      commands.SourceBuiltin,
				Variants: []commands.Variant{{
					Name: "default",
					Scheme: pt.ParametersList{
						pt.DateParam("day"),
						pt.TimeParam("start"),
						pt.TimeParam("end"),
						pt.StringParam("employee"),
						pt.StringParam("note").AsOptional(),
					},
					Examples: []pt.HelpExample{
						{Command: "shift add 12/03/2024 09:00 17:00 ann", Description: "A day shift for Ann"},
						{Command: `shift add 12/03/2024 22:00 06:00 bob "covers for ann"`, Description: "A night shift with a note"},
					},
					Handler: addShift,
				}},
				Notes: []string{"A shift that ends before it starts runs past midnight."},
			},
			{
				Name:        "remove",
				Description: "Remove a shift by id",
				Source:      commands.SourceBuiltin,
				Variants: []commands.Variant{{
					Name:         "default",
					Scheme:       pt.ParametersList{pt.NumberParam("id")},
					Requirements: []pt.Requirement{pt.AllowedAction(ActionShiftRemove)},
					Examples: []pt.HelpExample{
						{Command: "shift remove 3", Description: "Remove shift 3"},
					},
					Handler: removeShift,
				}},
				Notes: []string{"Needs the shift.remove action in allowed-actions."},
			},
		},
	}
}

func addShift(_ context.Context, inv *commands.Invocation) error {
	roster, err := services.GetGlobalShiftService()
	if err != nil {
		return fmt.Errorf("shift service not available: %w", err)
	}

	params := inv.Params()
	day, _ := params.Date("day")
	start, _ := params.Time("start")
	end, _ := params.Time("end")
	employee, _ := params.String("employee")
	note, _ := params.String("note")

	shift, err := roster.Add(services.Shift{
		Day:      day,
		Start:    start,
		End:      end,
		Employee: employee,
		Note:     note,
	})
	if err != nil {
		return err
	}

	inv.Printer.Success(fmt.Sprintf("Added shift %d: %s on %s, %s-%s (%s h)",
		shift.ID, shift.Employee, shift.Day.Format(dateLayout), shift.Start, shift.End, formatNumber(shift.Duration().Hours())))
	return nil
}

func removeShift(_ context.Context, inv *commands.Invocation) error {
	roster, err := services.GetGlobalShiftService()
	if err != nil {
		return fmt.Errorf("shift service not available: %w", err)
	}

	id, _ := inv.Params().Int("id")
	shift, err := roster.Remove(id)
	if err != nil {
		return err
	}
	inv.Printer.Success(fmt.Sprintf("Removed shift %d of %s on %s", shift.ID, shift.Employee, shift.Day.Format(dateLayout)))
	return nil
}
