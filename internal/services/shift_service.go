package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"paramshell/internal/logger"
	"paramshell/pkg/paramtypes"
)

// ShiftServiceName is the registry name of the shift service.
const ShiftServiceName = "shift"

// OvertimeThreshold is the shift length after which hours count as overtime.
const OvertimeThreshold = 8 * time.Hour

// Stat metrics accepted by ShiftService.Stats.
const (
	MetricHours    = "hours"
	MetricShifts   = "shifts"
	MetricOvertime = "overtime"
)

// ErrShiftNotFound is returned when no shift has the requested id.
var ErrShiftNotFound = errors.New("shift not found")

// Shift is one scheduled work period. A shift whose end is not after its
// start runs past midnight.
type Shift struct {
	ID       int
	Day      time.Time
	Start    paramtypes.TimeOfDay
	End      paramtypes.TimeOfDay
	Employee string
	Note     string
}

// StartsAt returns the moment the shift begins.
func (s Shift) StartsAt() time.Time {
	return s.Start.On(s.Day)
}

// Duration returns the length of the shift.
func (s Shift) Duration() time.Duration {
	d := s.End.On(s.Day).Sub(s.StartsAt())
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d
}

// EndsAt returns the moment the shift ends.
func (s Shift) EndsAt() time.Time {
	return s.StartsAt().Add(s.Duration())
}

// ShiftFilter narrows List and Stats. Zero fields match everything; From and
// To are inclusive days.
type ShiftFilter struct {
	From     time.Time
	To       time.Time
	Employee string
}

func (f ShiftFilter) matches(s Shift) bool {
	if !f.From.IsZero() && s.Day.Before(dayOf(f.From)) {
		return false
	}
	if !f.To.IsZero() && s.Day.After(dayOf(f.To)) {
		return false
	}
	if f.Employee != "" && !strings.EqualFold(f.Employee, s.Employee) {
		return false
	}
	return true
}

// StatRow is one line of a stats report.
type StatRow struct {
	Employee string
	Value    float64
}

// ShiftService keeps the shift roster in memory.
type ShiftService struct {
	mu     sync.RWMutex
	shifts map[int]Shift
	nextID int
	now    func() time.Time
}

// NewShiftService creates an empty roster.
func NewShiftService() *ShiftService {
	return &ShiftService{
		shifts: make(map[int]Shift),
		nextID: 1,
		now:    time.Now,
	}
}

// Name returns the service name.
func (s *ShiftService) Name() string {
	return ShiftServiceName
}

// Initialize prepares the service.
func (s *ShiftService) Initialize() error {
	return nil
}

// SetClock replaces the clock used by Today.
func (s *ShiftService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Today returns the current day at midnight.
func (s *ShiftService) Today() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dayOf(s.now())
}

// Add validates and stores a shift, returning it with its id assigned.
func (s *ShiftService) Add(shift Shift) (Shift, error) {
	shift.Employee = strings.TrimSpace(shift.Employee)
	if shift.Employee == "" {
		return Shift{}, fmt.Errorf("employee cannot be empty")
	}
	if shift.Day.IsZero() {
		return Shift{}, fmt.Errorf("day cannot be empty")
	}
	if shift.Start == shift.End {
		return Shift{}, fmt.Errorf("shift cannot start and end at %s", shift.Start)
	}
	shift.Day = dayOf(shift.Day)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shifts {
		if !strings.EqualFold(existing.Employee, shift.Employee) {
			continue
		}
		if shift.StartsAt().Before(existing.EndsAt()) && existing.StartsAt().Before(shift.EndsAt()) {
			return Shift{}, fmt.Errorf("shift overlaps shift %d of %s on %s",
				existing.ID, existing.Employee, existing.Day.Format("02/01/2006"))
		}
	}

	shift.ID = s.nextID
	s.nextID++
	s.shifts[shift.ID] = shift
	logger.ServiceOperation(ShiftServiceName, "add", "id", shift.ID, "employee", shift.Employee)
	return shift, nil
}

// Remove deletes a shift by id.
func (s *ShiftService) Remove(id int) (Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[id]
	if !ok {
		return Shift{}, fmt.Errorf("%w: %d", ErrShiftNotFound, id)
	}
	delete(s.shifts, id)
	logger.ServiceOperation(ShiftServiceName, "remove", "id", id)
	return shift, nil
}

// List returns the shifts matching filter ordered by start time, then id.
func (s *ShiftService) List(filter ShiftFilter) []Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Shift
	for _, shift := range s.shifts {
		if filter.matches(shift) {
			result = append(result, shift)
		}
	}
	slices.SortFunc(result, func(a, b Shift) int {
		if c := a.StartsAt().Compare(b.StartsAt()); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
	return result
}

// Stats aggregates metric per employee over the shifts matching filter.
// Rows are ordered by employee name.
func (s *ShiftService) Stats(metric string, filter ShiftFilter) ([]StatRow, error) {
	var value func(Shift) float64
	switch metric {
	case MetricHours:
		value = func(sh Shift) float64 { return sh.Duration().Hours() }
	case MetricShifts:
		value = func(Shift) float64 { return 1 }
	case MetricOvertime:
		value = func(sh Shift) float64 {
			return max(0, (sh.Duration() - OvertimeThreshold).Hours())
		}
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}

	// Names differing only in case are one employee, shown as first listed.
	totals := make(map[string]*StatRow)
	for _, shift := range s.List(filter) {
		key := strings.ToLower(shift.Employee)
		row, ok := totals[key]
		if !ok {
			row = &StatRow{Employee: shift.Employee}
			totals[key] = row
		}
		row.Value += value(shift)
	}

	rows := make([]StatRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b StatRow) int {
		return strings.Compare(strings.ToLower(a.Employee), strings.ToLower(b.Employee))
	})
	return rows, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
