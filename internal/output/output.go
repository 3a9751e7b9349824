package output

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
)

var (
	globalPrinter = NewPrinter()
	globalMu      sync.RWMutex
)

// SetGlobalPrinter replaces the printer used by the package-level helpers.
func SetGlobalPrinter(printer *Printer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalPrinter = printer
}

// GetGlobalPrinter returns the printer used by the package-level helpers.
func GetGlobalPrinter() *Printer {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalPrinter
}

// ConfigureGlobal rebuilds the global printer with options.
func ConfigureGlobal(options ...Option) {
	SetGlobalPrinter(NewPrinter(options...))
}

// Println writes a line with the global printer.
func Println(text string) { GetGlobalPrinter().Println(text) }

// Info writes an informational line with the global printer.
func Info(text string) { GetGlobalPrinter().Info(text) }

// Success writes a success line with the global printer.
func Success(text string) { GetGlobalPrinter().Success(text) }

// Warning writes a warning line with the global printer.
func Warning(text string) { GetGlobalPrinter().Warning(text) }

// Error writes an error line with the global printer.
func Error(text string) { GetGlobalPrinter().Error(text) }

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return isCharDevice(os.Stdout)
}

// SupportsColor reports whether stdout can show colours. NO_COLOR and
// CLICOLOR are honoured through termenv.
func SupportsColor() bool {
	return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
}

func isCharDevice(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
