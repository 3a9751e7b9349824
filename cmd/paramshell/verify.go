package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"paramshell/internal/commands"
	"paramshell/internal/logger"
	"paramshell/internal/output"
	"paramshell/internal/services"
	"paramshell/internal/shell"
)

// errVerifyFailed is returned when at least one scheme file has errors.
var errVerifyFailed = errors.New("scheme verification failed")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify scheme files without running anything",
	Long: `Loads every scheme file, checks each variant's parameter scheme and reports
the problems found. With --watch the files are reloaded into a registry every
time they change until the command is interrupted.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, _ []string) error {
	config := services.NewConfigurationService(nil)
	if err := config.Initialize(); err != nil {
		return err
	}
	settings, err := config.Settings()
	if err != nil {
		return err
	}
	printer, err := shell.NewPrinter(settings, stdout)
	if err != nil {
		return err
	}

	files, _ := cmd.Flags().GetStringSlice("file")
	if len(files) == 0 {
		files = settings.SchemeFiles
	}
	if len(files) == 0 {
		return fmt.Errorf("no scheme files given (use --file or --scheme-files)")
	}

	schemes := services.NewSchemeService(commands.NewRegistry(), files...)
	failed := reportFiles(printer, schemes.Verify(files...))

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		if failed {
			return errVerifyFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchFiles(ctx, printer, schemes, files)
}

// reportFiles prints one line per file and one per problem. It returns true
// when any file failed.
func reportFiles(printer *output.Printer, reports []services.FileReport) bool {
	failed := false
	for _, report := range reports {
		if report.OK() {
			printer.Success(fmt.Sprintf("%s: %d commands, %d variants", report.Path, report.Commands, report.Variants))
			continue
		}
		failed = true
		for _, err := range report.Errors {
			printer.Error(fmt.Sprintf("%s: %v", report.Path, err))
		}
	}
	return failed
}

func watchFiles(ctx context.Context, printer *output.Printer, schemes *services.SchemeService, files []string) error {
	if err := schemes.Load(files...); err != nil {
		printer.Warning("Initial load failed, waiting for changes: " + err.Error())
	}
	printer.Info(fmt.Sprintf("Watching %d scheme files, press Ctrl+C to stop", len(files)))

	return schemes.Watch(ctx, func(err error) {
		if err != nil {
			printer.Error("Reload failed: " + err.Error())
			return
		}
		logger.Debug("Schemes reloaded", "commands", schemes.LoadedCommands())
		printer.Success(fmt.Sprintf("Reloaded %d commands", schemes.LoadedCommands()))
	})
}
