// Package main provides the paramshell CLI application entry point.
// paramshell matches command lines against declarative parameter schemes and
// runs the handler of the first variant that fits.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"paramshell/internal/logger"
	"paramshell/internal/parser"
	"paramshell/internal/services"
	"paramshell/internal/shell"
	"paramshell/internal/version"
)

var (
	logLevel string
	logFile  string
	testMode bool

	// stdout receives everything the session prints.
	stdout io.Writer = os.Stdout
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paramshell",
	Short: "paramshell - scheme driven command shell",
	Long: `paramshell matches command lines against declarative parameter schemes.
Commands come built in or from YAML/TOML scheme files; each command has variants
guarded by requirements such as a minimum client version or an allowed action.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

var execCmd = &cobra.Command{
	Use:   "exec <command> [args...]",
	Short: "Run a single command line and exit",
	Example: `  paramshell exec schedule show today
  paramshell exec stats hours --format csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run every line of a script file, stopping at the first failure",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
			_, _ = fmt.Fprintln(stdout, version.GetDetailedVersion())
			return
		}
		_, _ = fmt.Fprintln(stdout, version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, services.KeyLogLevel, "", "Set log level (debug|info|warn|error) [default: info]")
	flags.StringVar(&logFile, services.KeyLogFile, "", "Write logs to file instead of stderr")
	flags.BoolVar(&testMode, services.KeyTestMode, false, "Run in deterministic test mode")
	flags.Bool(services.KeyDevMode, false, "Verify every scheme when it is registered")
	flags.String(services.KeyClientVersion, "", "Client version checked by version requirements")
	flags.String(services.KeyOrigin, "", "Request origin checked by origin requirements")
	flags.StringSlice(services.KeyAllowedActions, nil, "Actions the caller may perform (use * for all)")
	flags.StringSlice(services.KeySchemeFiles, nil, "YAML or TOML scheme files to load")
	flags.String(services.KeyTheme, "", "Output theme (default|plain)")
	flags.String(services.KeyOutput, "", "Output mode (auto|styled|plain|json)")

	for _, key := range []string{
		services.KeyLogLevel, services.KeyLogFile, services.KeyTestMode, services.KeyDevMode,
		services.KeyClientVersion, services.KeyOrigin, services.KeyAllowedActions,
		services.KeySchemeFiles, services.KeyTheme, services.KeyOutput,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", key, err)
			os.Exit(1)
		}
	}

	// Switches after the command name belong to the command line, not to cobra.
	execCmd.Flags().SetInterspersed(false)

	versionCmd.Flags().Bool("detailed", false, "Include build details")
	verifyCmd.Flags().StringSlice("file", nil, "Scheme file to verify (repeatable); defaults to --scheme-files")
	verifyCmd.Flags().Bool("watch", false, "Keep running and reload the files when they change")

	rootCmd.AddCommand(shellCmd, execCmd, runCmd, verifyCmd, versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func newSession() (*shell.Session, error) {
	session, err := shell.InitializeServices(services.NewConfigurationService(nil), stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return session, nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	logger.Info("Starting paramshell", "version", version.GetVersion())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return session.Run(ctx, historyFile(session.Settings))
}

func runExec(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	return session.ProcessInput(cmd.Context(), parser.Join(args))
}

func runScript(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return session.RunScript(ctx, string(content))
}

func historyFile(settings services.Settings) string {
	if settings.TestMode {
		return ""
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "paramshell")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Debug("History disabled", "error", err)
		return ""
	}
	return filepath.Join(dir, "history")
}
