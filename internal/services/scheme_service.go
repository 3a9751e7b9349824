package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"paramshell/internal/commands"
	"paramshell/internal/logger"
	"paramshell/internal/scheme"
)

// SchemeServiceName is the registry name of the scheme service.
const SchemeServiceName = "scheme"

// reloadDelay is how long the watcher waits for writes to settle.
const reloadDelay = 250 * time.Millisecond

// FileReport summarizes the verification of one scheme file.
type FileReport struct {
	Path     string
	Commands int
	Variants int
	Errors   []error
}

// OK reports whether the file loaded and every variant verified.
func (r FileReport) OK() bool {
	return len(r.Errors) == 0
}

// SchemeService loads command schemes from YAML or TOML files into a command
// registry and keeps them up to date when the files change.
type SchemeService struct {
	mu       sync.Mutex
	registry *commands.Registry
	paths    []string
	loaded   int
}

// NewSchemeService creates a scheme service that feeds registry.
func NewSchemeService(registry *commands.Registry, paths ...string) *SchemeService {
	return &SchemeService{registry: registry, paths: paths}
}

// Name returns the service name.
func (s *SchemeService) Name() string {
	return SchemeServiceName
}

// Initialize loads the configured scheme files.
func (s *SchemeService) Initialize() error {
	if s.registry == nil {
		return fmt.Errorf("scheme service needs a command registry")
	}
	if len(s.paths) == 0 {
		return nil
	}
	return s.Load(s.paths...)
}

// Paths returns the files the service was last asked to load.
func (s *SchemeService) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.paths)
}

// LoadedCommands returns how many file commands are currently registered.
func (s *SchemeService) LoadedCommands() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load reads, verifies and registers the commands of every file. Nothing is
// registered unless every file is valid.
func (s *SchemeService) Load(paths ...string) error {
	var all []*commands.Command
	var errs []error
	for _, path := range paths {
		cmds, err := loadCommands(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, cmds...)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if err := s.registry.ReplaceFileCommands(all); err != nil {
		return err
	}

	s.mu.Lock()
	s.paths = slices.Clone(paths)
	s.loaded = len(all)
	s.mu.Unlock()

	logger.ServiceOperation(SchemeServiceName, "load", "files", len(paths), "commands", len(all))
	return nil
}

// Verify checks every file without registering anything.
func (s *SchemeService) Verify(paths ...string) []FileReport {
	reports := make([]FileReport, 0, len(paths))
	for _, path := range paths {
		report := FileReport{Path: path}
		file, err := scheme.LoadFile(path)
		if err != nil {
			report.Errors = []error{err}
			reports = append(reports, report)
			continue
		}
		report.Commands, report.Variants = countCommands(file.Commands)
		report.Errors = file.VerifyAll()
		reports = append(reports, report)
	}
	return reports
}

// Watch reloads the scheme files whenever one of them changes, calling
// onReload with the result of each reload. It blocks until ctx is done.
func (s *SchemeService) Watch(ctx context.Context, onReload func(error)) error {
	paths := s.Paths()
	if len(paths) == 0 {
		return fmt.Errorf("no scheme files to watch")
	}

	wlog := logger.NewStyledLogger("Watcher")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			wlog.Warn("Failed to close file watcher", "error", err)
		}
	}()

	// Editors often replace files on save, so watch the directories.
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			wlog.Debug("Scheme file changed", "file", event.Name, "op", event.Op.String())
			pending = time.After(reloadDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			wlog.Warn("File watcher error", "error", err)

		case <-pending:
			pending = nil
			err := s.Load(paths...)
			if err != nil {
				wlog.Warn("Scheme reload failed", "error", err)
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}

func loadCommands(path string) ([]*commands.Command, error) {
	file, err := scheme.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if errs := file.VerifyAll(); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	cmds, err := commands.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func countCommands(specs []scheme.CommandSpec) (cmds, variants int) {
	for _, spec := range specs {
		cmds++
		variants += len(spec.Variants)
		c, v := countCommands(spec.SubCommands)
		cmds += c
		variants += v
	}
	return cmds, variants
}
