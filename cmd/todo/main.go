// Package main is the entry point for the todo terminal app.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/logging"
	"tasklist/internal/storage"
	"tasklist/internal/tasks"
	"tasklist/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a small to-do list for the terminal",
		Long: `todo keeps a single list of short tasks. Run it without arguments
for the interactive list, or use the subcommands to script it.

Tasks are saved after every change.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runUI,
	}
	root.SetVersionTemplate("todo version {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: user config dir)")

	root.AddCommand(newListCmd(), newAddCmd(), newToggleCmd(), newEditCmd(), newRmCmd(), newResetCmd())
	return root
}

// session bundles everything a command needs to work on the list.
type session struct {
	cfg         config.Config
	logger      *log.Logger
	tasks       *tasks.Manager
	store       *storage.Store
	logCloser   io.Closer
	firstLaunch bool
}

func openSession() (*session, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(path); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	mgr := tasks.NewManager(store, cfg.SlotKey, logger)
	if err := mgr.Load(); err != nil {
		store.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	mgr.SetFilter(cfg.Filter())
	logger.Info("session opened", "db", cfg.DBPath, "slot", cfg.SlotKey)

	return &session{
		cfg:         cfg,
		logger:      logger,
		tasks:       mgr,
		store:       store,
		logCloser:   logCloser,
		firstLaunch: firstLaunch,
	}, nil
}

func (s *session) Close() error {
	err := s.store.Close()
	if cerr := s.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := ui.Run(s.tasks, s.cfg, s.logger, s.firstLaunch); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
