package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/session"
	"github.com/jdziat/simple-crontab/pkg/storage"
	"github.com/jdziat/simple-crontab/pkg/system"
)

const version = "0.1.0"

// app carries the resolved configuration to every subcommand.
type app struct {
	cfg    *Config
	logger *slog.Logger

	// flag overrides
	dotenv   string
	user     string
	file     string
	history  string
	sudo     bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "cronedit",
		Short:         "List and edit crontab tables",
		Long:          "cronedit reads a crontab through the crontab binary or a plain file, edits it without disturbing lines it does not understand, and keeps a revision history.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dotenv, "env-file", ".env", "Dotenv file to load before reading the environment")
	flags.StringVarP(&a.user, "user", "u", "", "Edit another user's crontab (CRONEDIT_USER)")
	flags.StringVarP(&a.file, "file", "f", "", "Edit a plain file instead of running crontab (CRONEDIT_FILE)")
	flags.StringVar(&a.history, "history", "", "SQLite path or postgres:// URL for revision history (CRONEDIT_HISTORY_DB)")
	flags.BoolVar(&a.sudo, "sudo", false, "Run crontab through sudo (CRONEDIT_SUDO)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newLintCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	return rootCmd
}

// configure reads the environment, then applies flags that were set.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.dotenv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("user") {
		cfg.User = a.user
	}
	if flags.Changed("file") {
		cfg.File = a.file
	}
	if flags.Changed("history") {
		cfg.HistoryDB = a.history
	}
	if flags.Changed("sudo") {
		cfg.Sudo = a.sudo
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.level()}))
	return nil
}

// backend returns the configured backend and the owner its history is kept under.
func (a *app) backend() (core.Backend, string, error) {
	if a.cfg.File != "" {
		path, err := filepath.Abs(a.cfg.File)
		if err != nil {
			return nil, "", err
		}
		return system.NewFile(path), "file:" + path, nil
	}

	b, err := system.NewCrontab(
		system.WithUser(a.cfg.User),
		system.WithBinary(a.cfg.Binary),
		system.WithSudo(a.cfg.Sudo),
		system.WithLogger(a.logger),
	)
	if err != nil {
		return nil, "", err
	}

	owner := a.cfg.User
	if owner == "" {
		owner = session.DefaultOwner
		if u, err := user.Current(); err == nil {
			owner = u.Username
		}
	}
	return b, owner, nil
}

// open loads the session. The returned func releases the history database.
func (a *app) open(ctx context.Context) (*session.Session, func(), error) {
	backend, owner, err := a.backend()
	if err != nil {
		return nil, nil, err
	}

	done := func() {}
	opts := []session.Option{
		session.WithOwner(owner),
		session.WithKeep(a.cfg.HistoryKeep),
		session.WithLogger(a.logger),
	}
	if a.cfg.HistoryDB != "" {
		store, err := storage.Open(ctx, a.cfg.HistoryDB)
		if err != nil {
			return nil, nil, err
		}
		done = func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("crontab: close history", "error", err)
			}
		}
		opts = append(opts, session.WithHistory(store))
	}

	s := session.New(backend, opts...)
	if err := s.Open(ctx); err != nil {
		done()
		return nil, nil, err
	}
	return s, done, nil
}

// contextOf returns the command context, or Background when run without one.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
