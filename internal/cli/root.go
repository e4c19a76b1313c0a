// Package cli implements the clipshelf command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clipshelf/internal/adapters/crypto"
	"clipshelf/internal/adapters/debuglog"
	"clipshelf/internal/application/persistence"
	"clipshelf/internal/config"
)

// ErrStoreUnavailable wraps a failure to open the durable store. The
// process cannot continue without it.
var ErrStoreUnavailable = errors.New("clipboard store unavailable")

// usesStore marks commands that open the store before running.
var usesStore = map[string]string{"store": "true"}

// app carries state shared by every command of one invocation.
type app struct {
	v        *viper.Viper
	cfg      config.Config
	debug    *debuglog.Logger
	ctrl     *persistence.Controller
	sealer   *crypto.Sealer
	readPass func(prompt io.Writer) (string, error)
}

// Execute runs the command line and releases the store afterwards.
func Execute(ctx context.Context, version string) error {
	root, a := newRoot(version)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newRoot(version string) (*cobra.Command, *app) {
	a := &app{v: config.New(), readPass: readPassphrase}

	root := &cobra.Command{
		Use:               "clipshelf",
		Short:             "Clipboard history kept in a local SQLite store",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringP(config.KeyDatabase, "d", config.DefaultDatabasePath(), "database file")
	pf.Bool(config.KeyEphemeral, false, "use a memory-only store that is discarded on exit")
	pf.String(config.KeyDebugLog, config.DefaultDebugLogPath(), "debug log file, empty to disable")
	pf.CountP(config.KeyVerbose, "v", "increase log verbosity")
	pf.BoolP(config.KeyQuiet, "q", false, "suppress all logs")
	pf.String("env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		a.addCommand(),
		a.listCommand(),
		a.showCommand(),
		a.deleteCommand(),
		a.categoriesCommand(),
		a.seedCommand(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if err := config.ReadFile(a.v); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.Quiet)

	if cmd.Annotations["store"] != "true" {
		return nil
	}

	a.debug = debuglog.Nop()
	if cfg.DebugLog != "" {
		a.debug = debuglog.New(debuglog.Options{
			Path:       cfg.DebugLog,
			MaxSizeMB:  cfg.DebugLogMaxMB,
			MaxBackups: cfg.DebugLogBackups,
			MaxAgeDays: cfg.DebugLogMaxAge,
		})
	}

	ctrl, err := persistence.Open(cmd.Context(), persistence.Options{
		Durable:   !cfg.Ephemeral,
		Path:      cfg.Database,
		SlowQuery: cfg.SlowQuery,
		Reporter:  a.debug,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	a.ctrl = ctrl
	return nil
}

// setupLogger installs a charm console handler as the slog default.
// Errors only by default; each -v lowers the threshold one level.
func setupLogger(w io.Writer, verbose int, quiet bool) {
	level := log.ErrorLevel - log.Level(verbose*4)
	if quiet {
		level = math.MaxInt32
	}
	logger := log.NewWithOptions(w, log.Options{
		TimeFormat:      time.Kitchen,
		ReportTimestamp: verbose > 1,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
	slog.Debug("logger_configured", "level", level.String())
}

func (a *app) close() {
	if a.ctrl != nil {
		if err := a.ctrl.Close(); err != nil {
			slog.Error("store_close_failed", "error", err)
		}
		a.ctrl = nil
	}
	if a.debug != nil {
		a.debug.Close()
		a.debug = nil
	}
}
