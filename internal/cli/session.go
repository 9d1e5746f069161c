package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dbhelper/internal/config"
	"github.com/roach88/dbhelper/internal/logging"
	"github.com/roach88/dbhelper/internal/store"
)

// session bundles what every database command needs.
type session struct {
	formatter *OutputFormatter
	logger    *slog.Logger
	helper    *store.Helper
}

// openSession loads config, builds the logger, and opens the helper. The
// returned error is already reported through the formatter.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := logging.NewWithWriter(cfg.Logging, opts.Verbose, logWriter(cfg.Logging, cmd))
	for _, w := range cfg.Warnings() {
		logger.Warn("config warning", "detail", w)
	}

	formatter.VerboseLog("using %s database %s", cfg.Database.Driver, cfg.Database.URL)

	h, err := store.Open(cmd.Context(), cfg.StoreConfig(), store.WithLogger(logger))
	if err != nil {
		return nil, formatter.Fail("failed to open database", err)
	}

	return &session{formatter: formatter, logger: logger, helper: h}, nil
}

func (s *session) close() {
	if err := s.helper.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

func logWriter(cfg config.LoggingConfig, cmd *cobra.Command) io.Writer {
	if strings.EqualFold(cfg.Output, "stdout") {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
