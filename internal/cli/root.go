// Package cli is the heroctl command tree. Each subcommand runs one hero operation and prints the
// result followed by the session's notifier messages.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/hero-data-service/internal/app"
	"github.com/samvad-hq/hero-data-service/internal/config"
	"github.com/samvad-hq/hero-data-service/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// session is the client built once per invocation by the root pre-run hook.
type session struct {
	client *app.Client
	log    *logger.Zap
}

// newRootCmd builds heroctl with every subcommand registered. Logs go to logOut.
func newRootCmd(logOut io.Writer) (*cobra.Command, *session) {
	if logOut == nil {
		logOut = os.Stderr
	}
	s := &session{}

	cmd := &cobra.Command{
		Use:           "heroctl",
		Short:         "Talk to the heroes API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd, logOut)
		},
	}
	cmd.PersistentFlags().String("api-url", "", "Base URL of the heroes API")
	cmd.PersistentFlags().Int64("timeout", 0, "Request timeout in seconds")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("sinks", "", "Diagnostic sinks file (YAML or JSON)")

	newListCmd(cmd, s)
	newGetCmd(cmd, s)
	newAddCmd(cmd, s)
	newUpdateCmd(cmd, s)
	newDeleteCmd(cmd, s)
	newSearchCmd(cmd, s)
	return cmd, s
}

// Execute runs the command tree against args and releases the session afterwards.
func Execute(ctx context.Context, args []string, out, logOut io.Writer) (err error) {
	root, s := newRootCmd(logOut)
	defer func() {
		if cerr := s.close(); err == nil {
			err = cerr
		}
	}()
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func (s *session) open(cmd *cobra.Command, logOut io.Writer) error {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s.log = logger.New(cfg.LogLevel, zapcore.AddSync(logOut))
	s.client, err = app.NewClient(cmd.Context(), cfg, s.log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}
	return nil
}

func (s *session) close() error {
	if s.log != nil {
		defer s.log.Sync()
	}
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// print writes result as indented JSON, then every notifier message on its own line.
func (s *session) print(cmd *cobra.Command, result any) error {
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	for _, msg := range s.client.Messages.Messages() {
		fmt.Fprintln(out, msg)
	}
	return nil
}
