package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/pkgtmpl/pkgtmpl/internal/branding"
	"github.com/pkgtmpl/pkgtmpl/internal/config"
	"github.com/pkgtmpl/pkgtmpl/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logLevelFlag string
	logger       = hclog.NewNullLogger()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn, error (default from config)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates npm package boilerplate (package.json, tsconfig, webpack and
jest configs, README, ignore files, src/auto-generated.ts) from a declarative
` + branding.TemplateFile() + ` kept at the project root.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := config.LogLevel()
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logger = logging.New(branding.CLIName(), level, cmd.ErrOrStderr())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
