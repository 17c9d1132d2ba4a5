// File: cmd/report.go
package cmd

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanbrief/internal/config"
	"github.com/xkilldash9x/scanbrief/internal/metadata"
	"github.com/xkilldash9x/scanbrief/internal/observability"
	"github.com/xkilldash9x/scanbrief/internal/orchestrator"
)

// metadataFactory builds the revision metadata source for a run.
type metadataFactory func(cfg config.MetadataConfig, logger *zap.Logger) metadata.Provider

// newDefaultMetadataProvider reads the CI environment first and, when enabled,
// falls back to the local git checkout for unresolved fields.
func newDefaultMetadataProvider(cfg config.MetadataConfig, logger *zap.Logger) metadata.Provider {
	chain := metadata.Chain{metadata.NewEnvProvider(metadata.EnvNames{
		Branch:     cfg.BranchEnv,
		Commit:     cfg.CommitEnv,
		Repository: cfg.RepositoryEnv,
	})}
	if cfg.GitFallback {
		chain = append(chain, metadata.NewGitProvider(cfg.RepoPath, logger))
	}
	return chain
}

// newReportCmd creates and configures the `report` command. Flags are bound to
// v, so they override the config file and environment.
func newReportCmd(v *viper.Viper, newMetadata metadataFactory) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the security report from the SARIF scan results",
		Long: `Reads the filesystem and infrastructure-as-code SARIF documents, summarizes
the findings by severity and location, and writes a single report document.

Missing or malformed inputs are described in the report. The command only fails
when the report itself cannot be written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()
			return runReport(ctx, cfg, afero.NewOsFs(), newMetadata(cfg.Metadata, logger), cmd.OutOrStdout(), logger)
		},
	}

	flags := reportCmd.Flags()
	flags.String("fs-results", "", "filesystem scan SARIF document (default trivy-results.sarif)")
	flags.String("iac-results", "", "infrastructure-as-code scan SARIF document (default trivy-iac-results.sarif)")
	flags.StringP("output", "o", "", "report output path (default trivy-security-report.md)")
	flags.StringP("format", "f", "", "report format: markdown, json or yaml (default markdown)")
	flags.Bool("git-metadata", false, "fill missing revision metadata from the local git checkout")

	_ = v.BindPFlag("input.filesystem", flags.Lookup("fs-results"))
	_ = v.BindPFlag("input.infrastructure", flags.Lookup("iac-results"))
	_ = v.BindPFlag("output.path", flags.Lookup("output"))
	_ = v.BindPFlag("output.format", flags.Lookup("format"))
	_ = v.BindPFlag("metadata.git_fallback", flags.Lookup("git-metadata"))

	return reportCmd
}

// runReport contains the core, testable logic of the report command.
func runReport(
	ctx context.Context,
	cfg *config.Config,
	fsys afero.Fs,
	meta metadata.Provider,
	stdout io.Writer,
	logger *zap.Logger,
) error {
	orch, err := orchestrator.New(orchestrator.Deps{
		Config:   cfg,
		Logger:   logger,
		Fs:       fsys,
		Metadata: meta,
		Stdout:   stdout,
	})
	if err != nil {
		return err
	}

	outcome, err := orch.Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Report command finished",
		zap.String("run_id", outcome.RunID),
		zap.String("verdict", string(outcome.Report.Verdict)),
	)
	return nil
}
