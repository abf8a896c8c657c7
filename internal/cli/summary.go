package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ioc-usage/internal/app"
)

type summaryOptions struct {
	Input       string
	SkipInvalid bool
}

func newSummaryCommand() *cobra.Command {
	opts := summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the plain-text usage summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "iocs.json", "IOC listing produced by the dependency loader")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "Skip malformed records instead of aborting")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("skip_invalid", cmd.Flags().Lookup("skip-invalid"))
	return cmd
}

func runSummary(ctx context.Context, cmd *cobra.Command, opts summaryOptions) error {
	service := newAppService()
	result, err := service.Summarize(ctx, app.SummaryRequest{
		InputPath:   resolveString(cmd, opts.Input, "input", "input"),
		GitHubOrg:   viper.GetString("github_org"),
		SkipInvalid: resolveBool(cmd, opts.SkipInvalid, "skip_invalid", "skip-invalid"),
	})
	if err != nil {
		return err
	}
	fmt.Print(result.Text)
	if len(result.Issues) > 0 {
		fmt.Printf("\nskipped records with %d data quality issues\n", len(result.Issues))
	}
	return nil
}
