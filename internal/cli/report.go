package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ioc-usage/internal/app"
)

type reportOptions struct {
	Input       string
	Output      string
	Template    string
	Stats       string
	SkipInvalid bool
}

func newReportCommand() *cobra.Command {
	opts := reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate module usage and write the HTML report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "iocs.json", "IOC listing produced by the dependency loader")
	cmd.Flags().StringVar(&opts.Output, "output", "summary.html", "Report output path")
	cmd.Flags().StringVar(&opts.Template, "template", "", "Report template path (built-in template when empty)")
	cmd.Flags().StringVar(&opts.Stats, "stats", "", "Also write the statistics snapshot as JSON to this path")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "Skip malformed records instead of aborting")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("stats", cmd.Flags().Lookup("stats"))
	_ = viper.BindPFlag("skip_invalid", cmd.Flags().Lookup("skip-invalid"))
	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, opts reportOptions) error {
	service := newAppService()
	result, err := service.Report(ctx, app.ReportRequest{
		InputPath:    resolveString(cmd, opts.Input, "input", "input"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
		TemplatePath: resolveString(cmd, opts.Template, "template", "template"),
		StatsPath:    resolveString(cmd, opts.Stats, "stats", "stats"),
		GitHubOrg:    viper.GetString("github_org"),
		SkipInvalid:  resolveBool(cmd, opts.SkipInvalid, "skip_invalid", "skip-invalid"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("report written: %s (%d IOCs, %d modules, %d versions)\n",
		result.OutputPath, result.NumIOCs, result.NumModules, result.NumVersions)
	if len(result.Issues) > 0 {
		fmt.Printf("skipped records with %d data quality issues:\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Printf("- %s\n", issue)
		}
	}
	return nil
}
