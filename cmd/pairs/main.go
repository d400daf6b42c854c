package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_pairs/internal/domain"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/parser"
	"github.com/locvowork/employee_pairs/internal/report"
	"github.com/locvowork/employee_pairs/internal/service"
	"github.com/locvowork/employee_pairs/internal/source"
)

type matchOptions struct {
	strict       bool
	layouts      []string
	xlsxPath     string
	reportConfig string
	limit        int
	logLevel     string
}

func main() {
	root := &cobra.Command{
		Use:           "pairs",
		Short:         "Find employee pairs who worked together on common projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMatchCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "pairs: %v\n", err)
		os.Exit(1)
	}
}

func newMatchCmd() *cobra.Command {
	var opts matchOptions

	cmd := &cobra.Command{
		Use:   "match <file.txt>",
		Short: "Compute overlap days per employee pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogging(logger.Options{Level: opts.logLevel, Console: true})
			return runMatch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", true, "Reject lines with unparsable or reversed dates")
	cmd.Flags().StringSliceVar(&opts.layouts, "layout", nil, "Accepted date layout (repeatable, Go reference time format)")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "Also write the matches to this .xlsx file")
	cmd.Flags().StringVar(&opts.reportConfig, "report-config", "", "YAML layout for the .xlsx report")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Print at most this many rows (0 prints all)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	return cmd
}

func runMatch(ctx context.Context, out io.Writer, path string, opts matchOptions) error {
	lines, err := source.ReadFile(path)
	if err != nil {
		return err
	}

	parserOpts := []parser.Option{parser.WithStrict(opts.strict)}
	if len(opts.layouts) > 0 {
		parserOpts = append(parserOpts, parser.WithLayouts(opts.layouts...))
	}
	svc := service.NewMatchService(service.WithParserOptions(parserOpts...))

	result, err := svc.Compute(ctx, lines)
	if err != nil {
		return err
	}

	rows := service.Rows(result.Matches)
	if err := printRows(out, service.Page(rows, opts.limit, 0)); err != nil {
		return err
	}
	printIssues(out, result.Issues)

	if opts.xlsxPath != "" {
		if err := writeReport(opts, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nReport written to %s\n", opts.xlsxPath)
	}
	return nil
}

func printRows(out io.Writer, rows []domain.MatchRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No employee pairs worked together on a common project.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Employee ID #1\tEmployee ID #2\tProject ID\tDays worked")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\n", r.FirstEmployeeID, r.SecondEmployeeID, r.ProjectIDs, r.Days)
	}
	return tw.Flush()
}

func printIssues(out io.Writer, issues []domain.ParseIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%d line(s) rejected:\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  line %d: %s\n", issue.Line, issue.Reason)
	}
}

func writeReport(opts matchOptions, rows []domain.MatchRow) error {
	cfg := report.DefaultConfig()
	if opts.reportConfig != "" {
		var err error
		if cfg, err = report.LoadConfig(opts.reportConfig); err != nil {
			return err
		}
	}

	exporter, err := report.NewExporter(cfg)
	if err != nil {
		return err
	}
	return exporter.SaveAs(opts.xlsxPath, rows)
}
