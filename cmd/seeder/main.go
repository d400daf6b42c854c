package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/locvowork/employee_pairs/internal/bootstrap"
	"github.com/locvowork/employee_pairs/internal/config"
	"github.com/locvowork/employee_pairs/internal/database"
	"github.com/locvowork/employee_pairs/internal/logger"
	"github.com/locvowork/employee_pairs/internal/repository"
)

type seedOptions struct {
	preset    string
	employees int
	projects  int
	rows      int
	seed      int64
}

func (o seedOptions) size() database.SeedSize {
	size := database.GetPresetConfig(database.SeedPreset(o.preset))
	if o.employees > 0 {
		size.Employees = o.employees
	}
	if o.projects > 0 {
		size.Projects = o.projects
	}
	if o.rows > 0 {
		size.Rows = o.rows
	}
	return size
}

func main() {
	root := &cobra.Command{
		Use:           "seeder",
		Short:         "Generate sample project assignments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var opts seedOptions
	root.PersistentFlags().StringVar(&opts.preset, "preset", string(database.PresetSmall), "Data preset: small, medium, large, xlarge")
	root.PersistentFlags().IntVar(&opts.employees, "employees", 0, "Number of employees (overrides preset)")
	root.PersistentFlags().IntVar(&opts.projects, "projects", 0, "Number of projects (overrides preset)")
	root.PersistentFlags().IntVar(&opts.rows, "rows", 0, "Number of assignments (overrides preset)")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "Random seed")

	root.AddCommand(newFileCmd(&opts), newDBCmd(&opts))

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "seeder: %v\n", err)
		os.Exit(1)
	}
}

func newFileCmd(opts *seedOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "file",
		Short: "Write random assignments to a .txt file",
		RunE: func(cmd *cobra.Command, args []string) error {
			size := opts.size()
			assignments := database.NewDataSeeder(nil, opts.seed).Generate(size)

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := database.WriteText(f, assignments); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assignments to %s\n", len(assignments), out)
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&out, "out", "sample.txt", "Output file")
	return cmd
}

func newDBCmd(opts *seedOptions) *cobra.Command {
	var (
		clearAll bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Seed or clear the project_assignment table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := config.LoadEnvConfig(); err != nil {
				return fmt.Errorf("failed to load env config: %w", err)
			}
			logger.InitLogging(logger.Options{
				FilePath: config.DefaultEnvConfig.LOG_FILE_PATH,
				Level:    config.DefaultEnvConfig.LOG_LEVEL,
				Console:  true,
			})

			db, err := database.NewPostgresDB(ctx, bootstrap.DatabaseConfig())
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewAssignmentRepository(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				return err
			}
			seeder := database.NewDataSeeder(repo, opts.seed)

			if clearAll {
				return performClear(ctx, cmd, seeder, yes)
			}
			return seeder.SeedData(ctx, opts.size())
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all assignments instead of seeding")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt when clearing")
	return cmd
}

func performClear(ctx context.Context, cmd *cobra.Command, seeder *database.DataSeeder, yes bool) error {
	if !yes {
		fmt.Fprintln(cmd.OutOrStdout(), "This will delete all assignments!")
		fmt.Fprint(cmd.OutOrStdout(), "Continue? (yes/no): ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(response) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}
	return seeder.ClearData(ctx)
}
