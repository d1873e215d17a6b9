package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ynab-import/ynab-import/internal/config"
)

type initOptions struct {
	budgetID   string
	accountID  string
	income     string
	fallback   string
	noFallback bool
	importIDs  bool
	force      bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absPath, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", absPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.budgetID, "budget", "", "budget id")
	cmd.Flags().StringVar(&opts.accountID, "account", "", "account id")
	cmd.Flags().StringVar(&opts.income, "income-category", "", "category id for inflows")
	cmd.Flags().StringVar(&opts.fallback, "fallback-category", "", "category id for outflows")
	cmd.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "leave outflows uncategorized")
	cmd.Flags().BoolVar(&opts.importIDs, "import-ids", false, "stamp transactions with import ids")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")
	cmd.MarkFlagsMutuallyExclusive("fallback-category", "no-fallback")

	return cmd
}

func runInit(path string, opts initOptions) error {
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	cfg := config.Default()
	if opts.budgetID != "" {
		cfg.BudgetID = opts.budgetID
	}
	if opts.accountID != "" {
		cfg.AccountID = opts.accountID
	}
	if opts.income != "" {
		cfg.Categories.Income = opts.income
	}
	if opts.fallback != "" {
		cfg.Categories.Fallback = opts.fallback
	}
	if opts.noFallback {
		cfg.Categories.Fallback = ""
	}
	cfg.Import.ImportIDs = opts.importIDs

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return config.Save(path, cfg)
}
