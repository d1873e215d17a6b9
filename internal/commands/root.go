package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ynab-import/ynab-import/internal/buildinfo"
	"github.com/ynab-import/ynab-import/internal/config"
	"github.com/ynab-import/ynab-import/internal/id"
	"github.com/ynab-import/ynab-import/internal/logger"
	"github.com/ynab-import/ynab-import/internal/preview"
	"github.com/ynab-import/ynab-import/internal/run"
	"github.com/ynab-import/ynab-import/internal/ynab"
)

type importOptions struct {
	configPath string
	sync       bool
	dryRun     bool
	budgetID   string
	accountID  string
	baseURL    string
	logLevel   string
	logFormat  string
	timeout    time.Duration
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var opts importOptions

	rootCmd := &cobra.Command{
		Use:   "ynab-import <csv-file> <api-token>",
		Short: "Upload a bank CSV export to YNAB",
		Long: `Reads a bank export, converts every row after the "Transaction Date" header
into a YNAB transaction and uploads them in one bulk request.

With --sync only rows dated after the account's newest YNAB transaction are sent.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.ExactArgs(2),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1], opts)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFileName+" if present)")
	f.BoolVar(&opts.sync, "sync", false, "only upload rows dated after the newest transaction already in the account")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the batch as CSV instead of uploading")
	f.StringVar(&opts.budgetID, "budget", "", "budget id (overrides config)")
	f.StringVar(&opts.accountID, "account", "", "account id (overrides config)")
	f.StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", logger.FormatConsole, "log output format (console, json)")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall time limit for API calls (0 = no limit)")

	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func runImport(cmd *cobra.Command, path, token string, opts importOptions) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return run.ConfigError(err)
	}
	log, err := logger.NewFormat(cmd.ErrOrStderr(), opts.logFormat, level)
	if err != nil {
		return run.ConfigError(err)
	}
	if opts.timeout < 0 {
		return run.ConfigError(fmt.Errorf("timeout %s is negative", opts.timeout))
	}

	if token == "" {
		return run.ConfigError(errors.New("api token is empty"))
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return run.ConfigError(err)
	}

	ctx, cancel := withTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Debug().
		Str("budget_id", cfg.BudgetID).
		Str("account_id", cfg.AccountID).
		Bool("sync", opts.sync).
		Bool("dry_run", opts.dryRun).
		Msg("Starting import")

	client := ynab.NewClient(cfg.API.BaseURL, token, &http.Client{})
	res, err := run.New(client).Run(ctx, run.Options{
		Path:   path,
		Sync:   opts.sync,
		DryRun: opts.dryRun,
		Config: cfg,
	})
	if err != nil {
		return err
	}

	return report(cmd.OutOrStdout(), res)
}

// withTimeout bounds ctx by d. Zero leaves it unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func loadConfig(opts importOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultFileName)
	}
	if err != nil {
		return nil, err
	}

	if opts.budgetID != "" {
		cfg.BudgetID = opts.budgetID
	}
	if opts.accountID != "" {
		cfg.AccountID = opts.accountID
	}
	if opts.baseURL != "" {
		cfg.API.BaseURL = opts.baseURL
	}
	return cfg, nil
}

func report(w io.Writer, res *run.Result) error {
	switch res.Outcome {
	case run.OutcomeNothingToUpdate:
		fmt.Fprintln(w, "nothing to update")
	case run.OutcomeDryRun:
		if err := preview.Write(w, res.Batch); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
	default:
		fmt.Fprintf(w, "done! uploaded %d transactions", res.Created)
		if n := len(res.DuplicateImportIDs); n > 0 {
			fmt.Fprintf(w, " (%d already imported)", n)
		}
		fmt.Fprintln(w)
		for _, importID := range res.DuplicateImportIDs {
			fmt.Fprintf(w, "  already imported: %s\n", describeImportID(importID))
		}
	}
	return nil
}

// describeImportID renders an import id as "2023-01-07 -2.50 #1", or returns
// it unchanged when it was not written by this tool.
func describeImportID(importID string) string {
	amount, date, occurrence, err := id.ParseImportID(importID)
	if err != nil {
		return importID
	}
	return fmt.Sprintf("%s %s #%d", date, decimal.New(amount, -3).StringFixed(2), occurrence)
}
