package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/runtime/terminal/report"
	"github.com/de-tools/diag-audit/pkg/services/audit"
	"github.com/de-tools/diag-audit/pkg/services/subscriptions"
)

type AuditCmd struct {
	subscriptionsPath string
	resourceType      string
	diagnostic        string
	workspace         string
	concurrency       int
	timeout           time.Duration
	globals           *Globals
	backend           Backend
	out               io.Writer
	errOut            io.Writer
}

func NewAuditCmd(globals *Globals, backend Backend, out, errOut io.Writer) *cobra.Command {
	ac := &AuditCmd{globals: globals, backend: backend, out: out, errOut: errOut}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit diagnostic settings of a resource type across subscriptions",
		Long: `Audit checks every resource of the given type in each subscription of the
list and reports the diagnostic settings that match -d/--diagnostic or route to
the -w/--workspace log analytics workspace.

A setting matching either criterion counts, even when both are given.`,
		Example: "  diag-audit audit -s subscriptions.csv -t appservice -w central-logs",
		RunE:    ac.run,
	}

	cmd.Flags().StringVarP(&ac.subscriptionsPath, "subscriptions", "s", "",
		"CSV file with one \"subscription id,subscription name\" per line")
	cmd.Flags().StringVarP(&ac.resourceType, "type", "t", "",
		fmt.Sprintf("Resource type to audit (%s)", joinCategories()))
	cmd.Flags().StringVarP(&ac.diagnostic, "diagnostic", "d", "", "Name of the diagnostic setting to look for")
	cmd.Flags().StringVarP(&ac.workspace, "workspace", "w", "", "Name of the log analytics workspace collecting the logs")
	cmd.Flags().IntVar(&ac.concurrency, "concurrency", 0, "Parallel diagnostic setting fetches per subscription (overrides audit.concurrency)")
	cmd.Flags().DurationVar(&ac.timeout, "timeout", 0, "Timeout of a single resource's diagnostic settings fetch (overrides audit.fetch_timeout)")

	_ = cmd.MarkFlagRequired("subscriptions")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	category, err := domain.ParseResourceTypeCategory(ac.resourceType)
	if err != nil {
		return err
	}

	criteria := domain.MatchCriteria{SettingName: ac.diagnostic, Workspace: ac.workspace}
	if err := criteria.Validate(); err != nil {
		return fmt.Errorf("%w (use -d/--diagnostic or -w/--workspace)", err)
	}

	cfg := ac.globals.Config
	concurrency, timeout := cfg.Audit.Concurrency, cfg.Audit.FetchTimeout
	if cmd.Flags().Changed("concurrency") {
		if ac.concurrency <= 0 {
			return fmt.Errorf("--concurrency must be positive, got %d", ac.concurrency)
		}
		concurrency = ac.concurrency
	}
	if cmd.Flags().Changed("timeout") {
		if ac.timeout <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", ac.timeout)
		}
		timeout = ac.timeout
	}

	subs, err := subscriptions.LoadFile(ac.subscriptionsPath)
	if err != nil {
		return err
	}

	progress := ac.globals.Progress
	if progress == nil {
		progress = report.NewProgressBar(ac.errOut, ac.globals.noColor())
	}
	settings := audit.AuditorSettings{
		Category:     category,
		Criteria:     criteria,
		Concurrency:  concurrency,
		FetchTimeout: timeout,
		Progress:     progress,
	}

	factory, err := ac.backend.Connect(ctx, cfg)
	if err != nil {
		return err
	}

	runner := audit.NewRunner(factory, audit.NewAuditor(settings), report.NewReporter(ac.out, ac.globals.noColor()))
	if _, err := runner.Run(ctx, subs); err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	return nil
}
