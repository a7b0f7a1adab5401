package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/diag-audit/pkg/services/subscriptions"
)

type SubscriptionsCmd struct {
	outputPath string
	globals    *Globals
	backend    Backend
	out        io.Writer
}

func NewSubscriptionsCmd(globals *Globals, backend Backend, out io.Writer) *cobra.Command {
	sc := &SubscriptionsCmd{globals: globals, backend: backend, out: out}
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List enabled subscriptions as a CSV usable with audit -s",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.outputPath, "output", "o", "", "Write the CSV to this file instead of stdout")

	return cmd
}

func (sc *SubscriptionsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	subs, err := sc.backend.ListSubscriptions(ctx, sc.globals.Config)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No enabled subscriptions found.")
		return nil
	}

	if sc.outputPath == "" {
		return subscriptions.Write(sc.out, subs)
	}

	f, err := os.Create(sc.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sc.outputPath, err)
	}
	defer f.Close()

	if err := subscriptions.Write(f, subs); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Msgf("wrote %d subscriptions to %s", len(subs), sc.outputPath)
	return f.Close()
}
