package commands

import (
	"context"

	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/runtime/terminal/report"
	"github.com/de-tools/diag-audit/pkg/services/audit"
	"github.com/de-tools/diag-audit/pkg/services/config"
)

// Backend acquires credentials and talks to the cloud platform. Both methods
// fail when no credential can be obtained.
type Backend interface {
	Connect(ctx context.Context, cfg *config.Config) (audit.ProviderFactory, error)
	ListSubscriptions(ctx context.Context, cfg *config.Config) ([]domain.Subscription, error)
}

// Globals holds the root command's persistent flags and the config loaded from them.
type Globals struct {
	ConfigPath string
	LogLevel   string
	NoColor    bool
	Config     *config.Config
	// Progress is shared with the logger so log lines do not split the bar.
	Progress *report.ProgressBar
}

func (g *Globals) noColor() bool {
	return g.NoColor || (g.Config != nil && g.Config.Log.NoColor)
}
