package audit

import (
	"context"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

// ResourceProvider lists every resource of the subscription it is scoped to.
type ResourceProvider interface {
	ListResources(ctx context.Context) ([]domain.Resource, error)
}

// DiagnosticsProvider lists the diagnostic settings attached to a resource.
type DiagnosticsProvider interface {
	ListDiagnosticSettings(ctx context.Context, resourceID string) ([]domain.DiagnosticSetting, error)
}

// ProviderFactory builds the providers scoped to a single subscription.
type ProviderFactory interface {
	ForSubscription(ctx context.Context, sub domain.Subscription) (ResourceProvider, DiagnosticsProvider, error)
}

// Progress observes how many resources of a subscription have been scanned.
type Progress interface {
	Start(title string, total int)
	Advance()
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(string, int) {}
func (noopProgress) Advance()          {}
func (noopProgress) Finish()           {}
