package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

// Sink receives audit output as the run progresses.
type Sink interface {
	// SubscriptionAudited is called once per subscription in input order.
	// A nil result means the subscription has no resources of the audited category.
	SubscriptionAudited(sub domain.Subscription, result *domain.AuditResult) error
	Summary(summaries []domain.SubscriptionSummary) error
}

type Runner struct {
	factory ProviderFactory
	auditor *Auditor
	sink    Sink
}

func NewRunner(factory ProviderFactory, auditor *Auditor, sink Sink) *Runner {
	return &Runner{
		factory: factory,
		auditor: auditor,
		sink:    sink,
	}
}

// Run audits subs one after another and returns a summary per subscription
// in the same order.
func (r *Runner) Run(ctx context.Context, subs []domain.Subscription) ([]domain.SubscriptionSummary, error) {
	logger := zerolog.Ctx(ctx)
	summaries := make([]domain.SubscriptionSummary, 0, len(subs))

	for i, sub := range subs {
		logger.Info().Msgf("auditing subscription %s (%d/%d)", sub.Name, i+1, len(subs))

		resources, diagnostics, err := r.factory.ForSubscription(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("failed to create clients for subscription %s: %w", sub.Name, err)
		}

		result, err := r.auditor.Audit(ctx, sub, resources, diagnostics)
		if err != nil {
			return nil, err
		}

		summary := Summarize(sub, result)
		logger.Debug().
			Str("subscription", sub.Name).
			Int("enabled", summary.Enabled).
			Int("total", summary.Total).
			Int("failed", summary.Failed).
			Bool("no_resources", summary.NoResources).
			Msg("subscription audited")
		summaries = append(summaries, summary)

		if err := r.sink.SubscriptionAudited(sub, result); err != nil {
			return nil, fmt.Errorf("failed to report subscription %s: %w", sub.Name, err)
		}
	}

	if err := r.sink.Summary(summaries); err != nil {
		return nil, fmt.Errorf("failed to report summary: %w", err)
	}
	return summaries, nil
}

// Summarize tallies an audit result. A nil result counts as 0/0.
func Summarize(sub domain.Subscription, result *domain.AuditResult) domain.SubscriptionSummary {
	if result == nil {
		return domain.SubscriptionSummary{Subscription: sub, NoResources: true}
	}
	return domain.SubscriptionSummary{
		Subscription: sub,
		Enabled:      result.EnabledCount(),
		Total:        result.Len(),
		Failed:       result.FailedCount(),
	}
}
