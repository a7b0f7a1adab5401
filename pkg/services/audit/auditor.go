package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

const (
	DefaultConcurrency  = 8
	DefaultFetchTimeout = 30 * time.Second
)

// AuditorSettings contains what to look for and how hard to hit the API
type AuditorSettings struct {
	Category domain.ResourceTypeCategory
	Criteria domain.MatchCriteria
	// Concurrency bounds parallel diagnostic setting fetches within a subscription (default: 8)
	Concurrency int
	// FetchTimeout bounds a single resource's diagnostic setting fetch (default: 30s)
	FetchTimeout time.Duration
	Progress     Progress
}

type Auditor struct {
	settings AuditorSettings
}

func NewAuditor(settings AuditorSettings) *Auditor {
	if settings.Concurrency <= 0 {
		settings.Concurrency = DefaultConcurrency
	}
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = DefaultFetchTimeout
	}
	if settings.Progress == nil {
		settings.Progress = noopProgress{}
	}
	return &Auditor{settings: settings}
}

// Audit collects the matching diagnostic settings of every resource of the
// configured category in sub. It returns a nil result and a nil error when
// the subscription has no resources of that category.
//
// A failed or timed out diagnostic settings fetch is recorded on that
// resource with FetchStatusError and does not stop the audit.
func (a *Auditor) Audit(
	ctx context.Context,
	sub domain.Subscription,
	resources ResourceProvider,
	diagnostics DiagnosticsProvider,
) (*domain.AuditResult, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("subscription", sub.Name).
		Str("subscription_id", sub.ID).
		Logger()

	logger.Info().Msg("fetching all resources")
	all, err := resources.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources of subscription %s: %w", sub.Name, err)
	}

	candidates := dedupe(FilterResources(all, a.settings.Category))
	logger.Debug().
		Int("resources", len(all)).
		Int("candidates", len(candidates)).
		Str("category", string(a.settings.Category)).
		Msg("filtered resources")
	if len(candidates) == 0 {
		return nil, nil
	}

	audits := make([]domain.ResourceAudit, len(candidates))

	progress := a.settings.Progress
	progress.Start(fmt.Sprintf("Fetching diagnostic settings for %s", sub.Name), len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(a.settings.Concurrency)
	for i, r := range candidates {
		g.Go(func() error {
			audits[i] = a.auditResource(ctx, logger, r, diagnostics)
			progress.Advance()
			return nil
		})
	}
	_ = g.Wait()
	progress.Finish()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("audit of subscription %s interrupted: %w", sub.Name, err)
	}

	result := domain.NewAuditResult()
	for _, audit := range audits {
		result.Add(audit)
	}
	return result, nil
}

func (a *Auditor) auditResource(
	ctx context.Context,
	logger zerolog.Logger,
	r domain.Resource,
	diagnostics DiagnosticsProvider,
) domain.ResourceAudit {
	fetchCtx, cancel := context.WithTimeout(ctx, a.settings.FetchTimeout)
	defer cancel()

	settings, err := diagnostics.ListDiagnosticSettings(fetchCtx, r.ID)
	if err != nil {
		logger.Warn().Err(err).Str("resource", r.ID).Msg("failed to fetch diagnostic settings")
		return domain.ResourceAudit{Resource: r, Status: domain.FetchStatusError, Err: err}
	}

	matched := MatchSettings(settings, a.settings.Criteria)
	logger.Debug().
		Str("resource", r.ID).
		Str("location", r.Location).
		Int("settings", len(settings)).
		Int("matched", len(matched)).
		Msg("audited resource")

	if len(matched) == 0 {
		return domain.ResourceAudit{Resource: r, Status: domain.FetchStatusEmpty}
	}
	return domain.ResourceAudit{Resource: r, Status: domain.FetchStatusMatched, Settings: matched}
}

func dedupe(resources []domain.Resource) []domain.Resource {
	seen := make(map[string]struct{}, len(resources))
	unique := resources[:0:0]
	for _, r := range resources {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
