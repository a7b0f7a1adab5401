package audit

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

type mockResourceProvider struct{ mock.Mock }

func (m *mockResourceProvider) ListResources(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

type mockDiagnosticsProvider struct{ mock.Mock }

func (m *mockDiagnosticsProvider) ListDiagnosticSettings(
	ctx context.Context,
	resourceID string,
) ([]domain.DiagnosticSetting, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiagnosticSetting), args.Error(1)
}

type mockProviderFactory struct{ mock.Mock }

func (m *mockProviderFactory) ForSubscription(
	ctx context.Context,
	sub domain.Subscription,
) (ResourceProvider, DiagnosticsProvider, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(ResourceProvider), args.Get(1).(DiagnosticsProvider), args.Error(2)
}

type recordingSink struct {
	subscriptions []domain.Subscription
	results       []*domain.AuditResult
	summaries     []domain.SubscriptionSummary
}

func (s *recordingSink) SubscriptionAudited(sub domain.Subscription, result *domain.AuditResult) error {
	s.subscriptions = append(s.subscriptions, sub)
	s.results = append(s.results, result)
	return nil
}

func (s *recordingSink) Summary(summaries []domain.SubscriptionSummary) error {
	s.summaries = summaries
	return nil
}

type countingProgress struct {
	mu       sync.Mutex
	title    string
	total    int
	advanced int
	finished bool
}

func (p *countingProgress) Start(title string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
	p.total = total
}

func (p *countingProgress) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanced++
}

func (p *countingProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished = true
}
