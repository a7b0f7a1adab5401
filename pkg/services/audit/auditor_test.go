package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

var sub1 = domain.Subscription{ID: "00000000-0000-0000-0000-000000000001", Name: "Sub1", Position: 1}

type slowDiagnostics struct{}

func (slowDiagnostics) ListDiagnosticSettings(ctx context.Context, _ string) ([]domain.DiagnosticSetting, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAuditor_Audit_NoResourcesFound(t *testing.T) {
	ctx := context.Background()

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return([]domain.Resource{
		{ID: "db", Type: "Microsoft.Sql/servers/databases"},
	}, nil)
	dp := new(mockDiagnosticsProvider)

	auditor := NewAuditor(AuditorSettings{
		Category: domain.CategoryAKS,
		Criteria: domain.MatchCriteria{SettingName: "diag1"},
	})
	result, err := auditor.Audit(ctx, sub1, rp, dp)

	assert.NoError(t, err)
	assert.Nil(t, result)
	rp.AssertExpectations(t)
	dp.AssertNotCalled(t, "ListDiagnosticSettings", mock.Anything, mock.Anything)
}

func TestAuditor_Audit_ListResourcesError(t *testing.T) {
	ctx := context.Background()
	errExpected := errors.New("forbidden")

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return(nil, errExpected)

	auditor := NewAuditor(AuditorSettings{
		Category: domain.CategoryAKS,
		Criteria: domain.MatchCriteria{SettingName: "diag1"},
	})
	result, err := auditor.Audit(ctx, sub1, rp, new(mockDiagnosticsProvider))

	assert.ErrorIs(t, err, errExpected)
	assert.Nil(t, result)
}

func TestAuditor_Audit_MatchesAndIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	resources := []domain.Resource{
		{ID: "a", Name: "web-a", Type: "Microsoft.Web/sites", Kind: "app"},
		{ID: "b", Name: "web-b", Type: "Microsoft.Web/sites", Kind: "app,linux"},
		{ID: "c", Name: "web-c", Type: "Microsoft.Web/sites", Kind: "app"},
		{ID: "db", Name: "db", Type: "Microsoft.Sql/servers/databases"},
	}
	diag1 := domain.DiagnosticSetting{
		Name: "diag1",
		Logs: []domain.LogEntry{{Category: "AppServiceConsoleLogs", Enabled: true}},
	}

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return(resources, nil)
	dp := new(mockDiagnosticsProvider)
	dp.On("ListDiagnosticSettings", mock.Anything, "a").Return([]domain.DiagnosticSetting{diag1, {Name: "other"}}, nil)
	dp.On("ListDiagnosticSettings", mock.Anything, "b").Return(nil, errors.New("resource does not support diagnostic settings"))
	dp.On("ListDiagnosticSettings", mock.Anything, "c").Return([]domain.DiagnosticSetting{}, nil)

	progress := &countingProgress{}
	auditor := NewAuditor(AuditorSettings{
		Category:    domain.CategoryAppService,
		Criteria:    domain.MatchCriteria{SettingName: "diag1"},
		Concurrency: 2,
		Progress:    progress,
	})
	result, err := auditor.Audit(ctx, sub1, rp, dp)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 3, result.Len())
	assert.Equal(t, 1, result.EnabledCount())
	assert.Equal(t, 1, result.FailedCount())

	a, ok := result.Get("a")
	require.True(t, ok)
	assert.Equal(t, domain.FetchStatusMatched, a.Status)
	assert.Equal(t, []domain.DiagnosticSetting{diag1}, a.Settings)

	b, ok := result.Get("b")
	require.True(t, ok)
	assert.Equal(t, domain.FetchStatusError, b.Status)
	assert.Empty(t, b.Settings)
	assert.Error(t, b.Err)

	c, ok := result.Get("c")
	require.True(t, ok)
	assert.Equal(t, domain.FetchStatusEmpty, c.Status)
	assert.Empty(t, c.Settings)

	var order []string
	for _, entry := range result.Entries() {
		order = append(order, entry.Resource.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)

	assert.Equal(t, 3, progress.total)
	assert.Equal(t, 3, progress.advanced)
	assert.True(t, progress.finished)
	assert.Contains(t, progress.title, "Sub1")
	dp.AssertExpectations(t)
}

func TestAuditor_Audit_DuplicateResourcesAuditedOnce(t *testing.T) {
	ctx := context.Background()
	cluster := domain.Resource{ID: "k", Name: "cluster", Type: "Microsoft.ContainerService/managedClusters"}

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return([]domain.Resource{cluster, cluster}, nil)
	dp := new(mockDiagnosticsProvider)
	dp.On("ListDiagnosticSettings", mock.Anything, "k").Return([]domain.DiagnosticSetting{}, nil).Once()

	auditor := NewAuditor(AuditorSettings{
		Category: domain.CategoryAKS,
		Criteria: domain.MatchCriteria{Workspace: "central"},
	})
	result, err := auditor.Audit(ctx, sub1, rp, dp)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
	dp.AssertExpectations(t)
}

func TestAuditor_Audit_FetchTimeoutIsPerResourceFailure(t *testing.T) {
	ctx := context.Background()

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return([]domain.Resource{
		{ID: "k", Name: "cluster", Type: "Microsoft.ContainerService/managedClusters"},
	}, nil)

	auditor := NewAuditor(AuditorSettings{
		Category:     domain.CategoryAKS,
		Criteria:     domain.MatchCriteria{SettingName: "diag1"},
		FetchTimeout: 10 * time.Millisecond,
	})
	result, err := auditor.Audit(ctx, sub1, rp, slowDiagnostics{})

	require.NoError(t, err)
	audit, ok := result.Get("k")
	require.True(t, ok)
	assert.Equal(t, domain.FetchStatusError, audit.Status)
	assert.ErrorIs(t, audit.Err, context.DeadlineExceeded)
}

func TestAuditor_Audit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rp := new(mockResourceProvider)
	rp.On("ListResources", mock.Anything).Return([]domain.Resource{
		{ID: "k", Name: "cluster", Type: "Microsoft.ContainerService/managedClusters"},
	}, nil)

	auditor := NewAuditor(AuditorSettings{
		Category: domain.CategoryAKS,
		Criteria: domain.MatchCriteria{SettingName: "diag1"},
	})
	result, err := auditor.Audit(ctx, sub1, rp, slowDiagnostics{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
