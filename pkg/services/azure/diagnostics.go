package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"golang.org/x/time/rate"

	"github.com/de-tools/diag-audit/pkg/adapters"
	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/services/audit"
)

type diagnosticsProvider struct {
	client  *armmonitor.DiagnosticSettingsClient
	limiter *rate.Limiter
}

func NewDiagnosticsProvider(
	cred azcore.TokenCredential,
	limiter *rate.Limiter,
	options *arm.ClientOptions,
) (audit.DiagnosticsProvider, error) {
	client, err := armmonitor.NewDiagnosticSettingsClient(cred, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create diagnostic settings client: %w", err)
	}
	return &diagnosticsProvider{client: client, limiter: limiter}, nil
}

func (p *diagnosticsProvider) ListDiagnosticSettings(
	ctx context.Context,
	resourceID string,
) ([]domain.DiagnosticSetting, error) {
	var settings []domain.DiagnosticSetting

	// the resource URI is substituted into "/{resourceUri}/providers/..." verbatim
	pager := p.client.NewListPager(strings.TrimPrefix(resourceID, "/"), nil)
	for pager.More() {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list diagnostic settings: %w", err)
		}
		for _, s := range page.Value {
			if s == nil {
				continue
			}
			settings = append(settings, adapters.MapDiagnosticSettingsResourceToDomainSetting(s))
		}
	}
	return settings, nil
}
