package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"golang.org/x/time/rate"

	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/services/audit"
	"github.com/de-tools/diag-audit/pkg/services/config"
)

// CredentialFunc acquires a verified credential for the configured account.
type CredentialFunc func(ctx context.Context, cfg config.AzureConfig) (azcore.TokenCredential, error)

// Backend connects the audit pipeline to Azure Resource Manager.
type Backend struct {
	credential CredentialFunc
}

func NewBackend() *Backend {
	return &Backend{credential: NewCredential}
}

func (b *Backend) Connect(ctx context.Context, cfg *config.Config) (audit.ProviderFactory, error) {
	cred, err := b.credential(ctx, cfg.Azure)
	if err != nil {
		return nil, err
	}
	return NewProviderFactory(cred, cfg.Azure), nil
}

func (b *Backend) ListSubscriptions(ctx context.Context, cfg *config.Config) ([]domain.Subscription, error) {
	cred, err := b.credential(ctx, cfg.Azure)
	if err != nil {
		return nil, err
	}
	return ListSubscriptions(ctx, cred, clientOptions(cfg.Azure))
}

type providerFactory struct {
	cred    azcore.TokenCredential
	limiter *rate.Limiter
	options *arm.ClientOptions
}

// NewProviderFactory shares one rate limiter between every subscription's
// diagnostics provider, since ARM throttles reads per principal.
func NewProviderFactory(cred azcore.TokenCredential, cfg config.AzureConfig) audit.ProviderFactory {
	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &providerFactory{
		cred:    cred,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		options: clientOptions(cfg),
	}
}

func (f *providerFactory) ForSubscription(
	_ context.Context,
	sub domain.Subscription,
) (audit.ResourceProvider, audit.DiagnosticsProvider, error) {
	resources, err := NewResourceProvider(sub.ID, f.cred, f.options)
	if err != nil {
		return nil, nil, err
	}
	diagnostics, err := NewDiagnosticsProvider(f.cred, f.limiter, f.options)
	if err != nil {
		return nil, nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}
	return resources, diagnostics, nil
}

func clientOptions(cfg config.AzureConfig) *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: cfg.MaxRetries},
		},
	}
}
