package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"

	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/services/config"
)

const managementScope = "https://management.azure.com/.default"

// NewCredential builds the credential selected by cfg and requests a
// management token once, so a broken login fails before any subscription is
// audited.
func NewCredential(ctx context.Context, cfg config.AzureConfig) (azcore.TokenCredential, error) {
	logger := zerolog.Ctx(ctx)

	profile, err := LoadProfile(cfg.ProfilePath, cfg.Profile)
	if err != nil {
		return nil, err
	}
	tenantID := resolveTenant(cfg.TenantID, profile)

	cred, err := newCredential(cfg.Credential, tenantID, profile)
	if err != nil {
		return nil, err
	}
	if err := verifyCredential(ctx, cred); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("credential", cfg.Credential).
		Str("tenant_id", tenantID).
		Str("profile", profile.Name).
		Bool("managed_identity", profile.ClientID != "").
		Msg("acquired Azure credentials")
	return cred, nil
}

// resolveTenant prefers the configured tenant over the profile's.
func resolveTenant(configured string, profile domain.AzureProfile) string {
	if configured != "" {
		return configured
	}
	return profile.TenantID
}

func newCredential(kind, tenantID string, profile domain.AzureProfile) (azcore.TokenCredential, error) {
	switch kind {
	case "cli":
		cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
			TenantID: tenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
		}
		return cred, nil
	case "", "default":
		cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
			TenantID: tenantID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create default Azure credential: %w", err)
		}
		if profile.ClientID == "" {
			return cred, nil
		}

		// A user-assigned identity from the profile is tried first.
		managed, err := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(profile.ClientID),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create managed identity credential for client %s: %w", profile.ClientID, err)
		}
		chain, err := azidentity.NewChainedTokenCredential([]azcore.TokenCredential{managed, cred}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to chain Azure credentials: %w", err)
		}
		return chain, nil
	}
	return nil, fmt.Errorf("unsupported credential type: %s", kind)
}

func verifyCredential(ctx context.Context, cred azcore.TokenCredential) error {
	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}}); err != nil {
		return fmt.Errorf("failed to obtain Azure credentials (try `az login`): %w", err)
	}
	return nil
}
