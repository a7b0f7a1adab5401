package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/de-tools/diag-audit/pkg/adapters"
	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/services/audit"
)

type resourceProvider struct {
	subscriptionID string
	client         *armresources.Client
}

func NewResourceProvider(
	subscriptionID string,
	cred azcore.TokenCredential,
	options *arm.ClientOptions,
) (audit.ResourceProvider, error) {
	client, err := armresources.NewClient(subscriptionID, cred, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}
	return &resourceProvider{subscriptionID: subscriptionID, client: client}, nil
}

func (p *resourceProvider) ListResources(ctx context.Context) ([]domain.Resource, error) {
	var resources []domain.Resource

	pager := p.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get next page of resources: %w", err)
		}
		for _, r := range page.Value {
			if r == nil {
				continue
			}
			resources = append(resources, adapters.MapGenericResourceToDomainResource(r))
		}
	}
	return resources, nil
}
