package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/subscription/armsubscription"

	"github.com/de-tools/diag-audit/pkg/adapters"
	"github.com/de-tools/diag-audit/pkg/models/domain"
)

// ListSubscriptions returns the enabled subscriptions visible to cred.
func ListSubscriptions(
	ctx context.Context,
	cred azcore.TokenCredential,
	options *arm.ClientOptions,
) ([]domain.Subscription, error) {
	client, err := armsubscription.NewSubscriptionsClient(cred, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var subscriptions []domain.Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get next page of subscriptions: %w", err)
		}

		for _, s := range page.Value {
			if s == nil || s.State == nil || *s.State != armsubscription.SubscriptionStateEnabled {
				continue
			}
			sub, ok := adapters.MapSubscriptionToDomainSubscription(s, len(subscriptions)+1)
			if !ok {
				continue
			}
			subscriptions = append(subscriptions, sub)
		}
	}
	return subscriptions, nil
}
