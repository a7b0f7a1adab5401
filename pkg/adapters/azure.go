package adapters

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/monitor/armmonitor"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/subscription/armsubscription"

	"github.com/de-tools/diag-audit/pkg/models/domain"
)

func MapGenericResourceToDomainResource(r *armresources.GenericResourceExpanded) domain.Resource {
	return domain.Resource{
		ID:       deref(r.ID),
		Type:     deref(r.Type),
		Kind:     deref(r.Kind),
		Name:     deref(r.Name),
		Location: deref(r.Location),
	}
}

func MapDiagnosticSettingsResourceToDomainSetting(s *armmonitor.DiagnosticSettingsResource) domain.DiagnosticSetting {
	setting := domain.DiagnosticSetting{
		ID:   deref(s.ID),
		Name: deref(s.Name),
	}
	if s.Properties == nil {
		return setting
	}

	setting.WorkspaceID = deref(s.Properties.WorkspaceID)
	for _, l := range s.Properties.Logs {
		if l == nil {
			continue
		}
		setting.Logs = append(setting.Logs, domain.LogEntry{
			Category:      deref(l.Category),
			CategoryGroup: deref(l.CategoryGroup),
			Enabled:       l.Enabled != nil && *l.Enabled,
		})
	}
	return setting
}

// MapSubscriptionToDomainSubscription returns false for entries missing an ID or display name.
func MapSubscriptionToDomainSubscription(s *armsubscription.Subscription, position int) (domain.Subscription, bool) {
	if s == nil || s.SubscriptionID == nil || s.DisplayName == nil {
		return domain.Subscription{}, false
	}
	return domain.Subscription{
		ID:       *s.SubscriptionID,
		Name:     *s.DisplayName,
		Position: position,
	}, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
