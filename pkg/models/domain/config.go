package domain

type AzureProfile struct {
	Name     string
	TenantID string
	ClientID string
}
