package azure

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/de-tools/diag-audit/pkg/models/domain"
	"github.com/de-tools/diag-audit/pkg/services/config"
)

type fakeCredential struct{}

func (fakeCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type fakeTransport struct {
	mu        sync.Mutex
	responses map[string]fakeResponse // keyed by URL path suffix
	paths     []string
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.paths = append(f.paths, req.URL.Path)
	f.mu.Unlock()

	for suffix, resp := range f.responses {
		if strings.HasSuffix(req.URL.Path, suffix) {
			return &http.Response{
				StatusCode: resp.status,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(resp.body)),
				Request:    req,
			}, nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"ResourceNotFound","message":"not found"}}`)),
		Request:    req,
	}, nil
}

func testClientOptions(transport policy.Transporter) *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Transport: transport,
			Retry:     policy.RetryOptions{MaxRetries: -1},
		},
	}
}

func TestResourceProvider_ListResources(t *testing.T) {
	transport := &fakeTransport{responses: map[string]fakeResponse{
		"/subscriptions/s1/resources": {status: http.StatusOK, body: `{"value":[
			{"id":"/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Web/sites/shop","name":"shop","type":"Microsoft.Web/sites","kind":"app,linux","location":"westeurope"},
			{"id":"/subscriptions/s1/resourceGroups/rg/providers/Microsoft.ContainerService/managedClusters/k8s","name":"k8s","type":"Microsoft.ContainerService/managedClusters","location":"westeurope"}
		]}`},
	}}

	provider, err := NewResourceProvider("s1", fakeCredential{}, testClientOptions(transport))
	require.NoError(t, err)

	resources, err := provider.ListResources(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Resource{
		{
			ID:       "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Web/sites/shop",
			Type:     "Microsoft.Web/sites",
			Kind:     "app,linux",
			Name:     "shop",
			Location: "westeurope",
		},
		{
			ID:       "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.ContainerService/managedClusters/k8s",
			Type:     "Microsoft.ContainerService/managedClusters",
			Name:     "k8s",
			Location: "westeurope",
		},
	}, resources)
}

func TestDiagnosticsProvider_ListDiagnosticSettings(t *testing.T) {
	transport := &fakeTransport{responses: map[string]fakeResponse{
		"/sites/shop/providers/Microsoft.Insights/diagnosticSettings": {status: http.StatusOK, body: `{"value":[
			{"id":"x/diagnosticSettings/diag1","name":"diag1","properties":{
				"workspaceId":"/subscriptions/s1/resourceGroups/logs/providers/Microsoft.OperationalInsights/workspaces/central",
				"logs":[{"category":"AppServiceConsoleLogs","enabled":true},{"categoryGroup":"audit","enabled":false}]
			}}
		]}`},
	}}

	provider, err := NewDiagnosticsProvider(fakeCredential{}, rate.NewLimiter(rate.Inf, 1), testClientOptions(transport))
	require.NoError(t, err)

	settings, err := provider.ListDiagnosticSettings(context.Background(),
		"/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Web/sites/shop")

	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "diag1", settings[0].Name)
	assert.Equal(t, "central", settings[0].WorkspaceName())
	assert.Equal(t, []domain.LogEntry{
		{Category: "AppServiceConsoleLogs", Enabled: true},
		{CategoryGroup: "audit", Enabled: false},
	}, settings[0].Logs)

	require.NotEmpty(t, transport.paths)
	assert.NotContains(t, transport.paths[0], "//")
}

func TestDiagnosticsProvider_ErrorResponse(t *testing.T) {
	transport := &fakeTransport{responses: map[string]fakeResponse{}}

	provider, err := NewDiagnosticsProvider(fakeCredential{}, rate.NewLimiter(rate.Inf, 1), testClientOptions(transport))
	require.NoError(t, err)

	settings, err := provider.ListDiagnosticSettings(context.Background(), "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Sql/servers/sql/databases/master")

	assert.Error(t, err)
	assert.Nil(t, settings)
}

func TestProviderFactory_ForSubscription(t *testing.T) {
	factory := NewProviderFactory(fakeCredential{}, config.AzureConfig{RequestsPerSecond: 0.5, MaxRetries: 1})

	resources, diagnostics, err := factory.ForSubscription(context.Background(), domain.Subscription{ID: "s1", Name: "Sub1"})

	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.NotNil(t, diagnostics)
}
