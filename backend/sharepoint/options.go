package sharepoint

import (
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/c2fo/doclib"
)

// defaultTenant lets the username/password flow resolve the tenant from the account.
const defaultTenant = "organizations"

// Options contains options necessary for the sharepoint doclib implementation
type Options struct {
	// TenantID holds the Entra tenant id for authentication
	TenantID string

	// ClientID holds the id of the app registration used to request tokens
	ClientID string

	// ClientSecret holds the app registration secret.  When set, app-only authentication is used and the Config
	// credentials are ignored.
	ClientSecret string

	// ClientOptions are passed to the azcore pipeline, ie: Transport, Retry, Logging
	ClientOptions policy.ClientOptions
}

// NewOptions returns Options populated from the environment.
func NewOptions() Options {
	return Options{
		TenantID:     os.Getenv("SHAREPOINT_TENANT_ID"),
		ClientID:     os.Getenv("SHAREPOINT_CLIENT_ID"),
		ClientSecret: os.Getenv("SHAREPOINT_CLIENT_SECRET"),
	}
}

// Credential returns the azidentity credential matching o and cfg.
func (o Options) Credential(cfg doclib.Config) (azcore.TokenCredential, error) {
	tenant := o.TenantID
	if tenant == "" {
		tenant = defaultTenant
	}
	clientOpts := &azidentity.ClientSecretCredentialOptions{ClientOptions: azcore.ClientOptions{Transport: o.ClientOptions.Transport}}

	if o.ClientSecret != "" {
		return azidentity.NewClientSecretCredential(tenant, o.ClientID, o.ClientSecret, clientOpts)
	}

	//nolint:staticcheck // ROPC is what username/password site access needs
	return azidentity.NewUsernamePasswordCredential(tenant, o.ClientID, cfg.Username, cfg.Password,
		&azidentity.UsernamePasswordCredentialOptions{ClientOptions: clientOpts.ClientOptions})
}
