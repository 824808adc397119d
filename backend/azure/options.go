package azure

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/utils"
)

// Options contains options necessary for the azure doclib implementation
type Options struct {
	// AccountName holds the Azure Blob Storage account name for authentication
	AccountName string

	// AccountKey holds the Azure Blob Storage account key for authentication
	AccountKey string

	// TenantID holds the Azure Service Account tenant id for authentication
	TenantID string

	// ClientID holds the Azure Service Account client id for authentication
	ClientID string

	// ClientSecret holds the Azure Service Account client secret for authentication
	ClientSecret string

	// ClientOptions are passed to the container client, ie: Transport, Retry
	ClientOptions policy.ClientOptions

	tokenCredentialFactory TokenCredentialFactory
}

// NewOptions creates a new Options struct by populating values from environment variables.
func NewOptions() Options {
	return Options{
		AccountName:            os.Getenv("DOCLIB_AZURE_STORAGE_ACCOUNT"),
		AccountKey:             os.Getenv("DOCLIB_AZURE_STORAGE_ACCESS_KEY"),
		TenantID:               os.Getenv("DOCLIB_AZURE_TENANT_ID"),
		ClientID:               os.Getenv("DOCLIB_AZURE_CLIENT_ID"),
		ClientSecret:           os.Getenv("DOCLIB_AZURE_CLIENT_SECRET"),
		tokenCredentialFactory: DefaultTokenCredentialFactory,
	}
}

// merge applies the Config credential pair: Username is the account name and Password the account key.
func (o Options) merge(cfg doclib.Config) Options {
	if cfg.Username != "" {
		o.AccountName = cfg.Username
	}
	if cfg.Password != "" {
		o.AccountKey = cfg.Password
	}
	if o.tokenCredentialFactory == nil {
		o.tokenCredentialFactory = DefaultTokenCredentialFactory
	}
	return o
}

// Credential returns an azcore.TokenCredential when service account values are set, a *container.SharedKeyCredential
// when account values are set, or nil for anonymous access.
func (o Options) Credential() (any, error) {
	// Check to see if we have service account credentials
	if o.TenantID != "" && o.ClientID != "" && o.ClientSecret != "" {
		return o.tokenCredentialFactory(o.TenantID, o.ClientID, o.ClientSecret)
	}

	// Check to see if we have storage account credentials
	if o.AccountName != "" && o.AccountKey != "" {
		return container.NewSharedKeyCredential(o.AccountName, o.AccountKey)
	}

	// Return a nil credential for anonymous access
	return nil, nil
}

// containerURL returns the URL of the container called containerName.  Without a SiteURL the public endpoint of the
// account is used.
func (o Options) containerURL(siteURL, containerName string) (string, error) {
	if siteURL == "" {
		if o.AccountName == "" {
			return "", fmt.Errorf("no site url or account name configured")
		}
		siteURL = fmt.Sprintf("https://%s.blob.core.windows.net", o.AccountName)
	}
	return utils.EnsureTrailingSlash(siteURL) + containerName, nil
}

// newContainerClient builds the container client matching the credential type
func (o Options) newContainerClient(siteURL, containerName string) (*container.Client, error) {
	containerURL, err := o.containerURL(siteURL, containerName)
	if err != nil {
		return nil, err
	}
	cred, err := o.Credential()
	if err != nil {
		return nil, err
	}

	opts := &container.ClientOptions{ClientOptions: o.ClientOptions}
	switch c := cred.(type) {
	case azcore.TokenCredential:
		return container.NewClient(containerURL, c, opts)
	case *container.SharedKeyCredential:
		return container.NewClientWithSharedKeyCredential(containerURL, c, opts)
	default:
		return container.NewClientWithNoCredential(containerURL, opts)
	}
}
