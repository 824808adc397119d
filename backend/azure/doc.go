/*
Package azure - Microsoft Azure Blob Storage doclib backend.

Each site is a container.  Blob names are the library paths, so /sites/{container}/Shared Documents/a.csv and
Shared Documents/a.csv both address the blob "Shared Documents/a.csv".

# Config

	SiteURL   optional service URL, ie: http://127.0.0.1:10000/devstoreaccount1 for Azurite.
	          Defaults to https://{account}.blob.core.windows.net
	SiteName  container name
	Library   blob prefix of the library
	Username  optional storage account name
	Password  optional storage account key

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/azure"
	)

	func UseProvider() {
	    p := backend.Backend(azure.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/azure"

	func DoSomething() {
	    p := azure.NewProvider(
	        azure.WithOptions(azure.Options{
	            AccountName: "...",
	            AccountKey:  "...",
	        }),
	    )

	    // to pass specific client, for instance mock client
	    p = azure.NewProvider(azure.WithClient(azure.NewMockAzureClient()))
	}

# Authentication

Authentication occurs on Authenticate, which also checks the container properties.  Credentials are looked for in the
following places, preferring the first location found:

 1. Service account values: Options TenantID, ClientID and ClientSecret, or the ENV vars DOCLIB_AZURE_TENANT_ID,
    DOCLIB_AZURE_CLIENT_ID and DOCLIB_AZURE_CLIENT_SECRET.

 2. Storage account values: Config.Username/Config.Password, Options AccountName and AccountKey, or the ENV vars
    DOCLIB_AZURE_STORAGE_ACCOUNT and DOCLIB_AZURE_STORAGE_ACCESS_KEY.

 3. Anonymous access.

# Chunked uploads

Each chunk is staged as a block and the block list is committed after the last chunk.  A file of a single chunk is
uploaded directly.

See: https://github.com/Azure/azure-sdk-for-go/tree/main/sdk/storage/azblob
*/
package azure
