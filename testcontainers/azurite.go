package testcontainers

import (
	"context"
	"net/url"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/azure/azurite"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/azure"
)

const azuriteContainer = "azurite"

func registerAzurite(t *testing.T) target {
	ctx := context.Background()
	is := require.New(t)

	ctr, err := azurite.Run(ctx, "mcr.microsoft.com/azure-storage/azurite:latest",
		testcontainers.WithName("doclib-azurite"),
		azurite.WithEnabledServices(azurite.BlobService),
	)
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	ep, err := ctr.BlobServiceURL(ctx)
	is.NoError(err)

	cred, err := azblob.NewSharedKeyCredential(azurite.AccountName, azurite.AccountKey)
	is.NoError(err)

	u, err := url.JoinPath(ep, azurite.AccountName)
	is.NoError(err)

	cli, err := azblob.NewClientWithSharedKeyCredential(u, cred, nil)
	is.NoError(err)

	_, err = cli.CreateContainer(ctx, azuriteContainer, nil)
	is.NoError(err)

	c := azure.NewClient(cli.ServiceClient().NewContainerClient(azuriteContainer))

	return register(target{
		name:     azure.Scheme,
		uri:      "az://" + azuriteContainer + "/" + library + "/",
		provider: azure.NewProvider(azure.WithClient(c)),
		cfg: doclib.Config{
			SiteURL:  u,
			SiteName: azuriteContainer,
			Library:  library,
		},
	})
}
