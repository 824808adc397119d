package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

type mockTokenCredential struct{}

func (mockTokenCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "aaa", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// MockTokenCredentialFactory knows how to create a "do-nothing" credential used for unit testing
func MockTokenCredentialFactory(_, _, _ string) (azcore.TokenCredential, error) {
	return mockTokenCredential{}, nil
}
