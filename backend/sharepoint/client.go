package sharepoint

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
)

const (
	moduleName    = "github.com/c2fo/doclib/backend/sharepoint"
	moduleVersion = "v1.0.0"

	acceptJSON = "application/json;odata=nometadata"
)

// The Client interface is the part of runtime.Pipeline this backend uses.  This interface is here so we can write
// mocks over the actual functionality.
type Client interface {
	Do(req *policy.Request) (*http.Response, error)
}

// newPipeline returns an azcore pipeline authorizing every request with a bearer token for scope.
func newPipeline(cred azcore.TokenCredential, scope string, opts policy.ClientOptions) runtime.Pipeline {
	auth := runtime.NewBearerTokenPolicy(cred, []string{scope}, nil)
	return runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{auth},
	}, &opts)
}

// odataString quotes s as an OData string literal.
func odataString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// aliases renders OData parameter aliases as a query string.  Keys keep their leading @.
func aliases(params ...string) string {
	parts := make([]string, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		v := strings.ReplaceAll(url.QueryEscape(odataString(params[i+1])), "+", "%20")
		parts = append(parts, params[i]+"="+v)
	}
	return strings.Join(parts, "&")
}

// do sends a request and returns the body of a 2xx response.  Any other status is returned as *azcore.ResponseError.
func do(ctx context.Context, c Client, method, endpoint string, body []byte) ([]byte, error) {
	req, err := runtime.NewRequest(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}
	req.Raw().Header.Set("Accept", acceptJSON)
	if body != nil {
		if err := req.SetBody(streaming.NopCloser(bytes.NewReader(body)), "application/octet-stream"); err != nil {
			return nil, err
		}
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated, http.StatusNoContent) {
		return nil, runtime.NewResponseError(resp)
	}
	return runtime.Payload(resp)
}
