package sharepoint

import (
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// MockClient is a mock implementation of sharepoint.Client.  Every request is answered with Status and Body unless
// ExpectedError is set.
type MockClient struct {
	Status        int
	Body          string
	ExpectedError error
	Requests      []*http.Request
}

// Do records the request and returns the canned response.
func (c *MockClient) Do(req *policy.Request) (*http.Response, error) {
	c.Requests = append(c.Requests, req.Raw())
	if c.ExpectedError != nil {
		return nil, c.ExpectedError
	}
	status := c.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{acceptJSON}},
		Body:       io.NopCloser(strings.NewReader(c.Body)),
		Request:    req.Raw(),
	}, nil
}
