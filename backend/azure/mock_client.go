package azure

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// MockAzureClient is an in-memory implementation of azure.Client.  When ExpectedError is set every call returns it;
// PropertiesError only fails Properties.
type MockAzureClient struct {
	PropertiesError error
	ExpectedError   error

	mu     sync.Mutex
	blobs  map[string]mockBlob
	staged map[string]map[string][]byte
	calls  []string
}

type mockBlob struct {
	data     []byte
	created  time.Time
	modified time.Time
}

// NewMockAzureClient returns an empty MockAzureClient
func NewMockAzureClient() *MockAzureClient {
	return &MockAzureClient{
		blobs:  make(map[string]mockBlob),
		staged: make(map[string]map[string][]byte),
	}
}

// Calls returns the names of the methods called so far, in order.
func (a *MockAzureClient) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.calls)
}

func (a *MockAzureClient) call(method string) error {
	a.calls = append(a.calls, method)
	return a.ExpectedError
}

// Properties returns the value of PropertiesError
func (a *MockAzureClient) Properties(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("Properties"); err != nil {
		return err
	}
	return a.PropertiesError
}

// List returns the blobs directly below prefix
func (a *MockAzureClient) List(_ context.Context, prefix string) ([]BlobProperties, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("List"); err != nil {
		return nil, err
	}

	var list []BlobProperties
	for name, b := range a.blobs {
		if strings.HasPrefix(name, prefix) && !strings.Contains(strings.TrimPrefix(name, prefix), "/") {
			list = append(list, BlobProperties{Name: name, Size: int64(len(b.data)), CreatedOn: b.created, LastModified: b.modified})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Download returns the blob content or a BlobNotFound error
func (a *MockAzureClient) Download(_ context.Context, blobName string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("Download"); err != nil {
		return nil, err
	}
	b, ok := a.blobs[blobName]
	if !ok {
		return nil, MockStorageError(bloberror.BlobNotFound, http.StatusNotFound, blobName)
	}
	return bytes.Clone(b.data), nil
}

// Upload stores content
func (a *MockAzureClient) Upload(_ context.Context, blobName string, content []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("Upload"); err != nil {
		return err
	}
	a.put(blobName, bytes.Clone(content))
	return nil
}

func (a *MockAzureClient) put(blobName string, data []byte) {
	now := time.Now().UTC().Truncate(time.Second)
	b, ok := a.blobs[blobName]
	if !ok {
		b.created = now
	}
	b.data = data
	b.modified = now
	a.blobs[blobName] = b
}

// StageBlock keeps chunk until CommitBlockList
func (a *MockAzureClient) StageBlock(_ context.Context, blobName, blockID string, chunk []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("StageBlock"); err != nil {
		return err
	}
	if a.staged[blobName] == nil {
		a.staged[blobName] = make(map[string][]byte)
	}
	a.staged[blobName][blockID] = bytes.Clone(chunk)
	return nil
}

// CommitBlockList joins the staged blocks named by blockIDs
func (a *MockAzureClient) CommitBlockList(_ context.Context, blobName string, blockIDs []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.call("CommitBlockList"); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, id := range blockIDs {
		block, ok := a.staged[blobName][id]
		if !ok {
			return MockStorageError(bloberror.InvalidBlockList, http.StatusBadRequest, blobName)
		}
		buf.Write(block)
	}
	delete(a.staged, blobName)
	a.put(blobName, buf.Bytes())
	return nil
}

// MockStorageError returns the *azcore.ResponseError the service answers with for code
func MockStorageError(code bloberror.Code, status int, blobName string) error {
	req := &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{Scheme: "https", Host: "mock.blob.core.windows.net", Path: "/" + blobName},
	}
	return &azcore.ResponseError{
		ErrorCode:  string(code),
		StatusCode: status,
		RawResponse: &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Request:    req,
		},
	}
}
