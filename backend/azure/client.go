package azure

import (
	"bytes"
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// The Client interface contains methods that perform specific operations to one Azure Blob Storage container.  This
// interface is here so we can write mocks over the actual functionality.
type Client interface {
	// Properties should return an error when the container cannot be reached.
	Properties(ctx context.Context) error

	// List should return the blobs directly below prefix.  Virtual directories are not returned.
	List(ctx context.Context, prefix string) ([]BlobProperties, error)

	// Download should return the content of the blob called blobName.
	Download(ctx context.Context, blobName string) ([]byte, error)

	// Upload should create or overwrite the blob called blobName with content.
	Upload(ctx context.Context, blobName string, content []byte) error

	// StageBlock should stage chunk as an uncommitted block of blobName.
	StageBlock(ctx context.Context, blobName, blockID string, chunk []byte) error

	// CommitBlockList should replace the content of blobName with the staged blocks, in order.
	CommitBlockList(ctx context.Context, blobName string, blockIDs []string) error
}

// DefaultClient is the main implementation that actually makes the calls to Azure Blob Storage
type DefaultClient struct {
	container *container.Client
}

// NewClient initializes a new DefaultClient over a container client
func NewClient(c *container.Client) *DefaultClient {
	return &DefaultClient{container: c}
}

// Properties fetches the container properties
func (a *DefaultClient) Properties(ctx context.Context) error {
	_, err := a.container.GetProperties(ctx, nil)
	return err
}

// List lists the blobs below prefix using the hierarchy listing so that sub-folders are reported as prefixes and
// skipped.
func (a *DefaultClient) List(ctx context.Context, prefix string) ([]BlobProperties, error) {
	pager := a.container.NewListBlobsHierarchyPager("/", &container.ListBlobsHierarchyOptions{
		Prefix: to.Ptr(prefix),
	})

	var list []BlobProperties
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Segment.BlobItems {
			list = append(list, NewBlobProperties(item))
		}
	}
	return list, nil
}

// Download returns the content of blobName
func (a *DefaultClient) Download(ctx context.Context, blobName string) ([]byte, error) {
	resp, err := a.container.NewBlobClient(blobName).DownloadStream(ctx, nil)
	if err != nil {
		return nil, err
	}
	body := resp.NewRetryReader(ctx, nil)
	defer func() { _ = body.Close() }()
	return io.ReadAll(body)
}

// Upload uploads content as a block blob
func (a *DefaultClient) Upload(ctx context.Context, blobName string, content []byte) error {
	_, err := a.container.NewBlockBlobClient(blobName).UploadBuffer(ctx, content, nil)
	return err
}

// StageBlock stages one block of blobName
func (a *DefaultClient) StageBlock(ctx context.Context, blobName, blockID string, chunk []byte) error {
	_, err := a.container.NewBlockBlobClient(blobName).
		StageBlock(ctx, blockID, streaming.NopCloser(bytes.NewReader(chunk)), nil)
	return err
}

// CommitBlockList commits the staged blocks of blobName
func (a *DefaultClient) CommitBlockList(ctx context.Context, blobName string, blockIDs []string) error {
	_, err := a.container.NewBlockBlobClient(blobName).CommitBlockList(ctx, blockIDs, nil)
	return err
}
