package azure

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// BlobProperties holds the subset of blob properties a listing needs.
type BlobProperties struct {
	// Name holds the full blob name
	Name string

	// Size holds the size of the blob.
	Size int64

	// CreatedOn holds the creation time of the blob
	CreatedOn time.Time

	// LastModified holds the last modified time.Time
	LastModified time.Time
}

// NewBlobProperties creates a new BlobProperties from a listed container.BlobItem.  A blob without a creation time
// reports its last modified time instead.
func NewBlobProperties(item *container.BlobItem) BlobProperties {
	props := BlobProperties{}
	if item.Name != nil {
		props.Name = *item.Name
	}
	if p := item.Properties; p != nil {
		if p.ContentLength != nil {
			props.Size = *p.ContentLength
		}
		if p.LastModified != nil {
			props.LastModified = *p.LastModified
		}
		props.CreatedOn = props.LastModified
		if p.CreationTime != nil {
			props.CreatedOn = *p.CreationTime
		}
	}
	return props
}
