// Package doclib provides a platform-independent interface to remote document libraries such as SharePoint, S3,
// Azure Blob Storage and GCS, along with the normalized file records used to select files from them.
package doclib

import (
	"context"
	"time"
)

// Provider represents a remote document service.  A Provider carries no per-call state; every call to Authenticate
// opens an independent Session.
type Provider interface {
	// Name returns the name of the Provider ie: SharePoint, AWS S3, etc...
	Name() string

	// Scheme is the uri scheme used by the Provider: sharepoint, s3, gs, etc...
	Scheme() string

	// Authenticate opens a Session against the site described by cfg.  Bad credentials or an unknown site are reported
	// as ErrAuthentication.
	Authenticate(ctx context.Context, cfg Config) (Session, error)
}

// Session is an authenticated connection to a single site.  All operations are blocking round-trips.
type Session interface {
	// ListFolder returns the provider-native records of the files (not sub-folders) directly inside folderPath.
	ListFolder(ctx context.Context, folderPath string) ([]Record, error)

	// ReadFile returns the complete contents of the file at filePath.  A missing file is reported as ErrNotFound.
	ReadFile(ctx context.Context, filePath string) ([]byte, error)

	// WriteFile creates or overwrites fileName inside folderPath.
	WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*Receipt, error)

	// CreateUploadSession uploads the local file at localFilePath into folderPath in chunks of chunkSize bytes.
	// onChunk, when non-nil, is called synchronously once per chunk with the running total of uploaded bytes.
	CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64, onChunk ChunkUploadedFunc) (*Receipt, error)

	// ListItems returns the items of the site list named listName.  Providers without site lists return
	// ErrNotSupported.
	ListItems(ctx context.Context, listName string) ([]ListItem, error)

	// Close releases any connection held by the Session.
	Close() error
}

// ChunkUploadedFunc receives the running total of bytes uploaded after each chunk.
type ChunkUploadedFunc func(uploaded int64)

// Config describes the site a Session is opened against.  What each field means is up to the Provider; see the
// backend docs.  Values are never validated locally, a missing value surfaces as ErrAuthentication.
type Config struct {
	SiteURL  string `yaml:"siteUrl"`
	SiteName string `yaml:"siteName"`
	Library  string `yaml:"library"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// FileRef is the normalized snapshot of a remote file taken at list time.
type FileRef struct {
	Name         string
	UniqueID     string
	Size         int64
	CreatedAt    time.Time
	ModifiedAt   time.Time
	MajorVersion int
	MinorVersion int
}

// Record is a file record as reported by a Provider.  Every field is optional so that a missing value can be told
// apart from a zero one; Normalize rejects records with missing fields.
type Record struct {
	Name             *string
	UniqueID         *string
	Length           *int64
	TimeCreated      *string
	TimeLastModified *string
	MajorVersion     *int
	MinorVersion     *int
}

// Receipt is returned by the write operations of a Session.
type Receipt struct {
	Path     string
	UniqueID string
	Size     int64
	Chunks   int
}

// ListItem is a single item of a site list.
type ListItem struct {
	ID     string
	Title  string
	Fields map[string]any
}
