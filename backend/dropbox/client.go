package dropbox

import (
	"io"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
)

// Client is the subset of the Dropbox files API used by this backend.  files.Client satisfies it.
type Client interface {
	// GetMetadata returns metadata for a file or folder.
	GetMetadata(arg *files.GetMetadataArg) (files.IsMetadata, error)

	// ListFolder lists the contents of a folder.
	ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error)

	// ListFolderContinue continues a paginated list operation.
	ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error)

	// Download downloads a file.
	Download(arg *files.DownloadArg) (*files.FileMetadata, io.ReadCloser, error)

	// Upload uploads a file of at most 150 MiB.
	Upload(arg *files.UploadArg, content io.Reader) (*files.FileMetadata, error)

	// UploadSessionStart starts a chunked upload session.
	UploadSessionStart(arg *files.UploadSessionStartArg, content io.Reader) (*files.UploadSessionStartResult, error)

	// UploadSessionAppendV2 appends data to an upload session.
	UploadSessionAppendV2(arg *files.UploadSessionAppendArg, content io.Reader) error

	// UploadSessionFinish commits an upload session.
	UploadSessionFinish(arg *files.UploadSessionFinishArg, content io.Reader) (*files.FileMetadata, error)
}
