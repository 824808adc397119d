package azure

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session over one container.
type Session struct {
	client    Client
	container string
}

func (s *Session) blobName(p string) string {
	return utils.ResolveKey(s.container, p)
}

// ListFolder returns the blobs directly below folderPath.  Blobs have no version numbers, so every blob is 1.0.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	prefix := s.blobName(folderPath)
	if prefix != "" {
		prefix = utils.EnsureTrailingSlash(prefix)
	}

	blobs, err := s.client.List(ctx, prefix)
	if err != nil {
		return nil, mapError(err)
	}

	records := make([]doclib.Record, 0, len(blobs))
	for _, b := range blobs {
		if strings.HasSuffix(b.Name, "/") {
			continue
		}
		records = append(records, doclib.NewRecord(path.Base(b.Name), utils.StableID(Scheme, s.container, b.Name),
			b.Size, b.CreatedOn, b.LastModified, 1, 0))
	}
	return records, nil
}

// ReadFile downloads the blob at filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	content, err := s.client.Download(ctx, s.blobName(filePath))
	if err != nil {
		return nil, mapError(err)
	}
	return content, nil
}

// WriteFile uploads content as fileName inside folderPath.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	name := utils.JoinPath(s.blobName(folderPath), fileName)
	if err := s.client.Upload(ctx, name, content); err != nil {
		return nil, mapError(err)
	}
	return s.receipt(name, int64(len(content)), 1), nil
}

func (s *Session) receipt(name string, size int64, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     name,
		UniqueID: utils.StableID(Scheme, s.container, name),
		Size:     size,
		Chunks:   chunks,
	}
}

// blockID returns the n-th block id of an upload.  Every id of a blob must have the same length.
func blockID(upload string, n int) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s-%06d", upload, n)))
}

// CreateUploadSession stages one block per chunk and commits the block list after the last one.  A file of a single
// chunk is uploaded directly.  Blocks of a failed upload are left uncommitted; the service discards them.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	name := utils.JoinPath(s.blobName(folderPath), filepath.Base(localFilePath))
	upload := uuid.New().String()
	var ids []string

	chunks, total, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, last bool) error {
		if offset == 0 && last {
			if err := s.client.Upload(ctx, name, chunk); err != nil {
				return mapError(err)
			}
		} else {
			id := blockID(upload, len(ids))
			if err := s.client.StageBlock(ctx, name, id, chunk); err != nil {
				return mapError(err)
			}
			ids = append(ids, id)
			if last {
				if err := s.client.CommitBlockList(ctx, name, ids); err != nil {
					return mapError(err)
				}
			}
		}

		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.receipt(name, total, chunks), nil
}

// ListItems is not supported: containers have no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close is a no-op.
func (s *Session) Close() error {
	return nil
}
