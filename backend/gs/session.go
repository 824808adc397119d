package gs

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session over one bucket.
type Session struct {
	client     *storage.Client
	bucket     *storage.BucketHandle
	bucketName string
}

func (s *Session) objectName(p string) string {
	return utils.ResolveKey(s.bucketName, p)
}

// ListFolder returns the objects directly below folderPath.  Objects have no SharePoint-style versions, so every
// object is 1.0.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	prefix := s.objectName(folderPath)
	if prefix != "" {
		prefix = utils.EnsureTrailingSlash(prefix)
	}

	records := make([]doclib.Record, 0)
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapError(err)
		}
		// synthetic directory entries
		if attrs.Prefix != "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		records = append(records, doclib.NewRecord(path.Base(attrs.Name), utils.StableID(Scheme, s.bucketName, attrs.Name),
			attrs.Size, attrs.Created, attrs.Updated, 1, 0))
	}
	return records, nil
}

// ReadFile downloads the object at filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	r, err := s.bucket.Object(s.objectName(filePath)).NewReader(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = r.Close() }()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, mapError(err)
	}
	return content, nil
}

// WriteFile uploads content as fileName inside folderPath.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	name := utils.JoinPath(s.objectName(folderPath), fileName)

	w := s.bucket.Object(name).NewWriter(ctx)
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return nil, mapError(err)
	}
	if err := w.Close(); err != nil {
		return nil, mapError(err)
	}
	return s.receipt(name, int64(len(content)), 1), nil
}

func (s *Session) receipt(name string, size int64, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     name,
		UniqueID: utils.StableID(Scheme, s.bucketName, name),
		Size:     size,
		Chunks:   chunks,
	}
}

// CreateUploadSession streams localFilePath through a resumable upload writer, one Write per chunk.  The writer
// rounds ChunkSize up to a multiple of 256 KiB, so progress counts bytes accepted by the writer.  A failed chunk
// cancels the upload, leaving no object behind.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	name := utils.JoinPath(s.objectName(folderPath), filepath.Base(localFilePath))

	uploadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := s.bucket.Object(name).NewWriter(uploadCtx)
	// the writer buffers a whole chunk, so never ask for more than the file holds
	w.ChunkSize = int(min(chunkSize, max(info.Size(), 1)))

	chunks, total, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, _ bool) error {
		if _, err := w.Write(chunk); err != nil {
			return mapError(err)
		}
		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		cancel()
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, mapError(err)
	}
	return s.receipt(name, total, chunks), nil
}

// ListItems is not supported: buckets have no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close closes the client when the Session created it.
func (s *Session) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
