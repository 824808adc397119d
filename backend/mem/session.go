package mem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

var errSessionClosed = errors.New("mem session is closed")

// Session implements doclib.Session for one in-memory site.
type Session struct {
	provider *Provider
	site     *site
	siteName string
	closed   bool
}

func (s *Session) check(ctx context.Context) error {
	if s.closed {
		return errSessionClosed
	}
	return ctx.Err()
}

// ListFolder returns the files directly inside folderPath, sorted by name.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	folder := utils.ResolveKey(s.siteName, folderPath)

	s.site.mu.RLock()
	defer s.site.mu.RUnlock()

	keys := make([]string, 0)
	for key := range s.site.files {
		if parent(key) == folder {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	records := make([]doclib.Record, len(keys))
	for i, key := range keys {
		f := s.site.files[key]
		records[i] = doclib.NewRecord(path.Base(key), f.id, int64(len(f.data)),
			time.Unix(f.created, 0), time.Unix(f.modified, 0), f.major, 0)
	}
	return records, nil
}

// ReadFile returns a copy of the file contents.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	key := utils.ResolveKey(s.siteName, filePath)

	s.site.mu.RLock()
	defer s.site.mu.RUnlock()

	f, ok := s.site.files[key]
	if !ok {
		return nil, doclib.NotFound(fmt.Errorf("%q: %w", key, fs.ErrNotExist))
	}
	return bytes.Clone(f.data), nil
}

// WriteFile stores content at folderPath/fileName.  Overwriting a file keeps its id and bumps its major version.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	return s.store(utils.JoinPath(utils.ResolveKey(s.siteName, folderPath), fileName), bytes.Clone(content), 1), nil
}

// CreateUploadSession reads localFilePath in chunks of chunkSize bytes, reporting each, and stores the result.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	chunks, _, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, _ bool) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf.Write(chunk)
		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	key := utils.JoinPath(utils.ResolveKey(s.siteName, folderPath), filepath.Base(localFilePath))
	return s.store(key, buf.Bytes(), chunks), nil
}

func (s *Session) store(key string, data []byte, chunks int) *doclib.Receipt {
	now := s.provider.now().Unix()

	s.site.mu.Lock()
	defer s.site.mu.Unlock()

	f, ok := s.site.files[key]
	if ok {
		f.data = data
		f.modified = now
		f.major++
	} else {
		f = &memFile{
			id:       utils.StableID(Scheme, s.siteName, key),
			data:     data,
			created:  now,
			modified: now,
			major:    1,
		}
		s.site.files[key] = f
	}

	return &doclib.Receipt{
		Path:     key,
		UniqueID: f.id,
		Size:     int64(len(data)),
		Chunks:   chunks,
	}
}

// ListItems returns the items stored with Provider.PutList.
func (s *Session) ListItems(ctx context.Context, listName string) ([]doclib.ListItem, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	s.site.mu.RLock()
	defer s.site.mu.RUnlock()

	items, ok := s.site.lists[listName]
	if !ok {
		return nil, doclib.NotFound(fmt.Errorf("list %q: %w", listName, fs.ErrNotExist))
	}
	return slices.Clone(items), nil
}

// Close ends the Session.  Later calls fail.
func (s *Session) Close() error {
	s.closed = true
	return nil
}

// parent returns the folder key of a file key; files at the root have the empty folder.
func parent(key string) string {
	dir := path.Dir(key)
	if dir == "." {
		return ""
	}
	return dir
}
