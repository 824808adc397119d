package ftp

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session below one site directory over a single command connection.  FTP allows one
// transfer at a time, so a Session must not be used concurrently.
type Session struct {
	client    Client
	owned     bool
	siteName  string
	root      string
	authority string
}

func (s *Session) key(p string) string {
	return utils.ResolveKey(s.siteName, p)
}

func (s *Session) path(key string) string {
	return path.Join(s.root, key)
}

// ListFolder returns the files directly inside folderPath.  FTP reports no creation time, so created is the
// modification time and every file is version 1.0.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.key(folderPath)
	entries, err := s.client.List(s.path(key))
	if err != nil {
		return nil, mapError(err)
	}

	records := make([]doclib.Record, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != _ftp.EntryTypeFile {
			continue
		}
		full := s.path(utils.JoinPath(key, entry.Name))
		records = append(records, doclib.NewRecord(entry.Name, utils.StableID(Scheme, s.authority, full),
			int64(entry.Size), entry.Time, entry.Time, 1, 0))
	}
	return records, nil
}

// ReadFile retrieves the file at filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := s.client.Retr(s.path(s.key(filePath)))
	if err != nil {
		return nil, mapError(err)
	}
	content, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, mapError(err)
	}
	return content, nil
}

// mkdirAll creates every missing directory of dir below the site root.  MKD of an existing directory fails, so
// errors are ignored here and surface on the following STOR.
func (s *Session) mkdirAll(dir string) {
	rel := strings.TrimPrefix(strings.TrimPrefix(dir, s.root), "/")
	if rel == "" {
		return
	}
	current := s.root
	for _, part := range strings.Split(rel, "/") {
		current = path.Join(current, part)
		_ = s.client.MakeDir(current)
	}
}

// WriteFile stores content as fileName inside folderPath, creating missing directories.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := utils.JoinPath(s.key(folderPath), fileName)
	full := s.path(key)
	s.mkdirAll(path.Dir(full))
	if err := s.client.Stor(full, bytes.NewReader(content)); err != nil {
		return nil, mapError(err)
	}
	return s.receipt(key, int64(len(content)), 1), nil
}

func (s *Session) receipt(key string, size int64, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     key,
		UniqueID: utils.StableID(Scheme, s.authority, s.path(key)),
		Size:     size,
		Chunks:   chunks,
	}
}

// CreateUploadSession stores the first chunk of localFilePath and appends every following one.  A failed upload
// deletes the partial file.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	local, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = local.Close() }()

	key := utils.JoinPath(s.key(folderPath), filepath.Base(localFilePath))
	full := s.path(key)
	s.mkdirAll(path.Dir(full))

	chunks, total, err := backend.ReadChunks(local, chunkSize, func(chunk []byte, offset int64, _ bool) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if offset == 0 {
			err = s.client.Stor(full, bytes.NewReader(chunk))
		} else {
			err = s.client.Append(full, bytes.NewReader(chunk))
		}
		if err != nil {
			return mapError(err)
		}
		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		if chunks > 0 {
			_ = s.client.Delete(full)
		}
		return nil, err
	}
	return s.receipt(key, total, chunks), nil
}

// ListItems is not supported: FTP servers have no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close quits the command connection when the Session opened it.
func (s *Session) Close() error {
	if !s.owned {
		return nil
	}
	s.owned = false
	return s.client.Quit()
}
