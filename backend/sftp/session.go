package sftp

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"

	_sftp "github.com/pkg/sftp"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session below one site directory.  /sites/{site}/Docs/a.txt and Docs/a.txt both address
// {root}/Docs/a.txt.
type Session struct {
	client    *_sftp.Client
	conn      io.Closer
	siteName  string
	root      string
	authority string
	options   Options
}

func (s *Session) key(p string) string {
	return utils.ResolveKey(s.siteName, p)
}

func (s *Session) path(key string) string {
	return path.Join(s.root, key)
}

// ListFolder returns the regular files directly inside folderPath.  SFTP reports no creation time, so created is the
// modification time and every file is version 1.0.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := s.key(folderPath)
	entries, err := s.client.ReadDir(s.path(key))
	if err != nil {
		return nil, mapError(err)
	}

	records := make([]doclib.Record, 0, len(entries))
	for _, info := range entries {
		if !info.Mode().IsRegular() {
			continue
		}
		full := s.path(utils.JoinPath(key, info.Name()))
		records = append(records, doclib.NewRecord(info.Name(), utils.StableID(Scheme, s.authority, full),
			info.Size(), info.ModTime(), info.ModTime(), 1, 0))
	}
	return records, nil
}

// ReadFile returns the contents of the file at filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.client.Open(s.path(s.key(filePath)))
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, mapError(err)
	}
	return content, nil
}

// create makes the parent directories of key and truncates or creates the file.
func (s *Session) create(key string) (*_sftp.File, error) {
	full := s.path(key)
	if err := s.client.MkdirAll(path.Dir(full)); err != nil {
		return nil, mapError(err)
	}
	f, err := s.client.Create(full)
	if err != nil {
		return nil, mapError(err)
	}
	return f, nil
}

// finish closes f and applies Options.FilePermissions.
func (s *Session) finish(f *_sftp.File) error {
	if err := f.Close(); err != nil {
		return mapError(err)
	}
	mode, err := s.options.GetFileMode()
	if err != nil || mode == nil {
		return err
	}
	return mapError(s.client.Chmod(f.Name(), *mode))
}

// WriteFile creates or overwrites fileName inside folderPath, creating missing directories.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := utils.JoinPath(s.key(folderPath), fileName)
	f, err := s.create(key)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return nil, mapError(err)
	}
	if err := s.finish(f); err != nil {
		return nil, err
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

// CreateUploadSession writes localFilePath to the remote file one chunk at a time.  A failed chunk removes the partial
// file.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	local, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = local.Close() }()

	key := utils.JoinPath(s.key(folderPath), filepath.Base(localFilePath))
	f, err := s.create(key)
	if err != nil {
		return nil, err
	}

	chunks, total, err := backend.ReadChunks(local, chunkSize, func(chunk []byte, offset int64, _ bool) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.Write(chunk); err != nil {
			return mapError(err)
		}
		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		_ = f.Close()
		_ = s.client.Remove(f.Name())
		return nil, err
	}
	if err := s.finish(f); err != nil {
		return nil, err
	}
	return s.receipt(key, total, chunks), nil
}

// ListItems is not supported: SFTP servers have no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close closes the sftp and ssh clients when the Session opened them.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.client.Close()
	if cerr := s.conn.Close(); cerr != nil && !errors.Is(cerr, io.EOF) {
		err = errors.Join(err, cerr)
	}
	s.conn = nil
	return err
}
