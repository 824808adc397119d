package os

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

const (
	osCrossDeviceLinkError = "invalid cross-device link"
	tempPrefix             = ".doclib-"
)

// Session implements doclib.Session below a local root directory.
type Session struct {
	root     string
	siteName string
	tempDir  string
}

// path returns the absolute os path of a doclib path.
func (s *Session) path(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(utils.ResolveKey(s.siteName, p)))
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return doclib.NotFound(err)
	}
	return err
}

// ListFolder returns the regular files directly inside folderPath, sorted by name.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := s.path(folderPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, notFound(err)
	}

	records := make([]doclib.Record, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed since ReadDir
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		full := filepath.Join(dir, e.Name())
		records = append(records, doclib.NewRecord(e.Name(), utils.StableID(Scheme, "", filepath.ToSlash(full)),
			info.Size(), info.ModTime(), info.ModTime(), 1, 0))
	}
	sort.Slice(records, func(i, j int) bool { return *records[i].Name < *records[j].Name })
	return records, nil
}

// ReadFile returns the file contents.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(s.path(filePath))
	if err != nil {
		return nil, notFound(err)
	}
	return content, nil
}

// WriteFile creates or replaces folderPath/fileName, creating folderPath if needed.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := filepath.Join(s.path(folderPath), fileName)
	n, err := s.replace(target, func(w io.Writer) (int, error) {
		written, err := w.Write(content)
		return 1, checkShort(written, len(content), err)
	})
	if err != nil {
		return nil, err
	}
	return s.receipt(target, n), nil
}

// CreateUploadSession copies localFilePath into folderPath chunk by chunk.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	src, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	target := filepath.Join(s.path(folderPath), filepath.Base(localFilePath))
	chunks, err := s.replace(target, func(w io.Writer) (int, error) {
		n, _, err := backend.ReadChunks(src, chunkSize, func(chunk []byte, offset int64, _ bool) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			written, err := w.Write(chunk)
			if err := checkShort(written, len(chunk), err); err != nil {
				return err
			}
			if onChunk != nil {
				onChunk(offset + int64(len(chunk)))
			}
			return nil
		})
		return n, err
	})
	if err != nil {
		return nil, err
	}
	return s.receipt(target, chunks), nil
}

func checkShort(written, want int, err error) error {
	if err == nil && written < want {
		return io.ErrShortWrite
	}
	return err
}

// replace writes target through a temporary file which is renamed over target once write succeeds.
func (s *Session) replace(target string, write func(io.Writer) (int, error)) (int, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, os.ModeDir|0o750); err != nil {
		return 0, err
	}

	tempDir := s.tempDir
	if tempDir == "" {
		tempDir = dir
	}
	tmp, err := os.CreateTemp(tempDir, tempPrefix+"*")
	if err != nil {
		return 0, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := write(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	if err := os.Chmod(tmp.Name(), 0o640); err != nil {
		return 0, err
	}
	return n, safeOsRename(tmp.Name(), target)
}

func (s *Session) receipt(target string, chunks int) *doclib.Receipt {
	r := &doclib.Receipt{
		Path:     target,
		UniqueID: utils.StableID(Scheme, "", filepath.ToSlash(target)),
		Chunks:   chunks,
	}
	if info, err := os.Stat(target); err == nil {
		r.Size = info.Size()
	}
	return r
}

// ListItems is not supported by local disks.
func (s *Session) ListItems(_ context.Context, listName string) ([]doclib.ListItem, error) {
	return nil, fmt.Errorf("list %q: %w", listName, doclib.ErrNotSupported)
}

// Close is a no-op.
func (s *Session) Close() error {
	return nil
}

// safeOsRename will attempt to do an os.Rename. If error is "invalid cross-device link" (where the staging directory
// is on a different device/volume than the target), then fall back to doing a copy-delete.
func safeOsRename(srcName, dstName string) error {
	err := os.Rename(srcName, dstName)
	if err != nil {
		var e *os.LinkError
		if errors.As(err, &e) && e.Err.Error() == osCrossDeviceLinkError {
			// do cross-device renaming
			if err := osCopy(srcName, dstName); err != nil {
				return err
			}
			// delete original file
			return os.Remove(srcName)
		}
		// return non-CrossDeviceLink error
		return err
	}
	return nil
}

// osCopy just io.Copy's the os files
func osCopy(srcName, dstName string) error {
	srcReader, err := os.Open(srcName) //nolint:gosec
	if err != nil {
		return err
	}
	defer func() { _ = srcReader.Close() }()

	dstWriter, err := os.Create(dstName) //nolint:gosec
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstWriter, srcReader); err != nil {
		_ = dstWriter.Close()
		return err
	}
	return dstWriter.Close()
}
