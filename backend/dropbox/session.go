package dropbox

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session below one site folder.  /sites/{site}/Docs/a.txt and Docs/a.txt both address
// /{site}/Docs/a.txt.
type Session struct {
	client   Client
	siteName string
}

func (s *Session) key(p string) string {
	return utils.ResolveKey(s.siteName, p)
}

func (s *Session) path(key string) string {
	return "/" + utils.JoinPath(s.siteName, key)
}

func overwrite() *files.WriteMode {
	return &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeOverwrite}}
}

func (s *Session) record(meta *files.FileMetadata) doclib.Record {
	created := meta.ClientModified
	if meta.ServerModified.Before(created) {
		created = meta.ServerModified
	}
	return doclib.NewRecord(meta.Name, meta.Id, int64(meta.Size), created, meta.ServerModified, 1, 0)
}

// ListFolder returns the files directly inside folderPath, following the listing cursor.  Dropbox keeps no creation
// time, so created is the earlier of the client and server modified times.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.client.ListFolder(files.NewListFolderArg(s.path(s.key(folderPath))))
	if err != nil {
		return nil, mapError(err)
	}

	records := make([]doclib.Record, 0, len(result.Entries))
	for {
		for _, entry := range result.Entries {
			if meta, ok := entry.(*files.FileMetadata); ok {
				records = append(records, s.record(meta))
			}
		}
		if !result.HasMore {
			return records, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err = s.client.ListFolderContinue(files.NewListFolderContinueArg(result.Cursor))
		if err != nil {
			return nil, mapError(err)
		}
	}
}

// ReadFile downloads the file at filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, body, err := s.client.Download(files.NewDownloadArg(s.path(s.key(filePath))))
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = body.Close() }()

	return io.ReadAll(body)
}

// WriteFile uploads content in a single request, overwriting any existing file.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := utils.JoinPath(s.key(folderPath), fileName)
	arg := files.NewUploadArg(s.path(key))
	arg.Mode = overwrite()

	meta, err := s.client.Upload(arg, bytes.NewReader(content))
	if err != nil {
		return nil, mapError(err)
	}
	return s.receipt(key, meta, 1), nil
}

func (s *Session) receipt(key string, meta *files.FileMetadata, chunks int) *doclib.Receipt {
	return &doclib.Receipt{
		Path:     key,
		UniqueID: meta.Id,
		Size:     int64(meta.Size),
		Chunks:   chunks,
	}
}

// CreateUploadSession uploads localFilePath through a Dropbox upload session: the first chunk starts it, the middle
// chunks are appended and the last one commits it.  A file of a single chunk is uploaded directly.  Dropbox has no
// call to cancel a session; an unfinished one expires on its own.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	key := utils.JoinPath(s.key(folderPath), filepath.Base(localFilePath))
	var (
		sessionID string
		meta      *files.FileMetadata
	)

	chunks, _, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, last bool) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case offset == 0 && last:
			arg := files.NewUploadArg(s.path(key))
			arg.Mode = overwrite()
			m, err := s.client.Upload(arg, bytes.NewReader(chunk))
			if err != nil {
				return mapError(err)
			}
			meta = m
		case offset == 0:
			res, err := s.client.UploadSessionStart(files.NewUploadSessionStartArg(), bytes.NewReader(chunk))
			if err != nil {
				return mapError(err)
			}
			sessionID = res.SessionId
		case !last:
			cursor := files.NewUploadSessionCursor(sessionID, uint64(offset))
			if err := s.client.UploadSessionAppendV2(files.NewUploadSessionAppendArg(cursor), bytes.NewReader(chunk)); err != nil {
				return mapError(err)
			}
		default:
			commit := files.NewCommitInfo(s.path(key))
			commit.Mode = overwrite()
			cursor := files.NewUploadSessionCursor(sessionID, uint64(offset))
			m, err := s.client.UploadSessionFinish(files.NewUploadSessionFinishArg(cursor, commit), bytes.NewReader(chunk))
			if err != nil {
				return mapError(err)
			}
			meta = m
		}

		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.receipt(key, meta, chunks), nil
}

// ListItems is not supported: Dropbox has no site lists.
func (s *Session) ListItems(context.Context, string) ([]doclib.ListItem, error) {
	return nil, doclib.ErrNotSupported
}

// Close is a no-op.
func (s *Session) Close() error {
	return nil
}

