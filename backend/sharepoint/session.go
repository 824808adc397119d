package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
	"github.com/c2fo/doclib/utils"
)

// Session implements doclib.Session over the REST API of one site.
type Session struct {
	client   Client
	webURL   string
	siteName string
}

func (s *Session) api(path string, query string) string {
	endpoint := s.webURL + "/_api/web/" + path
	if query != "" {
		endpoint += "?" + query
	}
	return endpoint
}

// getAll follows odata.nextLink until every page of a collection has been read.
func (s *Session) getAll(ctx context.Context, endpoint string, each func(gjson.Result)) error {
	for endpoint != "" {
		body, err := do(ctx, s.client, http.MethodGet, endpoint, nil)
		if err != nil {
			return mapError(err)
		}
		page := gjson.ParseBytes(body)
		page.Get("value").ForEach(func(_, v gjson.Result) bool {
			each(v)
			return true
		})
		endpoint = page.Get(`odata\.nextLink`).String()
	}
	return nil
}

// ListFolder returns the files of folderPath.  Sub-folders are not part of the Files collection.
func (s *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	records := make([]doclib.Record, 0)
	endpoint := s.api("GetFolderByServerRelativeUrl(@u)/Files",
		aliases("@u", folderPath)+"&$select="+fileFields)
	err := s.getAll(ctx, endpoint, func(v gjson.Result) {
		records = append(records, parseRecord(v))
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReadFile downloads the file at the server-relative filePath.
func (s *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	content, err := do(ctx, s.client, http.MethodGet,
		s.api("GetFileByServerRelativeUrl(@u)/$value", aliases("@u", filePath)), nil)
	if err != nil {
		return nil, mapError(err)
	}
	return content, nil
}

// WriteFile adds fileName to folderPath, overwriting any existing file.
func (s *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	if content == nil {
		content = []byte{}
	}
	body, err := do(ctx, s.client, http.MethodPost,
		s.api("GetFolderByServerRelativeUrl(@u)/Files/add(url=@f,overwrite=true)", aliases("@u", folderPath, "@f", fileName)),
		content)
	if err != nil {
		return nil, mapError(err)
	}
	return parseReceipt(gjson.ParseBytes(body), 1), nil
}

// CreateUploadSession uploads localFilePath into folderPath.  A file of a single chunk is added directly; anything
// larger goes through a StartUpload/ContinueUpload/FinishUpload session.
func (s *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	f, err := os.Open(filepath.Clean(localFilePath))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	fileName := filepath.Base(localFilePath)
	filePath := utils.JoinPath(folderPath, fileName)
	uploadID := uuid.New().String()
	started := false

	var receipt *doclib.Receipt
	chunks, _, err := backend.ReadChunks(f, chunkSize, func(chunk []byte, offset int64, last bool) error {
		var err error
		switch {
		case offset == 0 && last:
			receipt, err = s.WriteFile(ctx, folderPath, fileName, chunk)
		case offset == 0:
			if _, err = s.WriteFile(ctx, folderPath, fileName, nil); err != nil {
				return err
			}
			started = true
			err = s.uploadChunk(ctx, filePath, fmt.Sprintf("StartUpload(uploadId=guid'%s')", uploadID), chunk)
		case last:
			var body []byte
			body, err = do(ctx, s.client, http.MethodPost,
				s.api(fmt.Sprintf("GetFileByServerRelativeUrl(@u)/FinishUpload(uploadId=guid'%s',fileOffset=%d)", uploadID, offset),
					aliases("@u", filePath)), chunk)
			if err == nil {
				receipt = parseReceipt(gjson.ParseBytes(body), 0)
			}
			err = mapError(err)
		default:
			err = s.uploadChunk(ctx, filePath,
				fmt.Sprintf("ContinueUpload(uploadId=guid'%s',fileOffset=%d)", uploadID, offset), chunk)
		}
		if err != nil {
			return err
		}
		if onChunk != nil {
			onChunk(offset + int64(len(chunk)))
		}
		return nil
	})
	if err != nil {
		if started {
			s.cancelUpload(filePath, uploadID)
		}
		return nil, err
	}

	receipt.Chunks = chunks
	return receipt, nil
}

func (s *Session) uploadChunk(ctx context.Context, filePath, call string, chunk []byte) error {
	_, err := do(ctx, s.client, http.MethodPost,
		s.api("GetFileByServerRelativeUrl(@u)/"+call, aliases("@u", filePath)), chunk)
	return mapError(err)
}

// cancelUpload discards a failed upload session.  It runs on a fresh context so a canceled upload still cleans up.
func (s *Session) cancelUpload(filePath, uploadID string) {
	_, _ = do(context.Background(), s.client, http.MethodPost,
		s.api(fmt.Sprintf("GetFileByServerRelativeUrl(@u)/CancelUpload(uploadId=guid'%s')", uploadID),
			aliases("@u", filePath)), []byte{})
}

// ListItems returns every item of the list titled listName.
func (s *Session) ListItems(ctx context.Context, listName string) ([]doclib.ListItem, error) {
	items := make([]doclib.ListItem, 0)
	err := s.getAll(ctx, s.api("lists/GetByTitle(@l)/items", aliases("@l", listName)), func(v gjson.Result) {
		items = append(items, parseListItem(v))
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Close is a no-op; the pipeline keeps no connection state of its own.
func (s *Session) Close() error {
	return nil
}
