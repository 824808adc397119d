package dropbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
)

// fakeDropbox is an in-memory Client.  Paths are case-insensitive, as in Dropbox, and parent folders are created on
// upload.  Errors carry the Dropbox error summaries.
type fakeDropbox struct {
	mu       sync.Mutex
	files    map[string]*fakeFile
	folders  map[string]string
	sessions map[string]*bytes.Buffer
	clock    time.Time
	seq      int
	pageSize int
	calls    []string
	failOn   string
}

type fakeFile struct {
	meta files.FileMetadata
	data []byte
}

func newFakeDropbox(folders ...string) *fakeDropbox {
	f := &fakeDropbox{
		files:    make(map[string]*fakeFile),
		folders:  map[string]string{"": ""},
		sessions: make(map[string]*bytes.Buffer),
		clock:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, folder := range folders {
		f.mkdirs(folder)
	}
	return f
}

func (f *fakeDropbox) call(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return fmt.Errorf("%s: too_many_write_operations/..", name)
	}
	return nil
}

func (f *fakeDropbox) mkdirs(p string) {
	for p != "/" && p != "" {
		f.folders[strings.ToLower(p)] = p
		p = path.Dir(p)
	}
}

func (f *fakeDropbox) next() string {
	f.seq++
	return "id:" + strconv.Itoa(f.seq)
}

func (f *fakeDropbox) commit(p string, mode *files.WriteMode, data []byte) (*files.FileMetadata, error) {
	lower := strings.ToLower(p)
	existing, ok := f.files[lower]
	if ok && (mode == nil || mode.Tag != files.WriteModeOverwrite) {
		return nil, errors.New("path/conflict/file/..")
	}
	if _, isFolder := f.folders[lower]; isFolder {
		return nil, errors.New("path/conflict/folder/..")
	}

	f.clock = f.clock.Add(time.Minute)
	id := f.next()
	created := f.clock
	if ok {
		id = existing.meta.Id
		created = existing.meta.ClientModified
	}
	f.mkdirs(path.Dir(p))
	file := &fakeFile{
		meta: files.FileMetadata{
			Metadata:       files.Metadata{Name: path.Base(p), PathLower: lower, PathDisplay: p},
			Id:             id,
			ClientModified: created,
			ServerModified: f.clock,
			Rev:            strconv.Itoa(f.seq),
			Size:           uint64(len(data)),
		},
		data: append([]byte(nil), data...),
	}
	f.files[lower] = file
	meta := file.meta
	return &meta, nil
}

func readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return io.ReadAll(r)
}

func (f *fakeDropbox) GetMetadata(arg *files.GetMetadataArg) (files.IsMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("GetMetadata"); err != nil {
		return nil, err
	}
	lower := strings.ToLower(arg.Path)
	if display, ok := f.folders[lower]; ok {
		return &files.FolderMetadata{
			Metadata: files.Metadata{Name: path.Base(display), PathLower: lower, PathDisplay: display},
			Id:       "id:folder" + lower,
		}, nil
	}
	if file, ok := f.files[lower]; ok {
		meta := file.meta
		return &meta, nil
	}
	return nil, errors.New("path/not_found/..")
}

func (f *fakeDropbox) entries(folder string) []files.IsMetadata {
	var entries []files.IsMetadata
	for lower, display := range f.folders {
		if lower != "" && path.Dir(lower) == folder {
			entries = append(entries, &files.FolderMetadata{
				Metadata: files.Metadata{Name: path.Base(display), PathLower: lower, PathDisplay: display},
			})
		}
	}
	for lower, file := range f.files {
		if path.Dir(lower) == folder {
			meta := file.meta
			entries = append(entries, &meta)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entryPath(entries[i]) < entryPath(entries[j])
	})
	return entries
}

func entryPath(m files.IsMetadata) string {
	switch e := m.(type) {
	case *files.FileMetadata:
		return e.PathLower
	case *files.FolderMetadata:
		return e.PathLower
	}
	return ""
}

func (f *fakeDropbox) page(folder string, offset int) *files.ListFolderResult {
	entries := f.entries(folder)
	end := len(entries)
	if f.pageSize > 0 && offset+f.pageSize < end {
		end = offset + f.pageSize
	}
	return &files.ListFolderResult{
		Entries: entries[offset:end],
		Cursor:  folder + "|" + strconv.Itoa(end),
		HasMore: end < len(entries),
	}
}

func (f *fakeDropbox) ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListFolder"); err != nil {
		return nil, err
	}
	lower := strings.ToLower(arg.Path)
	if _, ok := f.folders[lower]; !ok {
		return nil, errors.New("path/not_found/..")
	}
	if lower == "" {
		lower = "/"
	}
	return f.page(lower, 0), nil
}

func (f *fakeDropbox) ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListFolderContinue"); err != nil {
		return nil, err
	}
	folder, offset, ok := strings.Cut(arg.Cursor, "|")
	n, err := strconv.Atoi(offset)
	if !ok || err != nil {
		return nil, errors.New("reset/..")
	}
	return f.page(folder, n), nil
}

func (f *fakeDropbox) Download(arg *files.DownloadArg) (*files.FileMetadata, io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Download"); err != nil {
		return nil, nil, err
	}
	file, ok := f.files[strings.ToLower(arg.Path)]
	if !ok {
		return nil, nil, errors.New("path/not_found/..")
	}
	meta := file.meta
	return &meta, io.NopCloser(bytes.NewReader(file.data)), nil
}

func (f *fakeDropbox) Upload(arg *files.UploadArg, content io.Reader) (*files.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Upload"); err != nil {
		return nil, err
	}
	data, err := readAll(content)
	if err != nil {
		return nil, err
	}
	return f.commit(arg.Path, arg.Mode, data)
}

func (f *fakeDropbox) UploadSessionStart(_ *files.UploadSessionStartArg, content io.Reader) (*files.UploadSessionStartResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UploadSessionStart"); err != nil {
		return nil, err
	}
	data, err := readAll(content)
	if err != nil {
		return nil, err
	}
	id := "session-" + strconv.Itoa(len(f.sessions)+1)
	f.sessions[id] = bytes.NewBuffer(data)
	return &files.UploadSessionStartResult{SessionId: id}, nil
}

func (f *fakeDropbox) appendSession(cursor *files.UploadSessionCursor, content io.Reader) error {
	buf, ok := f.sessions[cursor.SessionId]
	if !ok {
		return errors.New("not_found/..")
	}
	if cursor.Offset != uint64(buf.Len()) {
		return fmt.Errorf("incorrect_offset/%d/..", buf.Len())
	}
	data, err := readAll(content)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func (f *fakeDropbox) UploadSessionAppendV2(arg *files.UploadSessionAppendArg, content io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UploadSessionAppendV2"); err != nil {
		return err
	}
	return f.appendSession(arg.Cursor, content)
}

func (f *fakeDropbox) UploadSessionFinish(arg *files.UploadSessionFinishArg, content io.Reader) (*files.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UploadSessionFinish"); err != nil {
		return nil, err
	}
	if err := f.appendSession(arg.Cursor, content); err != nil {
		return nil, err
	}
	data := f.sessions[arg.Cursor.SessionId].Bytes()
	delete(f.sessions, arg.Cursor.SessionId)
	return f.commit(arg.Commit.Path, arg.Commit.Mode, data)
}
