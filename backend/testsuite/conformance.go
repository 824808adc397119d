package testsuite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/utils"
)

// ConformanceFolder is the folder, below cfg.Library, every conformance file is written to.
const ConformanceFolder = "doclib-conformance"

// ConformanceOptions adjusts the conformance tests to limits of the service under test.
type ConformanceOptions struct {
	// MinChunkSize is the smallest chunk size the service accepts for every chunk but the last.  S3 needs 5 MiB.
	MinChunkSize int64
}

// RunConformanceTests runs the Session conformance tests against provider.  Every test opens its own Session with cfg
// and writes below {cfg.Library}/ConformanceFolder; the folder must start out empty.  Only the first opts is used.
func RunConformanceTests(t *testing.T, provider doclib.Provider, cfg doclib.Config, opts ...ConformanceOptions) {
	t.Helper()

	c := &conformance{provider: provider, cfg: cfg, chunkSize: 10}
	if len(opts) > 0 && opts[0].MinChunkSize > c.chunkSize {
		c.chunkSize = opts[0].MinChunkSize
	}

	t.Run("WriteThenList", c.testWriteThenList)
	t.Run("WriteThenRead", c.testWriteThenRead)
	t.Run("Overwrite", c.testOverwrite)
	t.Run("ReadMissing", c.testReadMissing)
	t.Run("ListSkipsSubfolders", c.testListSkipsSubfolders)
	t.Run("ChunkedUpload", c.testChunkedUpload)
	t.Run("ChunkedUploadEmptyFile", c.testChunkedUploadEmptyFile)
	t.Run("ListItems", c.testListItems)
}

type conformance struct {
	provider  doclib.Provider
	cfg       doclib.Config
	chunkSize int64
}

func (c *conformance) session(t *testing.T) doclib.Session {
	t.Helper()
	sess, err := c.provider.Authenticate(context.Background(), c.cfg)
	require.NoError(t, err, "authenticate")
	t.Cleanup(func() {
		assert.NoError(t, sess.Close(), "close")
	})
	return sess
}

// listPath and sitePath mirror the two path forms the library client uses.
func (c *conformance) listPath(folder string) string {
	return utils.LibraryPath(c.cfg.Library, utils.JoinPath(ConformanceFolder, folder))
}

func (c *conformance) sitePath(folder string, file ...string) string {
	return utils.SitePath(c.cfg.SiteName, c.cfg.Library, utils.JoinPath(ConformanceFolder, folder), file...)
}

func (c *conformance) listNames(t *testing.T, sess doclib.Session, folder string) []doclib.FileRef {
	t.Helper()
	records, err := sess.ListFolder(context.Background(), c.listPath(folder))
	require.NoError(t, err, "list")
	files, err := doclib.Normalize(records)
	require.NoError(t, err, "every listed record carries every field")
	return files
}

func find(files []doclib.FileRef, name string) (doclib.FileRef, bool) {
	i := slices.IndexFunc(files, func(f doclib.FileRef) bool { return f.Name == name })
	if i < 0 {
		return doclib.FileRef{}, false
	}
	return files[i], true
}

func (c *conformance) testWriteThenList(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	receipt, err := sess.WriteFile(ctx, c.sitePath("list"), "report.csv", []byte("a,b,c\n"))
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, int64(6), receipt.Size)

	files := c.listNames(t, sess, "list")
	f, ok := find(files, "report.csv")
	require.True(t, ok, "written file is listed")
	assert.Equal(t, int64(6), f.Size)
	assert.NotEmpty(t, f.UniqueID)
	assert.False(t, f.ModifiedAt.IsZero())
	assert.False(t, f.ModifiedAt.Before(f.CreatedAt), "modified is never before created")
	assert.GreaterOrEqual(t, f.MajorVersion, 1)
}

func (c *conformance) testWriteThenRead(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	content := []byte("Olá, gestão!\x00\xff")
	_, err := sess.WriteFile(ctx, c.sitePath("read"), "binary.dat", content)
	require.NoError(t, err)

	got, err := sess.ReadFile(ctx, c.sitePath("read", "binary.dat"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func (c *conformance) testOverwrite(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	_, err := sess.WriteFile(ctx, c.sitePath("overwrite"), "note.txt", []byte("first version"))
	require.NoError(t, err)
	_, err = sess.WriteFile(ctx, c.sitePath("overwrite"), "note.txt", []byte("second"))
	require.NoError(t, err)

	got, err := sess.ReadFile(ctx, c.sitePath("overwrite", "note.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	files := c.listNames(t, sess, "overwrite")
	assert.Len(t, files, 1, "an overwrite does not add a file")
}

func (c *conformance) testReadMissing(t *testing.T) {
	sess := c.session(t)

	_, err := sess.ReadFile(context.Background(), c.sitePath("missing", "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, doclib.ErrNotFound)
}

func (c *conformance) testListSkipsSubfolders(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	_, err := sess.WriteFile(ctx, c.sitePath("nested"), "top.txt", []byte("top"))
	require.NoError(t, err)
	_, err = sess.WriteFile(ctx, c.sitePath("nested/sub"), "deep.txt", []byte("deep"))
	require.NoError(t, err)

	files := c.listNames(t, sess, "nested")
	names := make([]string, len(files))
	for i := range files {
		names[i] = files[i].Name
	}
	assert.Equal(t, []string{"top.txt"}, names)
}

func (c *conformance) testChunkedUpload(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	// three full chunks and a short last one
	content := strings.Repeat("0123456789", int(3*c.chunkSize/10)) + "xyz"
	local := filepath.Join(t.TempDir(), "chunked.txt")
	require.NoError(t, os.WriteFile(local, []byte(content), 0o600))

	var progress []int64
	receipt, err := sess.CreateUploadSession(ctx, c.sitePath("chunked"), local, c.chunkSize, func(uploaded int64) {
		progress = append(progress, uploaded)
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, int64(len(content)), receipt.Size)

	require.NotEmpty(t, progress, "progress is reported")
	assert.True(t, slices.IsSorted(progress), "progress never goes backwards")
	assert.Equal(t, int64(len(content)), progress[len(progress)-1], "last report is the full size")

	got, err := sess.ReadFile(ctx, c.sitePath("chunked", "chunked.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func (c *conformance) testChunkedUploadEmptyFile(t *testing.T) {
	sess := c.session(t)
	ctx := context.Background()

	local := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(local, nil, 0o600))

	receipt, err := sess.CreateUploadSession(ctx, c.sitePath("chunked-empty"), local, c.chunkSize, nil)
	require.NoError(t, err)
	assert.Zero(t, receipt.Size)

	got, err := sess.ReadFile(ctx, c.sitePath("chunked-empty", "empty.txt"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func (c *conformance) testListItems(t *testing.T) {
	sess := c.session(t)

	_, err := sess.ListItems(context.Background(), "doclib-conformance-list")
	if err == nil {
		return
	}
	assert.True(t, errors.Is(err, doclib.ErrNotSupported) || errors.Is(err, doclib.ErrNotFound),
		"unknown lists are either unsupported or not found, got %v", err)
}
