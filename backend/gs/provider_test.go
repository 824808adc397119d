package gs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/googleapi"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
)

/**********************************
 ************TESTS*****************
 **********************************/

type gsSuite struct {
	suite.Suite
	server *fakestorage.Server
	p      *Provider
	cfg    doclib.Config
}

func (s *gsSuite) SetupTest() {
	s.server = fakestorage.NewServer([]fakestorage.Object{
		{
			ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "finance-docs", Name: "Shared Documents/Reports/a.csv"},
			Content:     []byte("a,b\n"),
		},
		{
			ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "finance-docs", Name: "Shared Documents/Reports/b.csv"},
			Content:     []byte("c,d,e\n"),
		},
		{
			ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "finance-docs", Name: "Shared Documents/Reports/2023/old.csv"},
			Content:     []byte("old"),
		},
	})
	s.p = NewProvider(WithClient(s.server.Client()))
	s.cfg = doclib.Config{SiteName: "finance-docs", Library: "Shared Documents"}
}

func (s *gsSuite) TearDownTest() {
	s.server.Stop()
}

func (s *gsSuite) session() doclib.Session {
	sess, err := s.p.Authenticate(context.Background(), s.cfg)
	s.Require().NoError(err)
	s.T().Cleanup(func() { s.NoError(sess.Close(), "a given client is not closed by the session") })
	return sess
}

func (s *gsSuite) TestRegistered() {
	p := backend.Backend(Scheme)
	s.Require().NotNil(p)
	s.Equal("Google Cloud Storage", p.Name())
	s.Equal(Scheme, p.Scheme())
}

func (s *gsSuite) TestAuthenticate_Failures() {
	_, err := s.p.Authenticate(context.Background(), doclib.Config{SiteName: "no-such-bucket"})
	s.ErrorIs(err, doclib.ErrAuthentication)

	_, err = s.p.Authenticate(context.Background(), doclib.Config{})
	s.ErrorIs(err, doclib.ErrAuthentication)
}

func (s *gsSuite) TestListFolder() {
	records, err := s.session().ListFolder(context.Background(), "Shared Documents/Reports")
	s.Require().NoError(err)
	files, err := doclib.Normalize(records)
	s.Require().NoError(err)

	s.Require().Len(files, 2, "objects in sub-folders are skipped")
	s.Equal("a.csv", files[0].Name)
	s.Equal(int64(4), files[0].Size)
	s.Equal("b.csv", files[1].Name)
	s.Equal(1, files[1].MajorVersion)
}

func (s *gsSuite) TestReadFile() {
	sess := s.session()
	content, err := sess.ReadFile(context.Background(), "/sites/finance-docs/Shared Documents/Reports/b.csv")
	s.Require().NoError(err)
	s.Equal("c,d,e\n", string(content))

	_, err = sess.ReadFile(context.Background(), "Shared Documents/Reports/missing.csv")
	s.ErrorIs(err, doclib.ErrNotFound)
	s.ErrorIs(err, storage.ErrObjectNotExist)
}

func (s *gsSuite) TestCreateUploadSession() {
	local := filepath.Join(s.T().TempDir(), "big.txt")
	content := strings.Repeat("0123456789", 5)
	s.Require().NoError(os.WriteFile(local, []byte(content), 0o600))

	var progress []int64
	sess := s.session()
	receipt, err := sess.CreateUploadSession(context.Background(), "Shared Documents/Up", local, 20,
		func(n int64) { progress = append(progress, n) })
	s.Require().NoError(err)
	s.Equal("Shared Documents/Up/big.txt", receipt.Path)
	s.Equal(3, receipt.Chunks)
	s.Equal([]int64{20, 40, 50}, progress)

	obj, err := s.server.GetObject("finance-docs", "Shared Documents/Up/big.txt")
	s.Require().NoError(err)
	s.Equal(content, string(obj.Content))
}

func (s *gsSuite) TestCreateUploadSession_ChunkLargerThanFile() {
	local := filepath.Join(s.T().TempDir(), "small.txt")
	s.Require().NoError(os.WriteFile(local, []byte("hello"), 0o600))

	receipt, err := s.session().CreateUploadSession(context.Background(), "Shared Documents/Up", local, 1<<50, nil)
	s.Require().NoError(err)
	s.Equal(1, receipt.Chunks)
	s.EqualValues(5, receipt.Size)

	obj, err := s.server.GetObject("finance-docs", "Shared Documents/Up/small.txt")
	s.Require().NoError(err)
	s.Equal("hello", string(obj.Content))
}

func (s *gsSuite) TestListItems() {
	_, err := s.session().ListItems(context.Background(), "Funds")
	s.ErrorIs(err, doclib.ErrNotSupported)
}

func (s *gsSuite) TestMapError() {
	s.ErrorIs(mapError(storage.ErrObjectNotExist), doclib.ErrNotFound)
	s.ErrorIs(mapError(&googleapi.Error{Code: http.StatusForbidden}), doclib.ErrAuthentication)
	s.ErrorIs(mapError(&googleapi.Error{Code: http.StatusNotFound}), doclib.ErrNotFound)

	plain := errors.New("boom")
	s.Equal(plain, mapError(plain))
	s.NoError(mapError(nil))
}

func (s *gsSuite) TestParseClientOptions() {
	s.Empty(parseClientOptions(Options{}, doclib.Config{}))
	s.Len(parseClientOptions(Options{APIKey: "key", Scopes: []string{storage.ScopeReadOnly}}, doclib.Config{}), 2)
	s.Len(parseClientOptions(Options{WithoutAuthentication: true, APIKey: "ignored"},
		doclib.Config{SiteURL: "http://localhost:4443/storage/v1/"}), 2)
	s.Len(parseClientOptions(Options{CredentialFile: "/root/.gcloud/account.json"}, doclib.Config{}), 1)
}

func TestGS(t *testing.T) {
	suite.Run(t, new(gsSuite))
}
