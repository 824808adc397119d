package azure

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/stretchr/testify/suite"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
)

/**********************************
 ************TESTS*****************
 **********************************/

type azureSuite struct {
	suite.Suite
	client *MockAzureClient
	p      *Provider
	cfg    doclib.Config
}

func (s *azureSuite) SetupTest() {
	s.client = NewMockAzureClient()
	s.p = NewProvider(WithClient(s.client))
	s.cfg = doclib.Config{SiteName: "finance", Library: "Shared Documents"}
}

func (s *azureSuite) session() doclib.Session {
	sess, err := s.p.Authenticate(context.Background(), s.cfg)
	s.Require().NoError(err)
	return sess
}

func (s *azureSuite) localFile(size int) string {
	local := filepath.Join(s.T().TempDir(), "upload.bin")
	s.Require().NoError(os.WriteFile(local, []byte(strings.Repeat("z", size)), 0o600))
	return local
}

func (s *azureSuite) TestRegistered() {
	p := backend.Backend(Scheme)
	s.Require().NotNil(p)
	s.Equal("azure", p.Name())
	s.Equal("az", p.Scheme())
}

func (s *azureSuite) TestAuthenticate_Failures() {
	_, err := s.p.Authenticate(context.Background(), doclib.Config{})
	s.ErrorIs(err, doclib.ErrAuthentication, "no container")

	s.client.PropertiesError = MockStorageError(bloberror.ContainerNotFound, http.StatusNotFound, "")
	_, err = s.p.Authenticate(context.Background(), s.cfg)
	s.ErrorIs(err, doclib.ErrAuthentication, "a failed container check is an authentication failure")
	s.True(bloberror.HasCode(err, bloberror.ContainerNotFound))

	p := NewProvider(WithOptions(Options{}))
	_, err = p.Authenticate(context.Background(), s.cfg)
	s.ErrorIs(err, doclib.ErrAuthentication, "no url and no account")
}

func (s *azureSuite) TestCreateUploadSession_Blocks() {
	var progress []int64
	receipt, err := s.session().CreateUploadSession(context.Background(), "/sites/finance/Shared Documents/Up",
		s.localFile(25), 10, func(n int64) { progress = append(progress, n) })
	s.Require().NoError(err)
	s.Equal("Shared Documents/Up/upload.bin", receipt.Path)
	s.Equal(3, receipt.Chunks)
	s.Equal([]int64{10, 20, 25}, progress)
	s.Equal([]string{"Properties", "StageBlock", "StageBlock", "StageBlock", "CommitBlockList"}, s.client.Calls())
	s.Empty(s.client.staged)
}

func (s *azureSuite) TestCreateUploadSession_SingleChunk() {
	_, err := s.session().CreateUploadSession(context.Background(), "Shared Documents/Up", s.localFile(3), 10, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Properties", "Upload"}, s.client.Calls())
}

func (s *azureSuite) TestBlockIDs() {
	first, tenth := blockID("upload", 0), blockID("upload", 9)
	s.NotEqual(first, tenth)
	s.Len(tenth, len(first), "block ids of a blob share one length")
}

func (s *azureSuite) TestListItems() {
	_, err := s.session().ListItems(context.Background(), "Funds")
	s.ErrorIs(err, doclib.ErrNotSupported)
}

func (s *azureSuite) TestMapError() {
	s.ErrorIs(mapError(MockStorageError(bloberror.BlobNotFound, http.StatusNotFound, "a")), doclib.ErrNotFound)
	s.ErrorIs(mapError(MockStorageError(bloberror.AuthorizationFailure, http.StatusForbidden, "a")), doclib.ErrAuthentication)

	other := MockStorageError(bloberror.ServerBusy, http.StatusServiceUnavailable, "a")
	s.Equal(other, mapError(other))

	plain := errors.New("boom")
	s.Equal(plain, mapError(plain))
	s.NoError(mapError(nil))
}

func TestAzure(t *testing.T) {
	suite.Run(t, new(azureSuite))
}
