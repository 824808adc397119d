package sharepoint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend"
)

/**********************************
 ************TESTS*****************
 **********************************/

type sharepointSuite struct {
	suite.Suite
	site *fakeSite
	srv  *httptest.Server
	cred *fakeCredential
	p    *Provider
	cfg  doclib.Config
}

func (s *sharepointSuite) SetupTest() {
	s.site, s.srv = newFakeSite(s.T(), "Finance")
	s.cred = &fakeCredential{token: fakeToken}
	s.p = testProvider(s.srv.Client(), s.cred)
	s.cfg = doclib.Config{SiteURL: s.srv.URL, SiteName: "Finance", Library: "Shared Documents"}
}

func (s *sharepointSuite) session() doclib.Session {
	sess, err := s.p.Authenticate(context.Background(), s.cfg)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = sess.Close() })
	return sess
}

func (s *sharepointSuite) TestRegistered() {
	p := backend.Backend(Scheme)
	s.Require().NotNil(p)
	s.Equal("SharePoint Online", p.Name())
	s.Equal(Scheme, p.Scheme())
}

func (s *sharepointSuite) TestAuthenticate_TokenScope() {
	s.session()
	s.Require().NotEmpty(s.cred.scopes)
	s.Equal(s.srv.URL+"/.default", s.cred.scopes[0])
	s.Equal([]string{""}, s.site.called(), "authenticate checks the site web")
}

func (s *sharepointSuite) TestAuthenticate_RejectedToken() {
	p := testProvider(s.srv.Client(), &fakeCredential{token: "stale"})
	_, err := p.Authenticate(context.Background(), s.cfg)
	s.ErrorIs(err, doclib.ErrAuthentication)
}

func (s *sharepointSuite) TestAuthenticate_UnknownSite() {
	cfg := s.cfg
	cfg.SiteName = "Nowhere"
	_, err := s.p.Authenticate(context.Background(), cfg)
	s.ErrorIs(err, doclib.ErrAuthentication)
}

func (s *sharepointSuite) TestAuthenticate_BadSiteURL() {
	for _, siteURL := range []string{"", "http://contoso.sharepoint.com", "https://"} {
		cfg := s.cfg
		cfg.SiteURL = siteURL
		_, err := s.p.Authenticate(context.Background(), cfg)
		s.ErrorIs(err, doclib.ErrAuthentication, siteURL)
	}
}

func (s *sharepointSuite) TestSiteURLs() {
	tests := []struct {
		siteURL, siteName string
		web, scope        string
	}{
		{"https://contoso.sharepoint.com", "Finance", "https://contoso.sharepoint.com/sites/Finance", "https://contoso.sharepoint.com/.default"},
		{"https://contoso.sharepoint.com/", "Finance", "https://contoso.sharepoint.com/sites/Finance", "https://contoso.sharepoint.com/.default"},
		{"https://contoso.sharepoint.com/sites/Finance", "Finance", "https://contoso.sharepoint.com/sites/Finance", "https://contoso.sharepoint.com/.default"},
		{"https://contoso.sharepoint.com", "", "https://contoso.sharepoint.com", "https://contoso.sharepoint.com/.default"},
	}
	for _, tt := range tests {
		web, scope, err := siteURLs(doclib.Config{SiteURL: tt.siteURL, SiteName: tt.siteName})
		s.Require().NoError(err, tt.siteURL)
		s.Equal(tt.web, web, tt.siteURL)
		s.Equal(tt.scope, scope, tt.siteURL)
	}
}

func (s *sharepointSuite) TestListFolder_FollowsNextLink() {
	sess := s.session()
	ctx := context.Background()
	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		_, err := sess.WriteFile(ctx, "/sites/Finance/Shared Documents/Paged", name, []byte(name))
		s.Require().NoError(err)
	}

	s.site.pageSize = 2
	records, err := sess.ListFolder(ctx, "Shared Documents/Paged")
	s.Require().NoError(err)
	files, err := doclib.Normalize(records)
	s.Require().NoError(err)
	s.Len(files, 3)
	s.Equal("c.csv", files[2].Name)
}

func (s *sharepointSuite) TestWriteFile_Receipt() {
	sess := s.session()
	receipt, err := sess.WriteFile(context.Background(), "/sites/Finance/Shared Documents/Reports", "O'Brien.txt", []byte("quote"))
	s.Require().NoError(err)
	s.Equal("/sites/Finance/Shared Documents/Reports/O'Brien.txt", receipt.Path)
	s.Equal(int64(5), receipt.Size)
	s.Equal(1, receipt.Chunks)
	s.NotEmpty(receipt.UniqueID)
}

func (s *sharepointSuite) TestCreateUploadSession_Calls() {
	sess := s.session()
	local := filepath.Join(s.T().TempDir(), "big.bin")
	s.Require().NoError(os.WriteFile(local, []byte(strings.Repeat("x", 25)), 0o600))

	receipt, err := sess.CreateUploadSession(context.Background(), "/sites/Finance/Shared Documents/Up", local, 10, nil)
	s.Require().NoError(err)
	s.Equal(3, receipt.Chunks)
	s.Equal(int64(25), receipt.Size)

	var kinds []string
	for _, c := range s.site.called()[1:] {
		kinds = append(kinds, strings.SplitN(strings.TrimPrefix(strings.TrimPrefix(c, "GetFileByServerRelativeUrl(@u)/"),
			"GetFolderByServerRelativeUrl(@u)/"), "(", 2)[0])
	}
	s.Equal([]string{"Files/add", "StartUpload", "ContinueUpload", "FinishUpload"}, kinds)
}

func (s *sharepointSuite) TestCreateUploadSession_SingleChunkAddsDirectly() {
	sess := s.session()
	local := filepath.Join(s.T().TempDir(), "small.txt")
	s.Require().NoError(os.WriteFile(local, []byte("tiny"), 0o600))

	receipt, err := sess.CreateUploadSession(context.Background(), "/sites/Finance/Shared Documents/Up", local, 10, nil)
	s.Require().NoError(err)
	s.Equal(1, receipt.Chunks)
	s.Len(s.site.called(), 2, "site check and a single add")
}

func (s *sharepointSuite) TestCreateUploadSession_CancelsOnFailure() {
	sess := s.session()
	local := filepath.Join(s.T().TempDir(), "big.bin")
	s.Require().NoError(os.WriteFile(local, []byte(strings.Repeat("x", 25)), 0o600))

	s.site.failOn = "GetFileByServerRelativeUrl(@u)/ContinueUpload"
	var progress []int64
	_, err := sess.CreateUploadSession(context.Background(), "/sites/Finance/Shared Documents/Up", local, 10,
		func(n int64) { progress = append(progress, n) })
	s.Require().Error(err)
	s.Equal([]int64{10}, progress)

	calls := s.site.called()
	s.True(strings.HasPrefix(calls[len(calls)-1], "GetFileByServerRelativeUrl(@u)/CancelUpload("), "upload is canceled")
}

func (s *sharepointSuite) TestListItems() {
	s.site.store.PutList("Finance", "Funds", []doclib.ListItem{
		{ID: "1", Title: "Alpha", Fields: map[string]any{"ID": 1, "Title": "Alpha", "Code": "ALPHA"}},
		{ID: "2", Title: "Beta", Fields: map[string]any{"ID": 2, "Title": "Beta", "Code": "BETA"}},
		{ID: "3", Title: "Gamma", Fields: map[string]any{"ID": 3, "Title": "Gamma", "Code": "GAMMA"}},
	})
	s.site.pageSize = 2

	items, err := s.session().ListItems(context.Background(), "Funds")
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("3", items[2].ID)
	s.Equal("Gamma", items[2].Title)
	s.Equal("GAMMA", items[2].Fields["Code"])
}

func (s *sharepointSuite) TestListItems_UnknownList() {
	_, err := s.session().ListItems(context.Background(), "Nope")
	s.ErrorIs(err, doclib.ErrNotFound)
}

func (s *sharepointSuite) TestWithClient() {
	client := &MockClient{Body: `{"Title":"Finance"}`}
	p := NewProvider(WithClient(client))
	cfg := doclib.Config{SiteURL: "https://contoso.sharepoint.com", SiteName: "Finance"}

	sess, err := p.Authenticate(context.Background(), cfg)
	s.Require().NoError(err)
	s.Require().Len(client.Requests, 1)
	s.Equal("https://contoso.sharepoint.com/sites/Finance/_api/web?$select=Title", client.Requests[0].URL.String())
	s.Equal(acceptJSON, client.Requests[0].Header.Get("Accept"))

	client.Status = http.StatusForbidden
	_, err = sess.ReadFile(context.Background(), "/sites/Finance/Shared Documents/a.txt")
	s.ErrorIs(err, doclib.ErrAuthentication)

	client.Status = http.StatusNotFound
	_, err = sess.ListFolder(context.Background(), "Shared Documents")
	s.ErrorIs(err, doclib.ErrNotFound)

	client.Status = 0
	client.ExpectedError = errors.New("connection reset")
	_, err = sess.WriteFile(context.Background(), "/sites/Finance/Shared Documents", "a.txt", []byte("a"))
	s.EqualError(err, "connection reset")
}

func (s *sharepointSuite) TestAliases() {
	s.Equal("@u=%27%2Fsites%2FFinance%2FO%27%27Brien%20docs%27", aliases("@u", "/sites/Finance/O'Brien docs"))
	s.Equal("@u=%27a%27&@f=%27b.txt%27", aliases("@u", "a", "@f", "b.txt"))
}

func (s *sharepointSuite) TestNewOptions() {
	s.T().Setenv("SHAREPOINT_TENANT_ID", "tenant")
	s.T().Setenv("SHAREPOINT_CLIENT_ID", "client")
	s.T().Setenv("SHAREPOINT_CLIENT_SECRET", "secret")
	s.Equal(Options{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"}, NewOptions())
}

func (s *sharepointSuite) TestCredential() {
	cred, err := Options{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"}.Credential(s.cfg)
	s.Require().NoError(err)
	s.NotNil(cred)

	cred, err = Options{ClientID: "client"}.Credential(doclib.Config{Username: "user@contoso.com", Password: "pw"})
	s.Require().NoError(err)
	s.NotNil(cred)
}

func TestSharePoint(t *testing.T) {
	suite.Run(t, new(sharepointSuite))
}
