package sharepoint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/mem"
)

const fakeToken = "fake-token"

// fakeCredential hands out a fixed token and remembers the scopes it was asked for.
type fakeCredential struct {
	mu     sync.Mutex
	token  string
	scopes []string
}

func (c *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = append(c.scopes, opts.Scopes...)
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

var uploadCall = regexp.MustCompile(`^GetFileByServerRelativeUrl\(@u\)/(StartUpload|ContinueUpload|FinishUpload|CancelUpload)\(uploadId=guid'([^']+)'(?:,fileOffset=(\d+))?\)$`)

// fakeSite serves the slice of the SharePoint REST API the backend uses, storing files in a mem provider.
type fakeSite struct {
	siteName string
	store    *mem.Provider
	pageSize int

	mu      sync.Mutex
	uploads map[string][]byte
	calls   []string
	failOn  string
}

func newFakeSite(t *testing.T, siteName string) (*fakeSite, *httptest.Server) {
	f := &fakeSite{
		siteName: siteName,
		store:    mem.NewProvider(),
		uploads:  make(map[string][]byte),
	}
	srv := httptest.NewTLSServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeSite) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSite) fail(status int, w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", acceptJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"odata.error": map[string]any{"code": strconv.Itoa(status), "message": map[string]string{"value": msg}},
	})
}

func (f *fakeSite) reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", acceptJSON)
	_ = json.NewEncoder(w).Encode(v)
}

func alias(r *http.Request, name string) string {
	v := r.URL.Query().Get(name)
	v = strings.TrimSuffix(strings.TrimPrefix(v, "'"), "'")
	return strings.ReplaceAll(v, "''", "'")
}

func fileJSON(r doclib.Record) map[string]any {
	return map[string]any{
		"Name":             *r.Name,
		"UniqueId":         *r.UniqueID,
		"Length":           strconv.FormatInt(*r.Length, 10),
		"TimeCreated":      *r.TimeCreated,
		"TimeLastModified": *r.TimeLastModified,
		"MajorVersion":     *r.MajorVersion,
		"MinorVersion":     *r.MinorVersion,
	}
}

func (f *fakeSite) receiptJSON(name string, receipt *doclib.Receipt) map[string]any {
	return map[string]any{
		"Name":              name,
		"UniqueId":          receipt.UniqueID,
		"Length":            strconv.FormatInt(receipt.Size, 10),
		"ServerRelativeUrl": "/sites/" + f.siteName + "/" + receipt.Path,
	}
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+fakeToken {
		f.fail(http.StatusUnauthorized, w, "Access denied.")
		return
	}

	prefix := "/sites/" + f.siteName + "/_api/web"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		f.fail(http.StatusNotFound, w, "Site not found.")
		return
	}
	call := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")

	f.mu.Lock()
	f.calls = append(f.calls, call)
	failing := f.failOn != "" && strings.HasPrefix(call, f.failOn)
	f.mu.Unlock()
	if failing {
		f.fail(http.StatusConflict, w, "Injected failure.")
		return
	}

	ctx := r.Context()
	sess, err := f.store.Authenticate(ctx, doclib.Config{SiteName: f.siteName})
	if err != nil {
		f.fail(http.StatusInternalServerError, w, err.Error())
		return
	}
	defer func() { _ = sess.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		f.fail(http.StatusBadRequest, w, err.Error())
		return
	}

	switch {
	case call == "":
		f.reply(w, map[string]any{"Title": f.siteName})

	case call == "GetFolderByServerRelativeUrl(@u)/Files":
		records, err := sess.ListFolder(ctx, alias(r, "@u"))
		if err != nil {
			f.fail(http.StatusInternalServerError, w, err.Error())
			return
		}
		f.page(w, r, len(records), func(i int) any { return fileJSON(records[i]) })

	case call == "GetFolderByServerRelativeUrl(@u)/Files/add(url=@f,overwrite=true)":
		name := alias(r, "@f")
		receipt, err := sess.WriteFile(ctx, alias(r, "@u"), name, body)
		if err != nil {
			f.fail(http.StatusInternalServerError, w, err.Error())
			return
		}
		f.reply(w, f.receiptJSON(name, receipt))

	case call == "GetFileByServerRelativeUrl(@u)/$value":
		content, err := sess.ReadFile(ctx, alias(r, "@u"))
		if errors.Is(err, doclib.ErrNotFound) {
			f.fail(http.StatusNotFound, w, "File Not Found.")
			return
		} else if err != nil {
			f.fail(http.StatusInternalServerError, w, err.Error())
			return
		}
		_, _ = w.Write(content)

	case uploadCall.MatchString(call):
		f.upload(w, r, sess, uploadCall.FindStringSubmatch(call), body)

	case call == "lists/GetByTitle(@l)/items":
		items, err := sess.ListItems(ctx, alias(r, "@l"))
		if errors.Is(err, doclib.ErrNotFound) {
			f.fail(http.StatusNotFound, w, "List does not exist.")
			return
		} else if err != nil {
			f.fail(http.StatusInternalServerError, w, err.Error())
			return
		}
		f.page(w, r, len(items), func(i int) any { return items[i].Fields })

	default:
		f.fail(http.StatusBadRequest, w, "unexpected call "+call)
	}
}

// page writes one page of a collection, linking to the next page when pageSize is set.
func (f *fakeSite) page(w http.ResponseWriter, r *http.Request, n int, item func(int) any) {
	start, _ := strconv.Atoi(r.URL.Query().Get("$skiptoken"))
	end := n
	if f.pageSize > 0 {
		end = min(n, start+f.pageSize)
	}

	values := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		values = append(values, item(i))
	}
	out := map[string]any{"value": values}
	if end < n {
		q := r.URL.Query()
		q.Set("$skiptoken", strconv.Itoa(end))
		next := *r.URL
		next.RawQuery = q.Encode()
		out["odata.nextLink"] = "https://" + r.Host + next.String()
	}
	f.reply(w, out)
}

func (f *fakeSite) upload(w http.ResponseWriter, r *http.Request, sess doclib.Session, m []string, body []byte) {
	method, id := m[1], m[2]
	offset, _ := strconv.Atoi(m[3])

	f.mu.Lock()
	defer f.mu.Unlock()

	switch method {
	case "StartUpload":
		f.uploads[id] = append([]byte(nil), body...)
	case "CancelUpload":
		delete(f.uploads, id)
		w.WriteHeader(http.StatusOK)
		return
	default:
		buf, ok := f.uploads[id]
		if !ok || len(buf) != offset {
			f.fail(http.StatusBadRequest, w, "bad upload offset")
			return
		}
		f.uploads[id] = append(buf, body...)
	}

	if method != "FinishUpload" {
		f.reply(w, map[string]any{"value": strconv.Itoa(len(f.uploads[id]))})
		return
	}

	filePath := alias(r, "@u")
	name := path.Base(filePath)
	receipt, err := sess.WriteFile(r.Context(), path.Dir(filePath), name, f.uploads[id])
	delete(f.uploads, id)
	if err != nil {
		f.fail(http.StatusInternalServerError, w, err.Error())
		return
	}
	f.reply(w, f.receiptJSON(name, receipt))
}
