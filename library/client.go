package library

import (
	"context"
	"fmt"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/options"
	"github.com/c2fo/doclib/selection"
	"github.com/c2fo/doclib/tabular"
	"github.com/c2fo/doclib/utils"
)

// DefaultFundFolder is the folder UpdateFundFiles scans when no folder is given.
const DefaultFundFolder = "Gestão/Dashboard"

// Properties is the per-file property row reported by FileProperties.  Timestamps keep the provider string form.
type Properties struct {
	FileID           string `json:"file_id"`
	FileName         string `json:"file_name"`
	MajorVersion     int    `json:"major_version"`
	MinorVersion     int    `json:"minor_version"`
	FileSize         int64  `json:"file_size"`
	TimeCreated      string `json:"time_created"`
	TimeLastModified string `json:"time_last_modified"`
}

// NamedContent pairs a file name with its downloaded content.  Bulk downloads return a slice of pairs rather than a
// map so that two files with the same name are both kept.
type NamedContent struct {
	Name    string
	Content []byte
}

// Client runs document-library operations against a single site.
type Client struct {
	provider doclib.Provider
	cfg      doclib.Config
	logger   zerolog.Logger
	metrics  *metrics
}

// New returns a Client for the site described by cfg.  cfg is not validated here; a bad value surfaces from the
// provider as doclib.ErrAuthentication on first use.
func New(provider doclib.Provider, cfg doclib.Config, opts ...options.NewClientOption[Client]) *Client {
	c := &Client{
		provider: provider,
		cfg:      cfg,
		logger:   zerolog.Nop(),
	}
	options.ApplyClientOptions(c, opts...)
	c.logger = c.logger.With().Str("provider", provider.Scheme()).Str("site", cfg.SiteName).Logger()
	return c
}

// Provider returns the provider the Client opens sessions through.
func (c *Client) Provider() doclib.Provider {
	return c.provider
}

// Config returns the site configuration of the Client.
func (c *Client) Config() doclib.Config {
	return c.cfg
}

// withSession authenticates a new Session, hands it to fn and closes it.  A Close failure is only reported when fn
// succeeded.
func (c *Client) withSession(ctx context.Context, operation string, fn func(doclib.Session) error) (err error) {
	defer func() { c.metrics.observe(operation, err) }()

	c.logger.Debug().Str("operation", operation).Msg("authenticating")
	sess, err := c.provider.Authenticate(ctx, c.cfg)
	if err != nil {
		return utils.WrapAuthenticateError(err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = utils.WrapCloseError(cerr)
		}
	}()

	if err = fn(sess); err != nil {
		c.logger.Debug().Err(err).Str("operation", operation).Msg("operation failed")
	}
	return err
}

func (c *Client) listPath(folder string) string {
	return utils.LibraryPath(c.cfg.Library, folder)
}

func (c *Client) sitePath(folder string, file ...string) string {
	return utils.SitePath(c.cfg.SiteName, c.cfg.Library, folder, file...)
}

func (c *Client) list(ctx context.Context, sess doclib.Session, folder string) ([]doclib.FileRef, error) {
	records, err := sess.ListFolder(ctx, c.listPath(folder))
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	files, err := doclib.Normalize(records)
	if err != nil {
		return nil, utils.WrapListError(err)
	}
	c.logger.Debug().Str("folder", folder).Int("files", len(files)).Msg("listed folder")
	return files, nil
}

func (c *Client) read(ctx context.Context, sess doclib.Session, fileName, folder string) ([]byte, error) {
	content, err := sess.ReadFile(ctx, c.sitePath(folder, fileName))
	if err != nil {
		return nil, utils.WrapReadError(err)
	}
	c.metrics.transferred(directionDownload, int64(len(content)))
	return content, nil
}

// ListFiles returns the normalized files directly inside folder.
func (c *Client) ListFiles(ctx context.Context, folder string) ([]doclib.FileRef, error) {
	var files []doclib.FileRef
	err := c.withSession(ctx, "list_files", func(sess doclib.Session) (err error) {
		files, err = c.list(ctx, sess, folder)
		return err
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DownloadFile returns the content of fileName inside folder.
func (c *Client) DownloadFile(ctx context.Context, fileName, folder string) ([]byte, error) {
	var content []byte
	err := c.withSession(ctx, "download_file", func(sess doclib.Session) (err error) {
		content, err = c.read(ctx, sess, fileName, folder)
		return err
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// DownloadFiles downloads every file inside folder, in listing order.  The first failed download aborts the call and
// nothing is returned.
func (c *Client) DownloadFiles(ctx context.Context, folder string) ([]NamedContent, error) {
	var result []NamedContent
	err := c.withSession(ctx, "download_files", func(sess doclib.Session) error {
		files, err := c.list(ctx, sess, folder)
		if err != nil {
			return err
		}
		result = make([]NamedContent, 0, len(files))
		for _, f := range files {
			content, err := c.read(ctx, sess, f.Name, folder)
			if err != nil {
				return err
			}
			result = append(result, NamedContent{Name: f.Name, Content: content})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DownloadLatestFile downloads the most recently modified file inside folder and returns its name and content.  An
// empty folder fails with doclib.ErrEmptyInput.
func (c *Client) DownloadLatestFile(ctx context.Context, folder string) (string, []byte, error) {
	var (
		name    string
		content []byte
	)
	err := c.withSession(ctx, "download_latest_file", func(sess doclib.Session) error {
		files, err := c.list(ctx, sess, folder)
		if err != nil {
			return err
		}
		latest, err := selection.SelectLatest(files)
		if err != nil {
			return fmt.Errorf("folder %q: %w", folder, err)
		}
		c.logger.Debug().Str("folder", folder).Str("file", latest.Name).Time("modified", latest.ModifiedAt).
			Msg("selected latest file")
		name = latest.Name
		content, err = c.read(ctx, sess, latest.Name, folder)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return name, content, nil
}

// UploadFile creates or overwrites fileName inside folder.
func (c *Client) UploadFile(ctx context.Context, fileName, folder string, content []byte) (*doclib.Receipt, error) {
	var receipt *doclib.Receipt
	err := c.withSession(ctx, "upload_file", func(sess doclib.Session) (err error) {
		receipt, err = sess.WriteFile(ctx, c.sitePath(folder), fileName, content)
		if err != nil {
			return utils.WrapWriteError(err)
		}
		c.metrics.transferred(directionUpload, int64(len(content)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// UploadFileInChunks uploads the local file at localPath into folder through a chunked upload session.  The uploaded
// file keeps the base name of localPath.  onChunk may be nil.
func (c *Client) UploadFileInChunks(ctx context.Context, localPath, folder string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	if err := validateChunkedUpload(localPath, chunkSize); err != nil {
		return nil, err
	}

	progress := func(uploaded int64) {
		c.logger.Debug().Str("file", filepath.Base(localPath)).Int64("uploaded", uploaded).Msg("chunk uploaded")
		if onChunk != nil {
			onChunk(uploaded)
		}
	}

	var receipt *doclib.Receipt
	err := c.withSession(ctx, "upload_file_in_chunks", func(sess doclib.Session) (err error) {
		receipt, err = sess.CreateUploadSession(ctx, c.sitePath(folder), localPath, chunkSize, progress)
		if err != nil {
			return utils.WrapUploadSessionError(err)
		}
		if receipt != nil {
			c.metrics.transferred(directionUpload, receipt.Size)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func validateChunkedUpload(localPath string, chunkSize int64) error {
	err := validation.Errors{
		"localPath": validation.Validate(localPath, validation.Required),
		"chunkSize": validation.Validate(chunkSize, validation.Required, validation.Min(int64(1))),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", doclib.ErrValidation, err)
	}
	return nil
}

// ListItems returns the items of the site list called listName.
func (c *Client) ListItems(ctx context.Context, listName string) ([]doclib.ListItem, error) {
	var items []doclib.ListItem
	err := c.withSession(ctx, "list_items", func(sess doclib.Session) (err error) {
		items, err = sess.ListItems(ctx, listName)
		if err != nil {
			return utils.WrapListItemsError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FileProperties returns the property row of every file inside folder, in listing order.
func (c *Client) FileProperties(ctx context.Context, folder string) ([]Properties, error) {
	files, err := c.ListFiles(ctx, folder)
	if err != nil {
		return nil, err
	}

	props := make([]Properties, len(files))
	for i, f := range files {
		r := f.Record()
		props[i] = Properties{
			FileID:           f.UniqueID,
			FileName:         f.Name,
			MajorVersion:     f.MajorVersion,
			MinorVersion:     f.MinorVersion,
			FileSize:         f.Size,
			TimeCreated:      *r.TimeCreated,
			TimeLastModified: *r.TimeLastModified,
		}
	}
	return props, nil
}

// UpdateFundFiles maps each fund code found in folder to its newest fund position file.  An empty folder means
// DefaultFundFolder.
func (c *Client) UpdateFundFiles(ctx context.Context, folder string) (map[string]string, error) {
	if folder == "" {
		folder = DefaultFundFolder
	}

	files, err := c.ListFiles(ctx, folder)
	if err != nil {
		return nil, err
	}

	funds := selection.FundFiles(selection.Names(files))

	dict := zerolog.Dict()
	for key, name := range funds {
		dict = dict.Str(key, name)
	}
	c.logger.Info().Str("folder", folder).Int("funds", len(funds)).Dict("files", dict).Msg("fund files updated")

	return funds, nil
}

// DownloadAndReadExcel downloads fileName from folder and loads it as a spreadsheet.  Content that is not a
// spreadsheet fails with doclib.ErrFormat.
func (c *Client) DownloadAndReadExcel(ctx context.Context, fileName, folder string, opts ...tabular.Option) (*tabular.Table, error) {
	content, err := c.DownloadFile(ctx, fileName, folder)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Load(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return table, nil
}
