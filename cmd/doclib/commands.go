package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/c2fo/doclib/tabular"
)

var heading = color.New(color.Bold, color.FgCyan)

func checkArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return fmt.Errorf("%s requires %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	for i := 0; i < n; i++ {
		if c.Args().Get(i) == "" {
			return errors.New(c.Command.Name + " requires non-empty arguments")
		}
	}
	return nil
}

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = heading.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func save(dir, name string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	p := filepath.Join(dir, filepath.Base(name))
	return p, os.WriteFile(p, content, 0o600)
}

func (e *env) list(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	files, err := e.client.ListFiles(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	tw := table(c.App.Writer, "NAME", "SIZE", "MODIFIED", "VERSION")
	for _, f := range files {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%d.%d\n", f.Name, f.Size, f.ModifiedAt.Format(time.RFC3339),
			f.MajorVersion, f.MinorVersion)
	}
	return tw.Flush()
}

func (e *env) latest(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	name, content, err := e.client.DownloadLatestFile(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	p, err := save(c.String("out"), name, content)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Downloaded %s to %s\n", name, p)
	return nil
}

func (e *env) download(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	name := c.Args().Get(1)
	content, err := e.client.DownloadFile(e.ctx, name, c.Args().Get(0))
	if err != nil {
		return err
	}
	p, err := save(c.String("out"), name, content)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Downloaded %s to %s\n", name, p)
	return nil
}

func (e *env) downloadAll(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	files, err := e.client.DownloadFiles(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := save(c.String("out"), f.Name, f.Content); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Downloaded %d file(s) to %s\n", len(files), c.String("out"))
	return nil
}

func (e *env) upload(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	local := c.Args().Get(1)
	content, err := os.ReadFile(local) //nolint:gosec // path given on the command line
	if err != nil {
		return err
	}
	receipt, err := e.client.UploadFile(e.ctx, filepath.Base(local), c.Args().Get(0), content)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Uploaded %s (%d bytes)\n", receipt.Path, receipt.Size)
	return nil
}

func (e *env) uploadChunked(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	out := c.App.Writer
	receipt, err := e.client.UploadFileInChunks(e.ctx, c.Args().Get(1), c.Args().Get(0), c.Int64("chunk-size"),
		func(uploaded int64) {
			_, _ = fmt.Fprintf(out, "  %d bytes uploaded\n", uploaded)
		})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Uploaded %s (%d bytes in %d chunk(s))\n", receipt.Path, receipt.Size, receipt.Chunks)
	return nil
}

func (e *env) properties(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	props, err := e.client.FileProperties(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	tw := table(c.App.Writer, "FILE_ID", "FILE_NAME", "MAJOR", "MINOR", "SIZE", "CREATED", "MODIFIED")
	for _, p := range props {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n", p.FileID, p.FileName, p.MajorVersion, p.MinorVersion,
			p.FileSize, p.TimeCreated, p.TimeLastModified)
	}
	return tw.Flush()
}

func (e *env) fundFiles(c *cli.Context) error {
	funds, err := e.client.UpdateFundFiles(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(funds))
	for k := range funds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := table(c.App.Writer, "FUND", "FILE")
	for _, k := range keys {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, funds[k])
	}
	return tw.Flush()
}

func (e *env) listItems(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	items, err := e.client.ListItems(e.ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	tw := table(c.App.Writer, "ID", "TITLE", "FIELDS")
	for _, it := range items {
		keys := make([]string, 0, len(it.Fields))
		for k := range it.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for i, k := range keys {
			fields[i] = fmt.Sprintf("%s=%v", k, it.Fields[k])
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Title, strings.Join(fields, " "))
	}
	return tw.Flush()
}

func (e *env) excel(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	var opts []tabular.Option
	if sheet := c.String("sheet"); sheet != "" {
		opts = append(opts, tabular.WithSheet(sheet))
	}
	t, err := e.client.DownloadAndReadExcel(e.ctx, c.Args().Get(1), c.Args().Get(0), opts...)
	if err != nil {
		return err
	}

	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = fmt.Sprintf("%s (%s)", col.Name, col.Type)
	}
	tw := table(c.App.Writer, header...)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			switch v := v.(type) {
			case nil:
			case time.Time:
				cells[i] = v.Format(time.DateOnly)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
