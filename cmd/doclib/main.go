package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/c2fo/doclib/config"
	"github.com/c2fo/doclib/doclibsimple"
	"github.com/c2fo/doclib/internal/logging"
	"github.com/c2fo/doclib/library"
)

const defaultChunkSize = 10 * 1024 * 1024

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(ctx).Run(os.Args); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

// env is shared by every command of one run.  client is set by the Before hook.
type env struct {
	ctx    context.Context
	client *library.Client
}

func newApp(ctx context.Context) *cli.App {
	e := &env{ctx: ctx}

	app := cli.NewApp()
	app.Name = "doclib"
	app.Usage = "Lists, downloads and uploads files in a remote document library"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "yaml settings file",
			EnvVar: config.EnvConfigFile,
		},
		cli.StringSliceFlag{
			Name:  "env-file",
			Usage: "dotenv file read before the environment (default .env when present)",
		},
		cli.StringFlag{
			Name:   "backend, b",
			Usage:  "provider scheme: sharepoint, s3, az, gs, dbx, sftp, ftp, file or mem",
			EnvVar: config.EnvBackend,
		},
		cli.StringFlag{
			Name:  "uri, u",
			Usage: "site uri, scheme://site/library/, replacing backend, site and library settings",
		},
		cli.StringFlag{
			Name:   "log-level, l",
			Usage:  "trace, debug, info, warn or error",
			EnvVar: config.EnvLogLevel,
		},
	}
	app.Before = e.before
	app.Commands = []cli.Command{
		{
			Name:      "list",
			Usage:     "list the files of a folder",
			ArgsUsage: "FOLDER",
			Action:    e.list,
		},
		{
			Name:      "latest",
			Usage:     "download the most recently modified file of a folder",
			ArgsUsage: "FOLDER",
			Flags:     []cli.Flag{outFlag},
			Action:    e.latest,
		},
		{
			Name:      "download",
			Usage:     "download one file",
			ArgsUsage: "FOLDER FILE",
			Flags:     []cli.Flag{outFlag},
			Action:    e.download,
		},
		{
			Name:      "download-all",
			Usage:     "download every file of a folder",
			ArgsUsage: "FOLDER",
			Flags:     []cli.Flag{outFlag},
			Action:    e.downloadAll,
		},
		{
			Name:      "upload",
			Usage:     "upload a local file in one request",
			ArgsUsage: "FOLDER LOCAL_FILE",
			Action:    e.upload,
		},
		{
			Name:      "upload-chunked",
			Usage:     "upload a local file through a chunked upload session",
			ArgsUsage: "FOLDER LOCAL_FILE",
			Flags: []cli.Flag{
				cli.Int64Flag{
					Name:  "chunk-size",
					Usage: "bytes per chunk",
					Value: defaultChunkSize,
				},
			},
			Action: e.uploadChunked,
		},
		{
			Name:      "properties",
			Usage:     "print the properties of every file of a folder",
			ArgsUsage: "FOLDER",
			Action:    e.properties,
		},
		{
			Name:      "fund-files",
			Usage:     "print the newest fund position file per fund",
			ArgsUsage: "[FOLDER]",
			Action:    e.fundFiles,
		},
		{
			Name:      "list-items",
			Usage:     "print the items of a site list",
			ArgsUsage: "LIST",
			Action:    e.listItems,
		},
		{
			Name:      "excel",
			Usage:     "download a spreadsheet and print its rows",
			ArgsUsage: "FOLDER FILE",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "sheet",
					Usage: "sheet to read (default first sheet)",
				},
			},
			Action: e.excel,
		},
	}
	return app
}

var outFlag = cli.StringFlag{
	Name:  "out, o",
	Usage: "directory the files are written to",
	Value: ".",
}

func (e *env) before(c *cli.Context) error {
	var opts []config.Option
	if f := c.String("config"); f != "" {
		opts = append(opts, config.WithFile(f))
	}
	if files := c.StringSlice("env-file"); len(files) > 0 {
		opts = append(opts, config.WithEnvFiles(files...))
	}

	settings, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if b := c.String("backend"); b != "" {
		settings.Backend = b
	}
	if l := c.String("log-level"); l != "" {
		settings.LogLevel = l
	}

	if err := logging.Init(settings.LogLevel, c.App.ErrWriter); err != nil {
		return fmt.Errorf("log level %q: %w", settings.LogLevel, err)
	}
	logger := library.WithLogger(logging.GetLogger("library"))

	if uri := c.String("uri"); uri != "" {
		e.client, err = doclibsimple.NewClient(uri, settings.Site, logger)
	} else {
		e.client, err = doclibsimple.NewClientFromSettings(settings, logger)
	}
	return err
}
