package ftp

import (
	"context"
	"crypto/tls"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	_ftp "github.com/jlaffaye/ftp"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/utils"
)

const (
	protocolFTP   = "FTP"
	protocolFTPS  = "FTPS"
	protocolFTPES = "FTPES"

	defaultPort     = 21
	defaultUsername = "anonymous"
	defaultPassword = "anonymous"

	envUsername    = "DOCLIB_FTP_USERNAME"
	envPassword    = "DOCLIB_FTP_PASSWORD"
	envProtocol    = "DOCLIB_FTP_PROTOCOL"
	envDisableEPSV = "DOCLIB_FTP_DISABLE_EPSV"
)

// Options holds ftp-specific options.
type Options struct {
	UserName    string // env var DOCLIB_FTP_USERNAME
	Password    string // env var DOCLIB_FTP_PASSWORD
	Protocol    string // env var DOCLIB_FTP_PROTOCOL (FTP[default], FTPS, FTPES)
	DisableEPSV *bool  // env var DOCLIB_FTP_DISABLE_EPSV
	TLSConfig   *tls.Config
	DebugWriter io.Writer
	DialTimeout time.Duration
}

// merge returns opts with the Config credentials applied.
func (o Options) merge(cfg doclib.Config) Options {
	if cfg.Username != "" {
		o.UserName = cfg.Username
	}
	if cfg.Password != "" {
		o.Password = cfg.Password
	}
	return o
}

func getClient(ctx context.Context, auth utils.Authority, opts Options) (Client, error) {
	c, err := _ftp.Dial(fetchHostPortString(auth), fetchDialOptions(ctx, auth, opts)...)
	if err != nil {
		return nil, err
	}

	if err := c.Login(fetchUsername(auth, opts), fetchPassword(opts)); err != nil {
		_ = c.Quit()
		return nil, err
	}

	return serverConn{c}, nil
}

// fetchUsername resolves, in order: Options, env var, the site URL user, then anonymous.
func fetchUsername(auth utils.Authority, opts Options) string {
	switch {
	case opts.UserName != "":
		return opts.UserName
	case os.Getenv(envUsername) != "":
		return os.Getenv(envUsername)
	case auth.User() != "":
		return auth.User()
	}
	return defaultUsername
}

// fetchPassword resolves, in order: Options, env var (even when empty), then anonymous.
func fetchPassword(opts Options) string {
	if opts.Password != "" {
		return opts.Password
	}
	if pw, ok := os.LookupEnv(envPassword); ok {
		return pw
	}
	return defaultPassword
}

func fetchHostPortString(auth utils.Authority) string {
	return auth.HostPortStr(defaultPort)
}

func fetchDialOptions(ctx context.Context, auth utils.Authority, opts Options) []_ftp.DialOption {
	// always use context, disable EPSV if opt is true
	dialOptions := []_ftp.DialOption{
		_ftp.DialWithContext(ctx),
		_ftp.DialWithDisabledEPSV(isDisableOption(opts)),
	}

	switch strings.ToUpper(fetchProtocol(opts)) {
	case protocolFTPS:
		dialOptions = append(dialOptions, _ftp.DialWithTLS(fetchTLSConfig(auth, opts)))
	case protocolFTPES:
		dialOptions = append(dialOptions, _ftp.DialWithExplicitTLS(fetchTLSConfig(auth, opts)))
	}

	if opts.DebugWriter != nil {
		dialOptions = append(dialOptions, _ftp.DialWithDebugOutput(opts.DebugWriter))
	}

	if opts.DialTimeout != 0 {
		dialOptions = append(dialOptions, _ftp.DialWithTimeout(opts.DialTimeout))
	}

	return dialOptions
}

func fetchProtocol(opts Options) string {
	if opts.Protocol != "" {
		return opts.Protocol
	}
	if protocol, ok := os.LookupEnv(envProtocol); ok {
		return protocol
	}
	return protocolFTP
}

func fetchTLSConfig(auth utils.Authority, opts Options) *tls.Config {
	if opts.TLSConfig != nil {
		return opts.TLSConfig
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true, //nolint:gosec // most FTPS servers present self-signed certificates
		ClientSessionCache: tls.NewLRUClientSessionCache(0),
		ServerName:         auth.Host(),
	}
}

func isDisableOption(opts Options) bool {
	if opts.DisableEPSV != nil {
		return *opts.DisableEPSV
	}
	disabled, err := strconv.ParseBool(os.Getenv(envDisableEPSV))
	return err == nil && disabled
}
