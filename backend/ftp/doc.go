/*
Package ftp - FTP doclib backend using github.com/jlaffaye/ftp.

Each site is a directory below the path of the site URL.  Library paths live below it, so with the site URL
ftp://bob@ftp.acme.com/pub, /sites/Finance/Shared Documents/a.csv and Shared Documents/a.csv both address
/pub/Finance/Shared Documents/a.csv.

# Config

	SiteURL   ftp://[user@]host[:port][/path], port defaults to 21
	SiteName  directory of the site below the site URL path
	Library   directory of the library below the site directory
	Username  optional, overrides every other username source
	Password  optional, overrides every other password source

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/ftp"
	)

	func UseProvider() {
	    p := backend.Backend(ftp.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/ftp"

	func DoSomething() {
	    p := ftp.NewProvider(
	        ftp.WithOptions(
	            ftp.Options{
	                Protocol:    "FTPES",
	                DialTimeout: 10 * time.Second,
	            },
	        ),
	    )
	    ...
	}

Each Session dials its own command connection.  FTP runs one transfer at a time per connection, so a Session must not
be shared between goroutines; open one Session per goroutine instead.

# Authentication

## USERNAME

Config.Username, else Options.UserName, else env var DOCLIB_FTP_USERNAME, else the user of the site URL.  Defaults to
"anonymous".

## PASSWORD

Config.Password, else Options.Password, else env var DOCLIB_FTP_PASSWORD, even when set to an empty value.  Defaults
to "anonymous".

# Protocol

The ftp backend supports FTP (unencrypted), FTPS (implicit TLS) and FTPES (explicit TLS).  Protocol can be set by env
var DOCLIB_FTP_PROTOCOL or in Options.Protocol.  Options values take precedence over env vars.

By default, FTPS and FTPES use the following TLS configuration but can be overridden (recommended) with
Options.TLSConfig:

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true,
		ClientSessionCache: tls.NewLRUClientSessionCache(0),
		ServerName:         hostname,
	}

# Other Options

DebugWriter io.Writer - captures FTP command details to any writer.

DialTimeout time.Duration - sets timeout for connecting only.

DisableEPSV *bool - Extended Passive mode (EPSV) is attempted by default.  Set to true to use regular Passive mode
(PASV).  Env var DOCLIB_FTP_DISABLE_EPSV is used when unset.

# Versions

FTP reports no creation time and no version numbers.  Listings report the modification time as the creation time and
version 1.0 for every file.

# Chunked uploads

The first chunk is sent with STOR and every following one with APPE.  A failed upload deletes the partial file.
*/
package ftp
