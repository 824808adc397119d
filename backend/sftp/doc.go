/*
Package sftp - SFTP doclib backend using github.com/pkg/sftp over golang.org/x/crypto/ssh.

Each site is a directory below the path of the site URL.  Library paths live below it, so with the site URL
sftp://robot@files.example.com/srv, /sites/Finance/Shared Documents/a.csv and Shared Documents/a.csv both address
/srv/Finance/Shared Documents/a.csv.

# Config

	SiteURL   sftp://[user@]host[:port][/path], port defaults to 22
	SiteName  directory of the site below the site URL path
	Library   directory of the library below the site directory
	Username  optional, overrides the user of the site URL
	Password  optional password

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/sftp"
	)

	func UseProvider() {
	    p := backend.Backend(sftp.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/sftp"

	func DoSomething() {
	    p := sftp.NewProvider(
	        sftp.WithOptions(
	            sftp.Options{
	                KeyFilePath:    "/home/Bob/.ssh/id_rsa",
	                KeyPassphrase:  "s3cr3t",
	                KnownHostsFile: "/home/Bob/.ssh/known_hosts",
	            },
	        ),
	    )

	    // to pass a specific client; it is never closed by the provider
	    p = sftp.NewProvider(sftp.WithClient(client))
	}

# Authentication

Authentication, by default, occurs automatically when Authenticate is called.  Each Session opens and owns its own ssh
connection.  A password and a private key may both be offered:

 1. Config.Password, else Options.Password, else env var DOCLIB_SFTP_PASSWORD.

 2. Options.KeyFilePath, else env var DOCLIB_SFTP_KEYFILE.  An encrypted key is opened with Options.KeyPassphrase,
    else env var DOCLIB_SFTP_KEYFILE_PASSPHRASE.  Encrypted keys must be in PEM format, ie: ssh-keygen -m PEM

# Known Hosts

The server host key is checked, in order, against:

 1. Options.KnownHostsCallback, ie: ssh.FixedHostKey(key)

 2. Options.KnownHostsString, a single known_hosts line.

 3. Options.KnownHostsFile, then env var DOCLIB_SFTP_KNOWN_HOSTS_FILE.

 4. Nothing at all when env var DOCLIB_SFTP_INSECURE_KNOWN_HOSTS is set.  Not recommended.

 5. ~/.ssh/known_hosts and /etc/ssh/ssh_known_hosts.

# Versions

SFTP reports no creation time and no version numbers.  Listings report the modification time as the creation time and
version 1.0 for every file.

# Chunked uploads

Chunks are written in order to one remote file.  A failed or canceled upload removes the partial file.
*/
package sftp
