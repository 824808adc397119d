/*
Package dropbox - Dropbox doclib backend using the unofficial Dropbox SDK for Go.

Each site is a top level folder of the account.  Library paths live below it, so /sites/{site}/Shared Documents/a.csv
and Shared Documents/a.csv both address /{site}/Shared Documents/a.csv.  Dropbox paths are case-insensitive.

# Config

	SiteName  top level folder of the site
	Library   folder of the library below the site folder
	Password  optional OAuth2 access token

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/dropbox"
	)

	func UseProvider() {
	    p := backend.Backend(dropbox.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/dropbox"

	func DoSomething() {
	    p := dropbox.NewProvider(
	        dropbox.WithOptions(dropbox.Options{
	            AccessToken: os.Getenv("DOCLIB_DROPBOX_ACCESS_TOKEN"),
	        }),
	    )
	    ...
	}

# Authentication

The access token is taken from Config.Password, then Options.AccessToken, which NewOptions seeds from
DOCLIB_DROPBOX_ACCESS_TOKEN.  Generate one from an app created at https://www.dropbox.com/developers/apps with the
files.metadata.read, files.content.read and files.content.write scopes.  Authenticate checks the site folder exists.

# Versions

Listings report version 1.0 for every file.  The native Dropbox file id is used as the unique id and is kept across
overwrites.

# Chunked uploads

Files larger than one chunk go through an upload session, one request per chunk.  Sessions cannot be canceled; an
unfinished one expires on the Dropbox side.  The SDK calls take no context, so cancellation is only checked between
requests.
*/
package dropbox
