/*
Package library is the entry point most callers want.  A Client binds a doclib.Provider to a doclib.Config and exposes
the document-library operations: listing, downloads, uploads, site lists, file properties and the selection helpers.

# Usage

	import (
	    "github.com/c2fo/doclib"
	    "github.com/c2fo/doclib/backend/sharepoint"
	    "github.com/c2fo/doclib/library"
	)

	func LatestReport(ctx context.Context) ([]byte, error) {
	    client := library.New(sharepoint.NewProvider(), doclib.Config{
	        SiteURL:  "https://contoso.sharepoint.com",
	        SiteName: "Finance",
	        Library:  "Shared Documents",
	        Username: os.Getenv("SHAREPOINT_EMAIL"),
	        Password: os.Getenv("SHAREPOINT_PASSWORD"),
	    })
	    _, content, err := client.DownloadLatestFile(ctx, "Reports")
	    return content, err
	}

A Client is immutable after New and safe for concurrent use.  Every operation authenticates its own Session and closes
it before returning; nothing is shared between calls.

# Paths

Listings are addressed relative to the library ({Library}/{folder}).  Reads and writes use server-relative paths
(/sites/{SiteName}/{Library}/{folder}/{file}).  Providers other than SharePoint treat both forms as keys below their
root; see the backend docs.

# Options

	client := library.New(provider, cfg,
	    library.WithLogger(logging.GetLogger("library")),
	    library.WithMetrics(prometheus.DefaultRegisterer),
	)
*/
package library
