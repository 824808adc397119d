/*
Package doclibsimple builds a library client from a single URI of the form scheme://site/library/:
  - SharePoint:           sharepoint://Finance/Shared%20Documents/
  - Amazon S3:            s3://mybucket/exports/
  - Google Cloud Storage: gs://mybucket/exports/
  - Local OS:             file:///exports/

# Usage

Just import doclibsimple.

	package main

	import (
		"github.com/c2fo/doclib"
		"github.com/c2fo/doclib/doclibsimple"
	)

	...

	func DoSomething(ctx context.Context) error {
		client, err := doclibsimple.NewClient("sharepoint://Finance/Shared%20Documents/", doclib.Config{
			SiteURL:  "https://contoso.sharepoint.com",
			Username: "user@contoso.com",
			Password: os.Getenv("SHAREPOINT_PASSWORD"),
		})
		if err != nil {
			return err
		}

		name, content, err := client.DownloadLatestFile(ctx, "Reports")
		...
	}

# Authentication and Options

doclibsimple only provides the default provider of each backend, registered under its scheme.  A provider built
with options can be registered under a more specific prefix, and NewClient picks the longest registered prefix
of the URI:

	backend.Register("s3://mybucket/", s3.NewProvider(s3.WithOptions(s3.Options{Region: "us-west-2"})))

See the backend docs for specific authentication info for each backend.
*/
package doclibsimple
