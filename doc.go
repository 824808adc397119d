/*
Package doclib provides a platform-independent, generalized way of reading and writing the files of a remote document
library, regardless of whether that library is a SharePoint site, an S3 bucket or an SFTP server.

Philosophy

Most of our reporting jobs started life as scripts that talked to one specific SharePoint site: log in, list a folder,
pull the newest spreadsheet, push a result file back.  Every script carried its own copy of the login code and its own
idea of what "the newest file" meant.  When some of those folders moved to S3 and Azure, the scripts forked again.

What we needed was:
  * one small interface (Provider/Session) that every remote library can satisfy
  * a canonical file record (FileRef) so selection logic doesn't care where a file came from
  * explicit configuration (Config) rather than process-wide environment lookups buried in a client
  * mockable providers so selection and parsing can be tested without a network

Usage

Backends register themselves with the backend package on import.  The library package wraps a Provider with the
operations most jobs need:

  import (
      "github.com/c2fo/doclib"
      "github.com/c2fo/doclib/backend/sharepoint"
      "github.com/c2fo/doclib/library"
  )

  cfg := doclib.Config{
      SiteURL:  "https://contoso.sharepoint.com/sites/Finance",
      SiteName: "Finance",
      Library:  "Shared Documents",
      Username: "robot@contoso.com",
      Password: "...",
  }
  client := library.New(sharepoint.NewProvider(), cfg)

  name, content, err := client.DownloadLatestFile(ctx, "Reports/Daily")

or, when the backend is only known at runtime, use doclibsimple:

  client, err := doclibsimple.NewClient("s3://my-bucket/reports/", cfg)

Errors

Every failure propagates to the caller.  Use errors.Is against the Error constants (ErrNotFound, ErrAuthentication,
ErrMalformedRecord, ErrEmptyInput, ErrFormat) to classify them; the provider's own error remains reachable with
errors.As.
*/
package doclib
