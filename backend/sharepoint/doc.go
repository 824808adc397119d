/*
Package sharepoint - SharePoint Online backend for doclib, built on the SharePoint REST API.

Requests go through an azcore pipeline: the bearer token policy fetches tokens from an azidentity credential for the
{scheme}://{host}/.default scope, and the pipeline handles retries of throttled requests.  Responses are requested in
the odata=nometadata JSON flavour and read with gjson.

# Config

	SiteURL   https://contoso.sharepoint.com (or the full site URL, https://contoso.sharepoint.com/sites/Finance)
	SiteName  Finance
	Library   Shared Documents
	Username  user@contoso.com
	Password  ...

Authenticate checks the site web, so bad credentials and unreachable sites surface as
doclib.ErrAuthentication before any other call is made.

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/sharepoint"
	)

	func UseProvider() {
	    p := backend.Backend(sharepoint.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/sharepoint"

	func DoSomething() {
	    p := sharepoint.NewProvider(
	        sharepoint.WithOptions(sharepoint.Options{
	            TenantID: "contoso.onmicrosoft.com",
	            ClientID: "00000000-0000-0000-0000-000000000000",
	        }),
	    )
	    ...
	}

# Authentication

With Options.ClientSecret set, an app-only azidentity.ClientSecretCredential is used.  Otherwise the Config
Username/Password pair is exchanged through azidentity.UsernamePasswordCredential, which requires an app registration
(Options.ClientID) that allows public client flows.  NewOptions reads the options from SHAREPOINT_TENANT_ID,
SHAREPOINT_CLIENT_ID and SHAREPOINT_CLIENT_SECRET.

To pass a credential of your own, for instance in tests:

	p := sharepoint.NewProvider(sharepoint.WithCredential(myTokenCredential))

# Chunked uploads

Files that fit in one chunk are added in a single request.  Larger files go through
StartUpload/ContinueUpload/FinishUpload; a failed chunk cancels the upload session.
*/
package sharepoint
