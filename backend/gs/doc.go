/*
Package gs - Google Cloud Storage doclib backend.

Each site is a bucket.  Object names are the library paths, so /sites/{bucket}/Shared Documents/a.csv and
Shared Documents/a.csv both address the object "Shared Documents/a.csv".

# Config

	SiteURL   optional endpoint, ie: a fake-gcs-server
	SiteName  bucket name
	Library   object prefix of the library

Config.Username and Config.Password are not used; credentials come from Options or the environment.

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/gs"
	)

	func UseProvider() {
	    p := backend.Backend(gs.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/gs"

	func DoSomething() {
	    p := gs.NewProvider(
	        gs.WithOptions(gs.Options{
	            CredentialFile: "/root/.gcloud/account.json",
	            Scopes:         []string{"ScopeReadOnly"},
	            //default scope is "ScopeFullControl"
	        }),
	    )

	    // to pass specific client, for instance no-auth client
	    client, _ := storage.NewClient(ctx, option.WithoutAuthentication())
	    p = gs.NewProvider(gs.WithClient(client))
	}

# Authentication

Authentication occurs on Authenticate, which also reads the bucket attributes. Without Options it looks for
credentials in the following places, preferring the first location found:

 1. A JSON file whose path is specified by the GOOGLE_APPLICATION_CREDENTIALS environment variable
 2. A JSON file in a location known to the gcloud command-line tool.
    On Windows, this is %APPDATA%/gcloud/application_default_credentials.json.
    On other systems, $HOME/.config/gcloud/application_default_credentials.json.
 3. On Google Compute Engine it fetches credentials from the metadata server.

See https://cloud.google.com/docs/authentication/production for more auth info

# See Also

See: https://github.com/googleapis/google-cloud-go/tree/master/storage
*/
package gs
