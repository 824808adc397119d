/*
Package os - local disk backend for doclib.

The site root is the directory named by Config.SiteURL, written either as a plain path or as a file:// URI.  Keys
resolved from both path forms (see utils.ResolveKey) are joined below it, so

	/sites/Finance/Shared Documents/Reports/a.xlsx

lives at {SiteURL}/Shared Documents/Reports/a.xlsx.  Authenticate fails with doclib.ErrAuthentication when the root
is not an existing directory.

Local disks keep no versions or creation times: every record reports major version 1, minor version 0 and uses the
modification time as the creation time.  Unique ids are derived from the absolute path, so they survive overwrites
but not renames.  Site lists are not supported.

Writes go to a temporary file that is renamed over the target, so readers never see a partial file.

# Usage

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/os"
	)

	func UseProvider() {
	    p := backend.Backend(os.Scheme)
	    ...
	}

Or call directly with a custom staging directory for temporary files:

	p := os.NewProvider(os.WithTempDir("/var/tmp/doclib"))
*/
package os
