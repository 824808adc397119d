/*
Package mem - in-memory backend for doclib.

A mem Provider keeps every site in memory, keyed by Config.SiteName, for the life of the Provider.  It is meant for
tests and local experiments: it versions files like SharePoint does (every overwrite bumps the major version) and,
unlike the object-store backends, supports site lists.

# Usage

Rely on github.com/c2fo/doclib/backend

	import(
	    "github.com/c2fo/doclib/backend"
	    "github.com/c2fo/doclib/backend/mem"
	)

	func UseProvider() {
	    p := backend.Backend(mem.Scheme)
	    ...
	}

Or call directly:

	import "github.com/c2fo/doclib/backend/mem"

	func DoSomething() {
	    p := mem.NewProvider(
	        mem.WithOptions(mem.Options{Username: "user", Password: "secret"}),
	        mem.WithClock(func() time.Time { return fixed }),
	    )
	    p.PutList("Finance", "Funds", []doclib.ListItem{{ID: "1", Title: "Alpha"}})
	    ...
	}

When Options carries a Username, Authenticate rejects any other credential pair with doclib.ErrAuthentication.

# Paths

Both path forms resolve to the same key (see utils.ResolveKey).  Folders are implicit: a folder exists as long as a
file lives in it, and listing a folder without files returns no records.
*/
package mem
