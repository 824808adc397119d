/*
Package backend provides a means of allowing backend providers to self-register on load via an init() call to
backend.Register("some scheme", doclib.Provider)

In this way, a caller of doclib backends can simply load the backend provider (and ONLY those needed) and begin using it:

	package main

	// import backend and each backend you intend to use
	import(
	    "github.com/c2fo/doclib/backend"
	    _ "github.com/c2fo/doclib/backend/sharepoint"
	    "github.com/c2fo/doclib/library"
	)

	func main() {
	    client := library.New(backend.Backend("sharepoint"), cfg)

	    name, content, err := client.DownloadLatestFile(ctx, "Reports")
	    if err != nil {
	        panic(err)
	    }
	    ...
	}

# Development

To create your own backend, you must create a package that implements the interfaces doclib.Provider and
doclib.Session.  Then ensure it registers itself on load:

	package myexoticlibrary

	import(
	    ...
	    "github.com/c2fo/doclib"
	    "github.com/c2fo/doclib/backend"
	)

	// IMPLEMENT doclib interfaces
	...

	// register backend
	func init() {
	    backend.Register("exlib", &MyExoticProvider{})
	}

Providers that upload in chunks can use ReadChunks to split the local file.  The backend/testsuite package holds a
conformance suite every Session implementation should pass.
*/
package backend
