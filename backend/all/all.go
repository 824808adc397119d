// Package all imports all doclib backends.
package all

import (
	_ "github.com/c2fo/doclib/backend/azure"      // register azure backend
	_ "github.com/c2fo/doclib/backend/dropbox"    // register dropbox backend
	_ "github.com/c2fo/doclib/backend/ftp"        // register ftp backend
	_ "github.com/c2fo/doclib/backend/gs"         // register gs backend
	_ "github.com/c2fo/doclib/backend/mem"        // register mem backend
	_ "github.com/c2fo/doclib/backend/os"         // register os backend
	_ "github.com/c2fo/doclib/backend/s3"         // register s3 backend
	_ "github.com/c2fo/doclib/backend/sftp"       // register sftp backend
	_ "github.com/c2fo/doclib/backend/sharepoint" // register sharepoint backend
)
