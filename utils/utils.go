// Package utils holds path, host and error helpers shared by the backends.
package utils

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// regex to test whether the last character is a '/'
var hasTrailingSlash = regexp.MustCompile("/$")

// regex to test whether the first character is a '/'
var hasLeadingSlash = regexp.MustCompile("^/")

// RemoveTrailingSlash removes trailing slash, if any
func RemoveTrailingSlash(p string) string {
	return strings.TrimRight(p, "/")
}

// RemoveLeadingSlash removes leading slash, if any
func RemoveLeadingSlash(p string) string {
	return strings.TrimLeft(p, "/")
}

// EnsureTrailingSlash adds a trailing slash if needed.  Only / is ever used since these are remote paths.
func EnsureTrailingSlash(dir string) string {
	if hasTrailingSlash.MatchString(dir) {
		return dir
	}
	return dir + "/"
}

// EnsureLeadingSlash is like EnsureTrailingSlash except that it adds the leading slash if needed.
func EnsureLeadingSlash(dir string) string {
	if hasLeadingSlash.MatchString(dir) {
		return dir
	}
	return "/" + dir
}

// JoinPath joins slash-delimited path elements, skipping empty ones.  A leading slash on the first non-empty element
// is kept; the result never has a trailing slash.
//
//	JoinPath("Shared Documents", "Reports/", "a.xlsx") : Shared Documents/Reports/a.xlsx
//	JoinPath("/sites", "Finance", "")                   : /sites/Finance
func JoinPath(elems ...string) string {
	parts := make([]string, 0, len(elems))
	leading := false
	for _, e := range elems {
		if e == "" {
			continue
		}
		if len(parts) == 0 && strings.HasPrefix(e, "/") {
			leading = true
		}
		if trimmed := strings.Trim(e, "/"); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	joined := path.Clean(strings.Join(parts, "/"))
	if joined == "." {
		joined = ""
	}
	if leading {
		return EnsureLeadingSlash(joined)
	}
	return joined
}

// LibraryPath returns the library-relative folder path used for listings: {library}/{folder}
func LibraryPath(library, folder string) string {
	return JoinPath(library, folder)
}

// SitePath returns the server-relative path used for reads and writes: /sites/{site}/{library}/{folder}[/{file}]
func SitePath(siteName, library, folder string, file ...string) string {
	return JoinPath(append([]string{"/sites", siteName, library, folder}, file...)...)
}

// SplitPath splits a file path into its folder and base name.
func SplitPath(filePath string) (folder, name string) {
	clean := RemoveTrailingSlash(filePath)
	return path.Dir(clean), path.Base(clean)
}

// StableID derives a deterministic unique id for backends that have no native file id.
func StableID(scheme, authority, filePath string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(scheme+"://"+authority+EnsureLeadingSlash(filePath))).String()
}

// ResolveKey maps either path form, library-relative or server-relative, to a key below the provider root.  The
// /sites/{siteName} prefix and any leading slash are dropped, so both forms of the same folder resolve alike:
//
//	ResolveKey("Finance", "/sites/Finance/Shared Documents/Reports") : Shared Documents/Reports
//	ResolveKey("Finance", "Shared Documents/Reports")                : Shared Documents/Reports
func ResolveKey(siteName, p string) string {
	clean := JoinPath(p)
	if prefix := JoinPath("/sites", siteName); siteName != "" {
		if clean == prefix {
			return ""
		}
		clean = strings.TrimPrefix(clean, prefix+"/")
	}
	return RemoveLeadingSlash(clean)
}
