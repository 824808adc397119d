package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

/*
   URI parlance (see https://www.rfc-editor.org/rfc/rfc3986.html#section-3.2):

       sftp://robot@files.example.com:2222/reports
       \__/   \_______________________/\______/
        |               |                 |
     scheme         authority           path

   Where:
     authority   = [ userinfo "@" ] host [ ":" port ]
*/

// Authority represents host, port and username of a site URL
type Authority struct {
	host string
	port uint16
	user string
	path string
}

// Host returns the host portion of an authority
func (a Authority) Host() string {
	return a.host
}

// Port returns the port portion of an authority.  Zero when the site URL carried no port.
func (a Authority) Port() uint16 {
	return a.port
}

// User returns the username embedded in the site URL, if any.
func (a Authority) User() string {
	return a.user
}

// Path returns the path portion of the site URL, without trailing slash.
func (a Authority) Path() string {
	return a.path
}

// HostPortStr returns host and port separated by a colon, substituting defaultPort when no port was given,
// ie "host.com:22"
func (a Authority) HostPortStr(defaultPort uint16) string {
	port := a.port
	if port == 0 {
		port = defaultPort
	}
	if port == 0 {
		return a.host
	}
	return fmt.Sprintf("%s:%d", a.host, port)
}

// String returns a string representation of authority.  It never includes a password.
func (a Authority) String() string {
	authority := a.HostPortStr(0)
	if a.user != "" {
		authority = fmt.Sprintf("%s@%s", a.user, authority)
	}
	return authority
}

var schemeRE = regexp.MustCompile("^[A-Za-z][A-Za-z0-9+.-]*://")

// NewAuthority parses a site URL such as "sftp://user@host:2222/root" or a bare "host:21".
func NewAuthority(siteURL string) (Authority, error) {
	if siteURL == "" {
		return Authority{}, errors.New("authority string may not be empty")
	}

	if !schemeRE.MatchString(siteURL) {
		siteURL = "scheme://" + siteURL
	}

	u, err := url.Parse(siteURL)
	if err != nil {
		return Authority{}, err
	}

	var port uint16
	if portStr := u.Port(); portStr != "" {
		val, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return Authority{}, err
		}
		port = uint16(val)
	}

	return Authority{
		host: u.Hostname(),
		port: port,
		user: u.User.Username(),
		path: strings.TrimRight(u.Path, "/"),
	}, nil
}
