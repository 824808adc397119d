package testcontainers

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/ftp"
)

const (
	vsftpdPort     = "21/tcp"
	vsftpdUsername = "admin"
	vsftpdPassword = "dummy"
	vsftpdSite     = "site"
)

func registerVSFTPD(t *testing.T) target {
	ctx := context.Background()
	is := require.New(t)

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:         "doclib-vsftpd",
			Image:        "fauria/vsftpd:latest",
			ExposedPorts: []string{"21", "21100-21110:21100-21110"},
			Env:          map[string]string{"FTP_PASS": vsftpdPassword},
			WaitingFor:   wait.ForListeningPort(vsftpdPort),
		},
		Started: true,
	}
	ctr, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	host, err := ctr.Host(ctx)
	is.NoError(err)

	port, err := ctr.MappedPort(ctx, vsftpdPort)
	is.NoError(err)
	addr := fmt.Sprintf("%s:%s", host, port.Port())

	// the provider requires the site directory to exist
	conn, err := _ftp.Dial(addr, _ftp.DialWithContext(ctx), _ftp.DialWithTimeout(10*time.Second))
	is.NoError(err)
	is.NoError(conn.Login(vsftpdUsername, vsftpdPassword))
	is.NoError(conn.MakeDir(vsftpdSite))
	is.NoError(conn.Quit())

	return register(target{
		name:     ftp.Scheme,
		uri:      "ftp://" + vsftpdSite + "/" + library + "/",
		provider: ftp.NewProvider(),
		cfg: doclib.Config{
			SiteURL:  "ftp://" + addr + "/",
			SiteName: vsftpdSite,
			Library:  library,
			Username: vsftpdUsername,
			Password: vsftpdPassword,
		},
	})
}
