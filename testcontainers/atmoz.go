package testcontainers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/ssh"

	"github.com/c2fo/doclib"
	"github.com/c2fo/doclib/backend/sftp"
)

const (
	atmozPort     = "22/tcp"
	atmozUsername = "dummy"
	atmozPassword = "dummy"
	atmozSite     = "upload"
)

func registerAtmoz(t *testing.T) target {
	ctx := context.Background()
	is := require.New(t)

	req := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Name:       "doclib-atmoz-sftp",
			Image:      "atmoz/sftp:alpine",
			Env:        map[string]string{"SFTP_USERS": fmt.Sprintf("%s:%s:::%s", atmozUsername, atmozPassword, atmozSite)},
			WaitingFor: wait.ForListeningPort(atmozPort),
		},
		Started: true,
	}
	ctr, err := testcontainers.GenericContainer(ctx, req)
	testcontainers.CleanupContainer(t, ctr)
	is.NoError(err)

	host, err := ctr.Host(ctx)
	is.NoError(err)

	port, err := ctr.MappedPort(ctx, atmozPort)
	is.NoError(err)

	return register(target{
		name: sftp.Scheme,
		uri:  fmt.Sprintf("sftp://%s/%s/", atmozSite, library),
		provider: sftp.NewProvider(sftp.WithOptions(sftp.Options{
			KnownHostsCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		})),
		cfg: doclib.Config{
			SiteURL:  fmt.Sprintf("sftp://%s@%s:%s/", atmozUsername, host, port.Port()),
			SiteName: atmozSite,
			Library:  library,
			Username: atmozUsername,
			Password: atmozPassword,
		},
	})
}
