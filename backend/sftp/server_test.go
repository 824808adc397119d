package sftp

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	_sftp "github.com/pkg/sftp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// testServer is an SSH server on localhost that serves the sftp subsystem from an in-memory filesystem.  It accepts
// the given password, and the public key set with authorize.
type testServer struct {
	addr       string
	hostKey    ssh.PublicKey
	handlers   _sftp.Handlers
	listener   net.Listener
	authorized atomic.Pointer[ssh.PublicKey]
}

func newTestServer(t *testing.T, user, password string, dirs ...string) *testServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == user && string(pass) == password {
				return nil, nil
			}
			return nil, errors.New("password rejected")
		},
	}
	config.AddHostKey(signer)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	srv := &testServer{
		addr:     l.Addr().String(),
		hostKey:  signer.PublicKey(),
		handlers: _sftp.InMemHandler(),
		listener: l,
	}
	config.PublicKeyCallback = func(c ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
		if allowed := srv.authorized.Load(); allowed != nil && c.User() == user &&
			bytes.Equal((*allowed).Marshal(), key.Marshal()) {
			return nil, nil
		}
		return nil, errors.New("public key rejected")
	}
	go srv.serve(config)

	if len(dirs) > 0 {
		client := srv.pipeClient(t)
		for _, dir := range dirs {
			require.NoError(t, client.MkdirAll(dir))
		}
	}
	return srv
}

func (s *testServer) serve(config *ssh.ServerConfig) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn, config)
	}
}

func (s *testServer) handle(conn net.Conn, config *ssh.ServerConfig) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		_ = conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			_ = newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}
		go func() {
			for req := range requests {
				// subsystem payload is a length-prefixed name
				ok := req.Type == "subsystem" && len(req.Payload) > 4 && string(req.Payload[4:]) == "sftp"
				_ = req.Reply(ok, nil)
				if ok {
					server := _sftp.NewRequestServer(channel, s.handlers)
					go func() {
						_ = server.Serve()
						_ = server.Close()
					}()
				}
			}
		}()
	}
}

// pipeClient returns a client talking to the server filesystem over an in-process pipe, without SSH.
func (s *testServer) pipeClient(t *testing.T) *_sftp.Client {
	t.Helper()

	c1, c2 := net.Pipe()
	server := _sftp.NewRequestServer(c1, s.handlers)
	go func() { _ = server.Serve() }()

	client, err := _sftp.NewClientPipe(c2, c2)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	return client
}

// authorize lets the server's user log in with key.
func (s *testServer) authorize(key ssh.PublicKey) {
	s.authorized.Store(&key)
}

func (s *testServer) siteURL(user string) string {
	return "sftp://" + user + "@" + s.addr + "/srv"
}
