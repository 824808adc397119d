package sftp

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	_sftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/c2fo/doclib"
)

const (
	systemWideKnownHosts = "/etc/ssh/ssh_known_hosts"
	defaultPort          = 22

	envPassword           = "DOCLIB_SFTP_PASSWORD"
	envKeyFile            = "DOCLIB_SFTP_KEYFILE"
	envKeyFilePassphrase  = "DOCLIB_SFTP_KEYFILE_PASSPHRASE"
	envKnownHostsFile     = "DOCLIB_SFTP_KNOWN_HOSTS_FILE"
	envInsecureKnownHosts = "DOCLIB_SFTP_INSECURE_KNOWN_HOSTS"
)

// Options holds sftp-specific options.
type Options struct {
	Password           string              `json:"password,omitempty"`       // env var DOCLIB_SFTP_PASSWORD
	KeyFilePath        string              `json:"keyFilePath,omitempty"`    // env var DOCLIB_SFTP_KEYFILE
	KeyPassphrase      string              `json:"keyPassphrase,omitempty"`  // env var DOCLIB_SFTP_KEYFILE_PASSPHRASE
	KnownHostsFile     string              `json:"knownHostsFile,omitempty"` // env var DOCLIB_SFTP_KNOWN_HOSTS_FILE
	KnownHostsString   string              `json:"knownHostsString,omitempty"`
	KnownHostsCallback ssh.HostKeyCallback `json:"-"` // env var DOCLIB_SFTP_INSECURE_KNOWN_HOSTS
	HostKeyAlgorithms  []string            `json:"hostKeyAlgorithms,omitempty"`
	Ciphers            []string            `json:"ciphers,omitempty"`
	MACs               []string            `json:"macs,omitempty"`
	KeyExchanges       []string            `json:"keyExchanges,omitempty"`
	// ConnectTimeout bounds the TCP dial and SSH handshake.  Zero means no timeout beyond ctx.
	ConnectTimeout time.Duration `json:"connectTimeout,omitempty"`
	// FilePermissions, ie "0644", is applied to every written file.  Nil leaves the server default.
	FilePermissions *string `json:"filePermissions,omitempty"`
}

var defaultSSHConfig = &ssh.ClientConfig{
	HostKeyAlgorithms: []string{
		ssh.KeyAlgoED25519,
		ssh.KeyAlgoECDSA256,
		ssh.KeyAlgoRSASHA512,
		ssh.KeyAlgoRSASHA256,
	},
	Config: ssh.Config{
		Ciphers:      []string{"aes128-gcm@openssh.com", "chacha20-poly1305@openssh.com", "aes256-ctr", "aes128-ctr"},
		MACs:         []string{"hmac-sha2-256-etm@openssh.com", "hmac-sha2-256"},
		KeyExchanges: []string{"curve25519-sha256", "ecdh-sha2-nistp256", "diffie-hellman-group14-sha256"},
	},
}

// merge returns opts with the Config password applied.  The username comes from Config or the site URL, never Options.
func (o Options) merge(cfg doclib.Config) Options {
	if cfg.Password != "" {
		o.Password = cfg.Password
	}
	return o
}

// GetFileMode parses FilePermissions.  Octal strings need a leading 0, "0644"; anything else is read as decimal.
func (o *Options) GetFileMode() (*os.FileMode, error) {
	if o.FilePermissions == nil {
		return nil, nil
	}
	value, err := strconv.ParseUint(*o.FilePermissions, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid file permissions %q: %w", *o.FilePermissions, err)
	}
	mode := os.FileMode(value)
	return &mode, nil
}

// getSSHConfig returns the algorithm settings of opts on top of defaultSSHConfig.
func getSSHConfig(opts Options) *ssh.ClientConfig {
	cfg := &ssh.ClientConfig{
		HostKeyAlgorithms: defaultSSHConfig.HostKeyAlgorithms,
		Config:            defaultSSHConfig.Config,
	}
	if len(opts.HostKeyAlgorithms) > 0 {
		cfg.HostKeyAlgorithms = opts.HostKeyAlgorithms
	}
	if len(opts.Ciphers) > 0 {
		cfg.Ciphers = opts.Ciphers
	}
	if len(opts.MACs) > 0 {
		cfg.MACs = opts.MACs
	}
	if len(opts.KeyExchanges) > 0 {
		cfg.KeyExchanges = opts.KeyExchanges
	}
	return cfg
}

// Note that OPENSSH private key format is not supported when encrypted with a passphrase.
// To force creation of PEM format (instead of OPENSSH format), use ssh-keygen -m PEM

// getClient dials addr and opens an sftp client over the ssh connection.  The ssh client is returned so the caller can
// close it along with the sftp client.
func getClient(ctx context.Context, addr, user string, opts Options) (*ssh.Client, *_sftp.Client, error) {
	authMethods, err := getAuthMethods(opts)
	if err != nil {
		return nil, nil, err
	}

	hostKeyCallback, err := getHostKeyCallback(opts)
	if err != nil {
		return nil, nil, err
	}

	config := getSSHConfig(opts)
	config.User = user
	config.Auth = authMethods
	config.HostKeyCallback = hostKeyCallback
	config.Timeout = opts.ConnectTimeout

	dialer := &net.Dialer{Timeout: opts.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	sshClient := ssh.NewClient(c, chans, reqs)

	client, err := _sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, err
	}

	return sshClient, client, nil
}

// getHostKeyCallback gets host key callback for all known_hosts files
func getHostKeyCallback(opts Options) (ssh.HostKeyCallback, error) {
	var knownHostsFiles []string
	switch {
	// use explicit callback in Options
	case opts.KnownHostsCallback != nil:
		return opts.KnownHostsCallback, nil

	case opts.KnownHostsString != "":
		_, _, hostKey, _, _, err := ssh.ParseKnownHosts([]byte(opts.KnownHostsString))
		if err != nil {
			return nil, err
		}
		return ssh.FixedHostKey(hostKey), nil

	// use explicit known_hosts file path, ie, /home/bob/.ssh/known_hosts
	case opts.KnownHostsFile != "":
		// check first to prevent auto-vivification of file
		found, err := foundFile(opts.KnownHostsFile)
		if err != nil {
			return nil, err
		}
		if found {
			knownHostsFiles = append(knownHostsFiles, opts.KnownHostsFile)
			break
		}
		fallthrough

	case os.Getenv(envKnownHostsFile) != "":
		found, err := foundFile(os.Getenv(envKnownHostsFile))
		if err != nil {
			return nil, err
		}
		if found {
			knownHostsFiles = append(knownHostsFiles, os.Getenv(envKnownHostsFile))
			break
		}
		fallthrough

	case os.Getenv(envInsecureKnownHosts) != "":
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // opted into through the environment

	// use user/system-wide known_hosts paths (as defined by OpenSSH https://man.openbsd.org/ssh)
	default:
		var err error
		knownHostsFiles, err = findHomeSystemKnownHosts(knownHostsFiles)
		if err != nil {
			return nil, err
		}
	}

	return knownhosts.New(knownHostsFiles...)
}

func findHomeSystemKnownHosts(knownHostsFiles []string) ([]string, error) {
	// add ~/.ssh/known_hosts
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	homeKnownHostsPath := filepath.Join(home, ".ssh", "known_hosts")

	found, err := foundFile(homeKnownHostsPath)
	if err != nil {
		return nil, err
	}
	if found {
		knownHostsFiles = append(knownHostsFiles, homeKnownHostsPath)
	}

	// SSH doesn't exist natively on Windows and each implementation has a different location for known_hosts.
	if runtime.GOOS != "windows" {
		found, err := foundFile(systemWideKnownHosts)
		if err != nil {
			return nil, err
		}
		if found {
			knownHostsFiles = append(knownHostsFiles, systemWideKnownHosts)
		}
	}
	return knownHostsFiles, nil
}

func foundFile(file string) (bool, error) {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func getAuthMethods(opts Options) ([]ssh.AuthMethod, error) {
	auth := make([]ssh.AuthMethod, 0)

	// explicitly set password from opts, then from env if any
	pw := os.Getenv(envPassword)
	if opts.Password != "" {
		pw = opts.Password
	}
	if pw != "" {
		auth = append(auth, ssh.Password(pw))
	}

	keyfile := os.Getenv(envKeyFile)
	if opts.KeyFilePath != "" {
		keyfile = opts.KeyFilePath
	}
	if keyfile != "" {
		passphrase := os.Getenv(envKeyFilePassphrase)
		if opts.KeyPassphrase != "" {
			passphrase = opts.KeyPassphrase
		}

		secretKey, err := getKeyFile(keyfile, passphrase)
		if err != nil {
			return nil, err
		}
		auth = append(auth, ssh.PublicKeys(secretKey))
	}

	return auth, nil
}

func getKeyFile(file, passphrase string) (ssh.Signer, error) {
	buf, err := os.ReadFile(file) //nolint:gosec
	if err != nil {
		return nil, err
	}
	if passphrase != "" {
		return ssh.ParsePrivateKeyWithPassphrase(buf, []byte(passphrase))
	}
	return ssh.ParsePrivateKey(buf)
}
