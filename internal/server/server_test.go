package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"io"
	"math/big"
	"net"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := map[string]struct {
		cfg      *Config
		maxConns int
		error    string
	}{
		"invalid config": {
			cfg:   &Config{Port: 70000, EnableTLS: true},
			error: "certificate is required when TLS is enabled\ninvalid port: 70000\nhandler is required",
		},
		"default max connections": {
			cfg:      &Config{Address: "127.0.0.1", Handler: NewMockhandler(ctrl)},
			maxConns: defaultMaxConnections,
		},
		"custom max connections": {
			cfg:      &Config{Address: "127.0.0.1", Handler: NewMockhandler(ctrl), MaxConnections: 3},
			maxConns: 3,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := New(tc.cfg)
			if tc.error != "" {
				req.Error(err)
				req.Nil(got)
				req.Equal(tc.error, err.Error())
				return
			}

			req.NoError(err)
			req.Equal(tc.maxConns, got.maxConnections)
			req.Equal(tc.maxConns, cap(got.connSemaphore))
			req.Nil(got.Addr())
		})
	}
}

func TestServer_Name(t *testing.T) {
	s := &Server{}
	assert.Equal(t, "LiteTable SQL Server", s.Name())
}

func TestServer_Stop_notStarted(t *testing.T) {
	s := &Server{}
	require.NoError(t, s.Stop())
}

// echo answers every connection with a fixed response and closes it.
func echo(response string) func(conn net.Conn) {
	return func(conn net.Conn) {
		buf := make([]byte, 64)
		_, _ = conn.Read(buf)
		_, _ = conn.Write([]byte(response))
		_ = conn.Close()
	}
}

func TestServer_real(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := require.New(t)

	h := NewMockhandler(ctrl)
	h.EXPECT().Handle(gomock.Any()).Do(echo("pong")).Times(2)

	s, err := New(&Config{Address: "127.0.0.1", Handler: h})
	req.NoError(err)
	req.NoError(s.Start())

	for i := 0; i < 2; i++ {
		conn, dialErr := net.Dial("tcp", s.Addr().String())
		req.NoError(dialErr)

		_, err = conn.Write([]byte("ping"))
		req.NoError(err)

		got, readErr := io.ReadAll(conn)
		req.NoError(readErr)
		req.Equal("pong", string(got))
		req.NoError(conn.Close())
	}

	req.NoError(s.Stop())

	_, err = net.DialTimeout("tcp", s.Addr().String(), time.Second)
	req.Error(err)
}

func TestServer_maxConnections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := require.New(t)

	entered := make(chan struct{})
	release := make(chan struct{})

	h := NewMockhandler(ctrl)
	h.EXPECT().Handle(gomock.Any()).Do(func(conn net.Conn) {
		close(entered)
		<-release
		_ = conn.Close()
	}).Times(1)

	s, err := New(&Config{Address: "127.0.0.1", Handler: h, MaxConnections: 1})
	req.NoError(err)
	req.NoError(s.Start())

	first, err := net.Dial("tcp", s.Addr().String())
	req.NoError(err)
	defer first.Close()
	<-entered

	// the only slot is taken: the second connection is closed without being handled
	second, err := net.Dial("tcp", s.Addr().String())
	req.NoError(err)
	defer second.Close()

	req.NoError(second.SetReadDeadline(time.Now().Add(5 * time.Second)))
	got, err := io.ReadAll(second)
	req.NoError(err)
	req.Empty(got)

	close(release)
	req.NoError(s.Stop())
}

func selfSignedCertificate(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func TestServer_TLS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	req := require.New(t)

	h := NewMockhandler(ctrl)
	h.EXPECT().Handle(gomock.Any()).Do(echo("secure")).Times(1)

	cert := selfSignedCertificate(t)
	s, err := New(&Config{
		Address:     "127.0.0.1",
		Handler:     h,
		Certificate: &cert,
		EnableTLS:   true,
	})
	req.NoError(err)
	req.NoError(s.Start())
	defer func() {
		req.NoError(s.Stop())
	}()

	conn, err := tls.Dial("tcp", s.Addr().String(), &tls.Config{InsecureSkipVerify: true})
	req.NoError(err)
	defer conn.Close()

	_, err = conn.Write([]byte("ping"))
	req.NoError(err)

	got, err := io.ReadAll(conn)
	req.NoError(err)
	req.Equal("secure", string(got))
}
