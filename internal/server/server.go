// Package server accepts statement connections over TCP, optionally with TLS, and hands each
// one to the handler.
package server

import (
	"crypto/tls"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"net"
	"sync"
)

//go:generate mockgen -destination=server_mock.go -package=server -source=server.go

const (
	serverName            = "LiteTable SQL Server"
	defaultMaxConnections = 100
)

type handler interface {
	Handle(conn net.Conn)
}

type Server struct {
	certificate *tls.Certificate
	listener    net.Listener
	address     string
	port        int
	handler     handler

	// configuration for handling connections
	maxConnections int
	connSemaphore  chan struct{}
	activeConns    sync.WaitGroup
	enableTLS      bool
	accepting      sync.WaitGroup
}

type Config struct {
	// Certificate is only required when EnableTLS is set.
	Certificate *tls.Certificate
	Address     string
	// Port 0 picks a free port.
	Port           int
	Handler        handler
	MaxConnections int
	EnableTLS      bool
}

func (c *Config) validate() error {
	var errGrp []error

	if c.EnableTLS && c.Certificate == nil {
		errGrp = append(errGrp, errors.New("certificate is required when TLS is enabled"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Handler == nil {
		errGrp = append(errGrp, errors.New("handler is required"))
	}

	return errors.Join(errGrp...)
}

// New returns a new server. It does not listen until Start is called.
func New(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = defaultMaxConnections
	}

	return &Server{
		certificate:    cfg.Certificate,
		address:        cfg.Address,
		port:           cfg.Port,
		handler:        cfg.Handler,
		maxConnections: maxConns,
		connSemaphore:  make(chan struct{}, maxConns),
		enableTLS:      cfg.EnableTLS,
	}, nil
}

// Start opens the listener and accepts connections in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.address, s.port)

	var err error
	if s.enableTLS {
		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{*s.certificate},
			MinVersion:   tls.VersionTLS12,
		}
		s.listener, err = tls.Listen("tcp", addr, tlsConfig)
	} else {
		s.listener, err = net.Listen("tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	log.Info().Bool("tls", s.enableTLS).Int("maxConnections", s.maxConnections).
		Msgf("SQL server listening at %s", s.listener.Addr())

	s.accepting.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.accepting.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Error().Err(err).Msg("accept failed, server no longer accepting connections")
			}
			return
		}
		remoteAddr := conn.RemoteAddr().String()

		// Try to acquire a connection slot
		select {
		case s.connSemaphore <- struct{}{}:
			s.activeConns.Add(1)
			go func() {
				defer func() {
					<-s.connSemaphore
					s.activeConns.Done()
				}()

				log.Debug().Str("remote", remoteAddr).Msg("handling connection")
				s.handler.Handle(conn)
			}()
		default:
			_ = conn.Close()
			log.Warn().Str("remote", remoteAddr).Msg("rejected connection: max connections reached")
		}
	}
}

// Stop will stop the server from accepting new connections and waits for active ones to finish.
func (s *Server) Stop() error {
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.accepting.Wait()
	s.activeConns.Wait()
	return err
}

// Name returns the name of the server.
func (s *Server) Name() string {
	return serverName
}

// Addr returns the listening address once the server is started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
