// Package cdc streams inserted rows to subscribers over gRPC.
package cdc

import (
	"context"
	"errors"
	"fmt"
	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"net"
	"sync"
)

//go:generate mockgen -destination=server_mock.go -package=cdc -source=server.go

const (
	defaultBufferSize = 1000
)

// eventSender is the part of v1.CDCService_CDCStreamServer the dispatcher needs.
type eventSender interface {
	Send(event *v1.CDCEvent) error
}

type Server struct {
	v1.UnimplementedCDCServiceServer
	address string
	port    int

	streams   map[string]eventSender
	streamMux sync.Mutex

	server   *grpc.Server
	health   *health.Server
	listener net.Listener

	events     chan *Event
	procCtx    context.Context
	procCancel context.CancelFunc
}

type Config struct {
	Address string
	// Port 0 picks a free port.
	Port       int
	BufferSize int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, errors.New("address is required"))
	}
	if c.Port < 0 || c.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.BufferSize < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid buffer size: %d", c.BufferSize))
	}
	return errors.Join(errGrp...)
}

// New creates the CDC gRPC server. The gRPC health service and reflection are registered on
// the same server.
func New(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bufferSize := cfg.BufferSize
	if bufferSize == 0 {
		bufferSize = defaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		address:    cfg.Address,
		port:       cfg.Port,
		streams:    make(map[string]eventSender),
		health:     health.NewServer(),
		events:     make(chan *Event, bufferSize),
		procCtx:    ctx,
		procCancel: cancel,
	}

	srv := grpc.NewServer()
	v1.RegisterCDCServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)
	s.server = srv

	return s, nil
}

// CDCStream registers the caller as a subscriber until its stream ends.
func (s *Server) CDCStream(req *v1.CDCSubscriptionRequest, stream v1.CDCService_CDCStreamServer) error {
	clientID := req.GetClientId()
	if clientID == "" {
		return errors.New("client id is required")
	}
	if req.GetReplay() {
		log.Warn().Str("client", clientID).Msg("CDC replay is not supported, streaming live events only")
	}

	s.register(clientID, stream)
	defer s.unregister(clientID)

	log.Info().Str("client", clientID).Msg("CDC subscriber connected")
	select {
	case <-stream.Context().Done():
	case <-s.procCtx.Done():
	}
	log.Info().Str("client", clientID).Msg("CDC subscriber disconnected")
	return nil
}

func (s *Server) register(clientID string, stream eventSender) {
	s.streamMux.Lock()
	defer s.streamMux.Unlock()
	s.streams[clientID] = stream
}

func (s *Server) unregister(clientID string) {
	s.streamMux.Lock()
	defer s.streamMux.Unlock()
	delete(s.streams, clientID)
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}
	s.listener = lis

	log.Info().Msgf("CDC gRPC server listening at %s", lis.Addr())

	go s.dispatchLoop()

	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Error().Err(err).Msg("CDC gRPC server failed")
		}
	}()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

func (s *Server) Stop() error {
	s.health.Shutdown()
	s.procCancel()
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "CDC Stream"
}

// Addr returns the listening address once the server is started.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
