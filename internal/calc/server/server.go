package server

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"

	mdwerror "github.com/msto63/exact/foundation/core/error"
	"github.com/msto63/exact/internal/calc/service"
	coreGrpc "github.com/msto63/exact/pkg/core/grpc"
	"github.com/msto63/exact/pkg/core/health"
	"github.com/msto63/exact/pkg/core/logging"
	"github.com/msto63/exact/pkg/core/version"
)

// Server is the calc gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	// Service is used when Service is nil
	ServiceConfig service.Config
	// Service shares an existing calc service, e.g. with the HTTP gateway
	Service *service.Service
	Logger  *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host: "0.0.0.0",
		Port: 9300,
	}
}

// New creates a new calc server
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("calc-server")
	}

	svc := cfg.Service
	if svc == nil {
		var err error
		svc, err = service.NewService(cfg.ServiceConfig)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to create service").
				WithCode(mdwerror.CodeServiceInitialization).
				WithOperation("server.New")
		}
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcCfg.Logger = logger

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("calc", version.Calc)
	healthRegistry.Register(health.CheckFunc("selftest", svc.SelfTest))

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterCalcServer(grpcServer.GRPCServer(), server)

	return server, nil
}

// Start publishes the health state and serves on the configured address
func (s *Server) Start() error {
	s.logger.Info("Starting calc server", "host", s.config.Host, "port", s.config.Port)
	s.PublishHealth(context.Background())
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting calc server (async)", "host", s.config.Host, "port", s.config.Port)
	s.PublishHealth(context.Background())
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.PublishHealth(context.Background())
	return s.grpc.Serve(listener)
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping calc server", "uptime", s.Uptime().String())
	s.grpc.StopWithTimeout(ctx)
}

// PublishHealth runs the health checks and reports them over grpc.health.v1
func (s *Server) PublishHealth(ctx context.Context) *health.Report {
	report := s.grpc.PublishHealth(ctx, CalcServiceName, s.health)
	if report.Status != health.StatusHealthy {
		s.logger.Warn("Calc service unhealthy", "status", string(report.Status))
	}
	return report
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Service returns the calc service
func (s *Server) Service() *service.Service {
	return s.service
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// Uptime returns how long the server has existed
func (s *Server) Uptime() time.Duration {
	return time.Since(s.startTime)
}
