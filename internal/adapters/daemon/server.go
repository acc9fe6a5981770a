package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.trai.ch/dexopt/internal/adapters/binderrpc"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const metricsReadHeaderTimeout = 5 * time.Second

var _ AdminServer = (*Server)(nil)

// ModuleForgetter drops the registrations of a module file that disappeared.
type ModuleForgetter interface {
	Forget(ctx context.Context, path string) error
}

// Server hosts the package service and the admin service on a Unix domain socket.
type Server struct {
	cfg       domain.DaemonConfig
	lifecycle *Lifecycle
	router    *binderrpc.Router
	registry  ports.ModuleRegistry
	watcher   ports.ModuleWatcher
	forgetter ModuleForgetter
	metrics   *Metrics
	logger    ports.Logger

	grpcServer   *grpc.Server
	transactions atomic.Int64
}

// NewServer creates a daemon server. The router must already publish its services.
// A nil watcher disables removal tracking.
func NewServer(
	cfg domain.DaemonConfig,
	lifecycle *Lifecycle,
	router *binderrpc.Router,
	registry ports.ModuleRegistry,
	watcher ports.ModuleWatcher,
	forgetter ModuleForgetter,
	metrics *Metrics,
	logger ports.Logger,
) *Server {
	s := &Server{
		cfg:       cfg,
		lifecycle: lifecycle,
		router:    router,
		registry:  registry,
		watcher:   watcher,
		forgetter: forgetter,
		metrics:   metrics,
		logger:    logger,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.touch))
	binderrpc.RegisterBinderServer(s.grpcServer, router)
	RegisterAdminServer(s.grpcServer, s)

	router.SetObserver(func(service string, code uint32, oneway bool, err error) {
		s.transactions.Add(1)
		if metrics != nil {
			metrics.ObserveTransaction(service, code, oneway, err)
		}
	})
	return s
}

// Serve listens on the configured socket until ctx is done or shutdown is requested.
func (s *Server) Serve(ctx context.Context) error {
	lis, err := s.listen()
	if err != nil {
		return err
	}
	defer s.cleanup()

	if err := s.writePIDFile(); err != nil {
		_ = lis.Close()
		return err
	}

	if s.watcher != nil {
		if err := s.startWatcher(ctx); err != nil {
			_ = lis.Close()
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.grpcServer.Serve(lis)
	})

	var metricsServer *http.Server
	if s.metrics != nil && s.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics.Handler())
		metricsServer = &http.Server{
			Addr:              s.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		g.Go(func() error {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return zerr.With(zerr.Wrap(err, "metrics endpoint failed"), "addr", s.cfg.MetricsAddr)
			}
			return nil
		})
	}

	if s.watcher != nil {
		g.Go(func() error {
			for event := range s.watcher.Events() {
				if err := s.forgetter.Forget(context.WithoutCancel(gctx), event.Path); err != nil {
					s.logger.Error(zerr.With(err, "path", event.Path))
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.lifecycle.ShutdownChan():
		}
		s.grpcServer.GracefulStop()
		s.router.Wait()
		if metricsServer != nil {
			_ = metricsServer.Close()
		}
		if s.watcher != nil {
			_ = s.watcher.Stop()
		}
		return nil
	})

	s.logger.Info("daemon listening on " + s.cfg.SocketPath)
	err = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Server) listen() (net.Listener, error) {
	socketPath := s.cfg.SocketPath

	if err := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create daemon directory")
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to listen on UDS"), "path", socketPath)
	}

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return nil, zerr.Wrap(err, "failed to set socket permissions")
	}
	return lis, nil
}

// startWatcher starts the watcher and puts every module registered by an earlier run under watch.
func (s *Server) startWatcher(ctx context.Context) error {
	if err := s.watcher.Start(ctx); err != nil {
		return err
	}

	modules, err := s.registry.All()
	if err != nil {
		return err
	}
	for _, m := range modules {
		if _, statErr := os.Stat(m.Path); statErr != nil {
			continue
		}
		if err := s.watcher.Watch(m.Path); err != nil {
			s.logger.Warn("cannot watch module " + m.Path + ": " + err.Error())
		}
	}
	return nil
}

func (s *Server) cleanup() {
	_ = os.Remove(s.cfg.SocketPath)
	_ = os.Remove(s.cfg.PIDPath)
}

func (s *Server) writePIDFile() error {
	if s.cfg.PIDPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.cfg.PIDPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}
	pid := fmt.Sprintf("%d", os.Getpid())
	if err := os.WriteFile(s.cfg.PIDPath, []byte(pid), domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write PID file"), "path", s.cfg.PIDPath)
	}
	return nil
}

// touch resets the inactivity timer on every call.
func (s *Server) touch(
	ctx context.Context,
	req any,
	_ *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	s.lifecycle.ResetTimer()
	return handler(ctx, req)
}

// Ping implements AdminServer.
func (s *Server) Ping(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

// Status implements AdminServer.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	modules, err := s.registry.All()
	if err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{
		fieldPID:           os.Getpid(),
		fieldUptime:        s.lifecycle.Uptime().Seconds(),
		fieldLastActivity:  s.lifecycle.LastActivity().Unix(),
		fieldIdleRemaining: s.lifecycle.IdleRemaining().Seconds(),
		fieldTransactions:  s.transactions.Load(),
		fieldModules:       len(modules),
	})
}

// Shutdown implements AdminServer.
func (s *Server) Shutdown(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.lifecycle.Shutdown()
	return &emptypb.Empty{}, nil
}
