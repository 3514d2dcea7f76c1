package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/mockswitch/pkg/admin"
	"github.com/getmockd/mockswitch/pkg/config"
	"github.com/getmockd/mockswitch/pkg/console"
	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/metrics"
	"github.com/getmockd/mockswitch/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// serveFlags holds the serve command overrides.
type serveFlags struct {
	noConsole bool
	noAdmin   bool
	addr      string
	adminAddr string
	locale    string
	logLevel  string
	logFormat string
}

var serveOpts serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock worker, admin API and console",
	Long: `Start the mock worker with the handlers that are switched on, the admin
API and the interactive console on stdin. Type 'help' in the console for the
list of commands. SIGINT, SIGTERM and the console 'quit' command stop the
server; the worker is shut down gracefully.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		serveOpts.apply(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := newServer(ctx, cfg, os.Stderr)
		if err != nil {
			return err
		}
		runErr := srv.run(ctx, os.Stdin, cmd.OutOrStdout(), !serveOpts.noConsole)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return errors.Join(runErr, srv.close(shutdownCtx))
	},
}

// apply copies flag overrides into cfg.
func (f serveFlags) apply(cfg *config.Config) {
	if f.addr != "" {
		cfg.Worker.Addr = f.addr
	}
	if f.adminAddr != "" {
		cfg.Admin.Addr = f.adminAddr
	}
	if f.noAdmin {
		cfg.Admin.Disabled = true
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
}

// server wires the controller to its storage, worker engine and surfaces.
type server struct {
	cfg     *config.Config
	log     *slog.Logger
	kv      store.KV
	metrics *metrics.Metrics
	ctrl    *controller.Controller
	api     *admin.API
}

// newServer opens storage, builds the controller and starts the worker.
// logOut receives operational logs.
func newServer(ctx context.Context, cfg *config.Config, logOut io.Writer) (*server, error) {
	log := logging.New(cfg.LoggingConfig(logOut))

	cc, err := cfg.ControllerConfig()
	if err != nil {
		return nil, err
	}

	kv, err := config.OpenStore(ctx, cfg.Storage, logging.Component(log, "store"))
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	m := metrics.New()
	eng, err := engine.NewHTTPEngine(cfg.EngineConfig(), engine.WithLogger(logging.Component(log, "engine")), engine.WithMetrics(m))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	ctrl, err := controller.New(ctx, cc, eng, kv, controller.WithLogger(logging.Component(log, "controller")), controller.WithMetrics(m))
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	if err := ctrl.Start(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}

	s := &server{cfg: cfg, log: log, kv: kv, metrics: m, ctrl: ctrl}
	if !cfg.Admin.Disabled {
		s.api = admin.New(ctrl,
			admin.WithLogger(logging.Component(log, "admin")),
			admin.WithMetrics(m),
			admin.WithVersion(buildVersion().Version),
		)
	}
	return s, nil
}

// run serves until ctx is done or the operator quits the console. The
// console reads from in and writes to out. A closed in only stops the
// console.
func (s *server) run(ctx context.Context, in io.Reader, out io.Writer, withConsole bool) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.api != nil {
		g.Go(func() error {
			if err := s.api.Run(gctx, s.cfg.Admin.Addr); err != nil {
				return fmt.Errorf("admin API: %w", err)
			}
			return nil
		})
	}
	if withConsole {
		g.Go(func() error {
			return console.Register(gctx, s.ctrl, out).Run(gctx, in)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, console.ErrQuit) {
		return err
	}
	return nil
}

// close stops the worker and releases storage.
func (s *server) close(ctx context.Context) error {
	var errs []error
	if err := s.ctrl.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stopping worker: %w", err))
	}
	if err := s.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}

func init() {
	serveCmd.Flags().BoolVar(&serveOpts.noConsole, "no-console", false, "Do not read console commands from stdin")
	serveCmd.Flags().BoolVar(&serveOpts.noAdmin, "no-admin", false, "Do not start the admin API")
	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "", "Worker listen address (overrides worker.addr)")
	serveCmd.Flags().StringVar(&serveOpts.adminAddr, "admin-addr", "", "Admin API listen address (overrides admin.addr)")
	serveCmd.Flags().StringVar(&serveOpts.locale, "locale", "", "Message locale: ko, en or silent (overrides locale)")
	serveCmd.Flags().StringVar(&serveOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&serveOpts.logFormat, "log-format", "", "Log format: text or json")
	rootCmd.AddCommand(serveCmd)
}
