package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mazichukwuka/portfolio/internal/admin"
	"github.com/mazichukwuka/portfolio/internal/config"
	"github.com/mazichukwuka/portfolio/internal/contact"
	"github.com/mazichukwuka/portfolio/internal/content"
	"github.com/mazichukwuka/portfolio/internal/jobs"
	"github.com/mazichukwuka/portfolio/internal/logfields"
	"github.com/mazichukwuka/portfolio/internal/metrics"
	"github.com/mazichukwuka/portfolio/internal/router"
	"github.com/mazichukwuka/portfolio/internal/store"
	"github.com/mazichukwuka/portfolio/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the website",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		slog.SetDefault(log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on, overrides server.port")
	rootCmd.AddCommand(serveCmd)
	// Running the binary without a subcommand serves the site.
	rootCmd.RunE = serveCmd.RunE
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	var (
		rec     metrics.Recorder = metrics.NoopRecorder{}
		metricH http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		metricH = metrics.Handler(reg)
	}

	site, err := content.Open(cfg.Content.Dir, log)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	site.OnReload = func(*content.Snapshot) { rec.IncContentReload(true) }
	if cfg.Content.Watch && cfg.Content.Dir != "" {
		if err := site.Watch(ctx, content.DefaultDebounce); err != nil {
			log.Warn("Content hot reload disabled", logfields.Error(err))
		}
	}

	var db *store.Store
	if cfg.NeedsDatabase() {
		db, err = store.Open(ctx, cfg.Database.Path, log)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("Database ready", logfields.Path(cfg.Database.Path))
	}

	relay, err := buildRelay(cfg, db, log)
	if err != nil {
		return err
	}

	table := router.NewTable(router.Options{Blog: cfg.Features.Blog, NotFound: cfg.Features.NotFound})
	sessions := web.NewSessions(table, cfg.Server.SecureCookies, log, rec)
	sessions.MaxLive = cfg.Sessions.MaxLive
	sessions.UntouchedIdle = cfg.Sessions.UntouchedIdle
	defer sessions.Close()

	sched, err := jobs.NewScheduler(log, rec)
	if err != nil {
		return err
	}
	if _, err := sched.Add(ctx, jobs.SessionSweep(sessions, cfg.Sessions.IdleTimeout, cfg.Sessions.SweepInterval, log)); err != nil {
		return err
	}
	if db != nil {
		if _, err := sched.Add(ctx, jobs.Retention(db, cfg.Database.RetentionMonths, log)); err != nil {
			return err
		}
	}

	var (
		adm        *admin.Admin
		middleware []gin.HandlerFunc
	)
	if cfg.Admin.Enabled {
		if cfg.DefaultAdminPassword() {
			log.Warn("Admin password is the development default, set ADMIN_PASSWORD")
		}
		adm, err = admin.New(admin.Options{
			Username:        cfg.Admin.Username,
			Password:        cfg.Admin.Password,
			Debug:           cfg.Server.Mode == gin.DebugMode,
			SecureCookies:   cfg.Server.SecureCookies,
			RetentionJob:    jobs.RetentionJobName,
			RetentionMonths: cfg.Database.RetentionMonths,
		}, db, sched, log)
		if err != nil {
			return err
		}
		if cfg.Admin.Tracking {
			middleware = append(middleware, adm.TrackingMiddleware())
		}
	}

	health := map[string]web.Pinger{}
	if db != nil {
		health["database"] = db
	}
	srv, err := web.New(web.Options{
		Table:          table,
		Content:        site,
		Contact:        contact.NewService(relay, log),
		Sessions:       sessions,
		Recorder:       rec,
		Logger:         log,
		Middleware:     middleware,
		Health:         health,
		MetricsPath:    cfg.Metrics.Path,
		MetricsHandler: metricH,
		AssetsDir:      assetsDir(cfg.Content.Assets, log),
	})
	if err != nil {
		return err
	}
	if adm != nil {
		adm.Register(srv.Engine())
	}

	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Warn("Stopping scheduler", logfields.Error(err))
		}
	}()

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			slog.String("addr", cfg.Addr()),
			slog.String("version", Version),
			slog.Bool("blog", cfg.Features.Blog),
			slog.Bool("admin", cfg.Admin.Enabled),
			slog.String("relay", relay.Name()))
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// buildRelay combines the configured contact relays.
func buildRelay(cfg *config.Config, db *store.Store, log *slog.Logger) (contact.Relay, error) {
	var relays contact.Multi
	for _, name := range cfg.Relays() {
		switch name {
		case "log":
			relays = append(relays, contact.LogRelay{Log: log})
		case "smtp":
			s := cfg.Contact.SMTP
			relays = append(relays, &contact.SMTPRelay{Host: s.Host, Port: s.Port, User: s.User, Pass: s.Pass, To: cfg.Contact.To})
		case "store":
			if db == nil {
				return nil, errors.New("store relay needs a database")
			}
			relays = append(relays, contact.StoreRelay{Inbox: db})
		default:
			return nil, fmt.Errorf("unknown contact relay %q", name)
		}
	}
	if len(relays) == 1 {
		return relays[0], nil
	}
	return relays, nil
}

// assetsDir returns dir when it exists, so a missing directory only disables
// the /assets route.
func assetsDir(dir string, log *slog.Logger) string {
	if dir == "" {
		return ""
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		log.Warn("Assets directory not found, /assets disabled", logfields.Path(dir))
		return ""
	}
	return dir
}
