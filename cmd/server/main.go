// matchahire marketplace service
//
// Serves the hiring marketplace core:
//   - role catalog with facets, filters and pagination (REST + gRPC)
//   - company and role creation, directly or through server-side wizards
//   - file uploads for logos and resumes
//   - candidate applications and their pipeline stages
//
// Publishes EVENT_APPLICATION_MOVED to Redis on every stage change.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"matchahire/marketplace/internal/applications"
	"matchahire/marketplace/internal/cache"
	"matchahire/marketplace/internal/companies"
	"matchahire/marketplace/internal/config"
	"matchahire/marketplace/internal/db"
	"matchahire/marketplace/internal/grpcserver"
	"matchahire/marketplace/internal/httpapi"
	"matchahire/marketplace/internal/scheduler"
	"matchahire/marketplace/internal/store"
	"matchahire/marketplace/internal/wizard"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[marketplace] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[marketplace] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("[marketplace] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[marketplace] PostgreSQL connected ✓")

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("[marketplace] Migrations: %v", err)
		}
		log.Println("[marketplace] Migrations applied ✓")
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[marketplace] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[marketplace] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[marketplace] Redis connected ✓")

	// ── Services ─────────────────────────────────────────────────────────────
	st := store.New(pool)
	files := store.NewFiles(pool, cfg.PublicBaseURL)
	roles := cache.NewRoles(st, cache.NewRedisKV(rdb), cfg.RolesCacheTTL)
	comps := companies.NewService(st)
	apps := applications.NewService(st, roles, files, applications.NewRedisPublisher(rdb))
	sessions := wizard.NewSessions(cfg.WizardSessionTTL)

	sched := scheduler.New(roles, sessions, cfg.CacheRefreshSpec, cfg.SessionSweepSpec)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[marketplace] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	router := httpapi.NewRouter(httpapi.Deps{
		Roles:          roles,
		RoleReader:     st,
		Companies:      comps,
		Applications:   apps,
		Files:          files,
		Sessions:       sessions,
		PageSize:       cfg.RolesPageSize,
		UploadMaxBytes: cfg.UploadMaxBytes,
		UploadLimiter:  httpapi.NewKeyedLimiter(cfg.UploadRatePerSec, cfg.UploadBurst),
		AllowedOrigins: cfg.AllowedOrigins,
		Version:        version,
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// ── gRPC server ──────────────────────────────────────────────────────────
	gsrv := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryLogger))
	grpcserver.Register(gsrv, grpcserver.NewServer(roles, apps, cfg.RolesPageSize))
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatalf("[marketplace] gRPC listen: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[marketplace] v%s HTTP listening on :%s", version, cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Printf("[marketplace] gRPC listening on :%s", cfg.GRPCPort)
		if err := gsrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})

	// ── Graceful shutdown ────────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[marketplace] Shutting down…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[marketplace] HTTP shutdown error: %v", err)
		}
		gsrv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[marketplace] Server error: %v", err)
	}
	log.Println("[marketplace] Stopped.")
}
