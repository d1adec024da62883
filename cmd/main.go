package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-fees/internal/clients"
	"library-fees/internal/config"
	"library-fees/internal/fees"
	"library-fees/internal/repository"
	"library-fees/internal/service"
	"library-fees/internal/transport/rest"
	"library-fees/internal/transport/websocket"
	"library-fees/pkg/database/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env or defaults")
	}

	// top-level context which we can cancel on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := config.Load()

	policy, err := cfg.Fees.Policy()
	if err != nil {
		log.Fatalf("fee policy error: %v", err)
	}
	engine, err := fees.NewEngine(policy)
	if err != nil {
		log.Fatalf("fee engine error: %v", err)
	}

	db := mustInitPostgres(ctx, cfg.Postgres)
	defer postgres.Close(db)

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	redisClient := mustInitRedis(cfg.Redis)
	defer redisClient.Close()

	localStorage, fileStore := mustInitStorage(ctx, cfg)

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)
	wsClient := clients.NewWebSocketClient(wsHub)

	loanRepo := repository.NewLoanRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	seedRepo := repository.NewSeedRepository(db)

	feeSvc := service.NewFeeService(loanRepo, engine)
	loanSvc := service.NewLoanService(loanRepo, memberRepo)
	inventorySvc := service.NewInventoryService(materialRepo)
	exportSvc := service.NewExportService(materialRepo, redisClient, fileStore, wsClient)
	seedSvc := service.NewSeedService(seedRepo)

	handler := rest.NewHandler(feeSvc, loanSvc, inventorySvc, exportSvc, seedSvc)
	router := handler.InitRouter()

	root := chi.NewRouter()

	// legacy UI
	root.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.PublicDir))))

	// generated files, only when exports are kept on local disk
	if localStorage != nil {
		root.Get(localStorage.PublicPrefix+"/{file}", func(w http.ResponseWriter, r *http.Request) {
			file := chi.URLParam(r, "file")
			path, err := localStorage.Open(file)
			if err != nil {
				if os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
				http.Error(w, "failed to access file", http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", clients.OriginalName(file)))
			http.ServeFile(w, r, path)
		})
	}

	root.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")
		if topic == "" {
			topic = websocket.TopicExports
		}

		log.Printf("[WS] connected: topic=%s", topic)
		wsHub.HandleWebSocket(w, r, topic)
	})

	root.Mount("/", router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withCORS(root),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	// delete local exports older than 30 minutes
	if localStorage != nil {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := localStorage.CleanupOlderThan(30 * time.Minute); err != nil {
						log.Printf("[STORAGE] cleanup error: %v", err)
					}
				}
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-srvErr:
		if err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	case sig := <-stop:
		log.Printf("shutdown signal received: %v", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server Shutdown error: %v", err)
		}

		// stops the websocket hub and the cleaner
		cancel()

		log.Println("shutdown complete")
	}
}

func mustInitPostgres(ctx context.Context, cfg config.PostgresConfig) *sqlx.DB {
	db, err := postgres.NewPostgresConnection(ctx, postgres.ConnectionInfo{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.User,
		DBName:   cfg.DBName,
		SSLMode:  cfg.SSLMode,
		Password: cfg.Password,

		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		log.Fatalf("postgres init error: %v", err)
	}
	return db
}

func mustInitRedis(cfg config.RedisConfig) *clients.RedisClient {
	client, err := clients.NewRedisClient(clients.RedisConfig{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: time.Duration(cfg.DialTimeout) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Prefix:      cfg.Prefix,
	})
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}
	return client
}

// mustInitStorage returns the local storage as well when the driver is "local",
// so its files can be served and cleaned up.
func mustInitStorage(ctx context.Context, cfg config.AppConfig) (*clients.LocalStorage, service.FileStore) {
	switch cfg.Storage.Driver {
	case "s3":
		s3Client, err := clients.NewS3Client(ctx, clients.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
		})
		if err != nil {
			log.Fatalf("s3 init error: %v", err)
		}
		log.Printf("[STORAGE] exports go to s3 bucket %q", cfg.S3.Bucket)
		return nil, s3Client
	case "local", "":
		local, err := clients.NewLocalStorage(cfg.Storage.ExportDir, cfg.Storage.PublicPrefix, cfg.Storage.ExternalURL)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		log.Printf("[STORAGE] exports go to %s", local.BaseDir)
		return local, local
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
		return nil, nil
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
