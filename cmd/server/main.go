package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokobagus/config"
	"tokobagus/internal/database"
	"tokobagus/internal/logging"
	"tokobagus/internal/memstore"
	"tokobagus/internal/router"
	"tokobagus/internal/storage"
	"tokobagus/pkg/cloudinary"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	Version = "1.0.0"
	appName = "tokobagus"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var inMemory bool

	serve := func(cmd *cobra.Command, args []string) error {
		return runServer(configPath, inMemory)
	}
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Toko Bagus Waihatu storefront API",
		SilenceUsage: true,
		RunE:         serve,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serve,
	}
	serveCmd.Flags().BoolVar(&inMemory, "in-memory", false, "Keep data in process memory instead of MySQL")
	cmd.Flags().AddFlagSet(serveCmd.Flags())

	cmd.AddCommand(serveCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("database migrated")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Create the admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			created, err := database.SeedAdmin(db, &cfg.Admin)
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			log.WithField("created", created).WithField("username", cfg.Admin.Username).Info("admin account checked")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func bootstrap(configPath string) (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database: %w", err)
	}
	return cfg, log, db, nil
}

func runServer(configPath string, inMemory bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	var stores router.Stores
	if inMemory {
		mem := memstore.New()
		if err := mem.Users.Seed(cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		stores = router.MemoryStores(mem)
		log.Warn("running with in-memory storage; data is lost on exit")
	} else {
		db, err := database.NewDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if created, err := database.SeedAdmin(db, &cfg.Admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		} else if created {
			log.WithField("username", cfg.Admin.Username).Info("admin account created")
		}
		stores = router.NewStores(db)
	}

	images, err := newImageStore(&cfg.Storage)
	if err != nil {
		return err
	}

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()
	engine := router.Setup(appCtx, cfg, log, stores, images)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).WithField("env", cfg.Server.Env).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newImageStore(cfg *config.StorageConfig) (storage.ImageStore, error) {
	switch cfg.Driver {
	case "", "local":
		return storage.NewLocalStore(cfg.UploadDir, cfg.PublicPath)
	case "cloudinary":
		cloud, err := cloudinary.NewClientFromParams(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
		if err != nil {
			return nil, fmt.Errorf("cloudinary: %w", err)
		}
		return storage.NewCloudinaryStore(cloud, cfg.CloudinaryName, cfg.CloudinaryFolder), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
