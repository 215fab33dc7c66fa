package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tokobagus/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	Env          string        `yaml:"env"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	// MaxPageSize caps the limit query parameter of paginated listings.
	MaxPageSize int `yaml:"max_page_size"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DSN builds a go-sql-driver/mysql DSN. clientFoundRows makes UPDATE report
// matched rows, so re-saving identical values is not mistaken for a missing row.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
	Issuer string        `yaml:"issuer"`
}

// AdminConfig is the credential seeded into the users table on startup.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"` // local | cloudinary
	UploadDir string `yaml:"upload_dir"`
	// PublicPath is the URL prefix the upload directory is served under.
	PublicPath       string `yaml:"public_path"`
	MaxUploadBytes   int64  `yaml:"max_upload_bytes"`
	CloudinaryName   string `yaml:"cloudinary_cloud_name"`
	CloudinaryKey    string `yaml:"cloudinary_api_key"`
	CloudinarySecret string `yaml:"cloudinary_api_secret"`
	CloudinaryFolder string `yaml:"cloudinary_folder"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "5000",
			Env:          "development",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigins:  []string{"*"},
			MaxPageSize:  1000,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "3306",
			User:            "root",
			Password:        "",
			Name:            "toko_bagus_waihatu",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: "your-secret-key",
			Expiry: 24 * time.Hour,
			Issuer: "toko-bagus-waihatu",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Storage: StorageConfig{
			Driver:           "local",
			UploadDir:        "uploads",
			PublicPath:       "/uploads",
			MaxUploadBytes:   domain.MaxImageBytes,
			CloudinaryFolder: "toko-bagus-waihatu/products",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load layers configuration: defaults, then the optional YAML file at path,
// then a .env file if present, then process environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Env, "APP_ENV")
	setInt(&cfg.Server.MaxPageSize, "MAX_PAGE_SIZE")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.CORSOrigins = origins
	}

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.JWT.Secret, "JWT_SECRET")

	setString(&cfg.Admin.Username, "ADMIN_USERNAME")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.UploadDir, "UPLOAD_DIR")
	setString(&cfg.Storage.CloudinaryName, "CLOUDINARY_CLOUD_NAME")
	setString(&cfg.Storage.CloudinaryKey, "CLOUDINARY_API_KEY")
	setString(&cfg.Storage.CloudinarySecret, "CLOUDINARY_API_SECRET")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
