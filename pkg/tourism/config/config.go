package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-tourism/pkg/tourism"
	"github.com/tendant/simple-tourism/pkg/tourism/store/memory"
	pgstore "github.com/tendant/simple-tourism/pkg/tourism/store/postgres"
	s3store "github.com/tendant/simple-tourism/pkg/tourism/store/s3"
)

// Store types
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Environment: "development",
		Mode:        tourism.ModeRemoteFirst,
		StoreType:   StoreMemory,
		DBSchema:    "tourism",
		S3: S3Config{
			Region: "us-east-1",
		},
		Limits: tourism.Limits{
			Featured:   tourism.DefaultFeaturedLimit,
			Popular:    tourism.DefaultPopularLimit,
			Delicacies: tourism.DefaultDelicaciesLimit,
		},
	}
}

// ServerConfig represents configuration for the content resolver and its store
type ServerConfig struct {
	Environment string // development, production, testing

	// Resolution
	Mode         tourism.Mode
	FetchTimeout time.Duration // zero means no deadline
	Limits       tourism.Limits
	FixturePath  string // optional override of the embedded catalog

	// Remote document store
	StoreType   string // "memory", "postgres", "s3"
	DatabaseURL string
	DBSchema    string // Postgres schema to use (default: tourism)
	S3          S3Config
}

// S3Config configures the S3 document store
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Validate validates the configuration
func (c *ServerConfig) Validate() error {
	if _, err := tourism.ParseMode(string(c.Mode)); err != nil {
		return err
	}

	switch c.StoreType {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required when using postgres")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required when using s3")
		}
	default:
		return fmt.Errorf("store type must be 'memory', 'postgres' or 's3', got: %s", c.StoreType)
	}

	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout cannot be negative: %s", c.FetchTimeout)
	}
	if c.Limits.Featured < 0 || c.Limits.Popular < 0 || c.Limits.Delicacies < 0 {
		return errors.New("section limits cannot be negative")
	}

	return nil
}

// BuildStore creates the configured document store. The returned close
// function releases its resources and is never nil.
func (c *ServerConfig) BuildStore(ctx context.Context) (tourism.DocumentStore, func(), error) {
	switch c.StoreType {
	case StoreMemory:
		return memory.New(), func() {}, nil

	case StorePostgres:
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for the connection
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
			return err
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return pgstore.NewWithPool(pool), pool.Close, nil

	case StoreS3:
		store, err := s3store.New(s3store.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			Prefix:          c.S3.Prefix,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Endpoint:        c.S3.Endpoint,
			UsePathStyle:    c.S3.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store type: %s", c.StoreType)
	}
}

// BuildCatalog loads the fixture override or returns the embedded catalog
func (c *ServerConfig) BuildCatalog() (*tourism.Catalog, error) {
	if c.FixturePath == "" {
		return tourism.DefaultCatalog(), nil
	}
	return tourism.LoadCatalogFile(c.FixturePath)
}

// BuildGateway wraps store in a gateway carrying the configured fetch timeout
func (c *ServerConfig) BuildGateway(store tourism.DocumentStore, recorder tourism.Recorder, logger *slog.Logger) (*tourism.Gateway, error) {
	return tourism.NewGateway(
		tourism.WithStore(store),
		tourism.WithFetchTimeout(c.FetchTimeout),
		tourism.WithGatewayLogger(logger),
		tourism.WithGatewayRecorder(recorder),
	)
}

// BuildResolver creates a resolver over source. In static-only mode source
// may be nil.
func (c *ServerConfig) BuildResolver(source tourism.ContentSource, recorder tourism.Recorder, logger *slog.Logger) (*tourism.Resolver, error) {
	catalog, err := c.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	options := []tourism.ResolverOption{
		tourism.WithCatalog(catalog),
		tourism.WithMode(c.Mode),
		tourism.WithLimits(c.Limits),
		tourism.WithLogger(logger),
		tourism.WithRecorder(recorder),
	}
	if source != nil {
		options = append(options, tourism.WithContentSource(source))
	}

	return tourism.NewResolver(options...)
}
