package config

import (
	"fmt"
	"time"

	"github.com/tendant/simple-tourism/pkg/tourism"
)

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithMode selects remote-first or static-only resolution
func WithMode(mode string) Option {
	return func(c *ServerConfig) error {
		m, err := tourism.ParseMode(mode)
		if err != nil {
			return err
		}
		c.Mode = m
		return nil
	}
}

// WithMemoryStore uses an in-memory document store
func WithMemoryStore() Option {
	return func(c *ServerConfig) error {
		c.StoreType = StoreMemory
		return nil
	}
}

// WithPostgres uses a Postgres document store
func WithPostgres(url, schema string) Option {
	return func(c *ServerConfig) error {
		if url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.StoreType = StorePostgres
		c.DatabaseURL = url
		if schema != "" {
			c.DBSchema = schema
		}
		return nil
	}
}

// WithS3 uses an S3 document store
func WithS3(s3 S3Config) Option {
	return func(c *ServerConfig) error {
		if s3.Bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}
		if s3.Region == "" {
			s3.Region = c.S3.Region
		}
		c.StoreType = StoreS3
		c.S3 = s3
		return nil
	}
}

// WithFetchTimeout bounds each remote fetch; zero disables the deadline
func WithFetchTimeout(d time.Duration) Option {
	return func(c *ServerConfig) error {
		if d < 0 {
			return fmt.Errorf("fetch timeout cannot be negative")
		}
		c.FetchTimeout = d
		return nil
	}
}

// WithLimits sets the category set section sizes
func WithLimits(featured, popular, delicacies int) Option {
	return func(c *ServerConfig) error {
		if featured < 0 || popular < 0 || delicacies < 0 {
			return fmt.Errorf("section limits cannot be negative")
		}
		c.Limits = tourism.Limits{Featured: featured, Popular: popular, Delicacies: delicacies}
		return nil
	}
}

// WithFixture overrides the embedded static catalog with a YAML file
func WithFixture(path string) Option {
	return func(c *ServerConfig) error {
		c.FixturePath = path
		return nil
	}
}
