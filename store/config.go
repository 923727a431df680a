package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDatabase = "genchat"

// Config holds transcript store initialization parameters.
// Path and MongoURI select the backend; Path wins when both are set.
// Leaving both empty disables persistence.
type Config struct {
	Path            string `json:"path,omitempty"`             // FileStore root directory.
	MongoURI        string `json:"mongo_uri,omitempty"`        // MongoDB connection string.
	MongoDatabase   string `json:"mongo_database,omitempty"`   // Database name; defaults to "genchat".
	MongoCollection string `json:"mongo_collection,omitempty"` // Collection name; defaults to "transcripts".
	CacheSize       int    `json:"cache_size,omitempty"`       // LRU record cache; 0 disables caching.
}

// DefaultConfig returns the default store configuration (disabled).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source == nil {
		return
	}
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.MongoURI != "" {
		c.MongoURI = source.MongoURI
	}
	if source.MongoDatabase != "" {
		c.MongoDatabase = source.MongoDatabase
	}
	if source.MongoCollection != "" {
		c.MongoCollection = source.MongoCollection
	}
	if source.CacheSize != 0 {
		c.CacheSize = source.CacheSize
	}
}

// New creates a Store from configuration. Returns a nil Store when no
// backend is configured, indicating persistence is disabled.
func New(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, nil
	}

	var inner Store
	switch {
	case cfg.Path != "":
		inner = NewFileStore(cfg.Path)
	case cfg.MongoURI != "":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		db := cfg.MongoDatabase
		if db == "" {
			db = defaultDatabase
		}
		inner = NewMongoStore(client.Database(db), cfg.MongoCollection)
	default:
		return nil, nil
	}

	if cfg.CacheSize > 0 {
		inner = NewCacheStore(inner, cfg.CacheSize)
	}
	return inner, nil
}
