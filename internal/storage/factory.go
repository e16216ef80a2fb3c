package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/alonix-notify/internal/colors"
	"github.com/cristianoliveira/alonix-notify/internal/config"
	"github.com/cristianoliveira/alonix-notify/internal/storage/redis"
	"github.com/cristianoliveira/alonix-notify/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite key-value table (default).
	BackendSQLite = "sqlite"
	// BackendFile selects one file per key.
	BackendFile = "file"
	// BackendRedis selects a Redis server.
	BackendRedis = "redis"
	// BackendMemory keeps state only for the lifetime of the process.
	BackendMemory = "memory"

	dbFileName = "alonix.db"
	kvDirName  = "kv"
)

var (
	_ Store = (*sqlite.SQLiteStorage)(nil)
	_ Store = (*redis.RedisStorage)(nil)
	_ Store = (*FileStorage)(nil)
	_ Store = (*MemoryStorage)(nil)
)

// NewFromConfig creates a store for the configured storage_backend.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendSQLite))
}

// NewForBackend creates a store for the named backend under state_dir.
// sqlite and redis fall back to the file backend when they cannot start.
func NewForBackend(backend string) (Store, error) {
	stateDir := config.Get("state_dir", "")
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		s, err := sqlite.NewSQLiteStorage(filepath.Join(stateDir, dbFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return NewFileStorage(filepath.Join(stateDir, kvDirName))
		}
		return s, nil
	case BackendRedis:
		s, err := redis.NewRedisStorage(config.Get("redis_addr", "127.0.0.1:6379"))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize redis backend, falling back to file: %v", err))
			return NewFileStorage(filepath.Join(stateDir, kvDirName))
		}
		return s, nil
	case BackendFile:
		return NewFileStorage(filepath.Join(stateDir, kvDirName))
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to sqlite", backend))
		return NewForBackend(BackendSQLite)
	}
}
