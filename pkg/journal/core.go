package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Options controls Core initialization.
type Options struct {
	DBPath     string
	Logger     *slog.Logger
	SaveDelay  time.Duration
	SessionTTL time.Duration
}

// Core provides access to the journal business logic and storage.
type Core struct {
	db         *sql.DB
	logger     *slog.Logger
	dbPath     string
	sessionTTL time.Duration

	mu       sync.Mutex
	journals map[string]*JournalState

	saver *saver
}

// Open initializes a Core using the provided database path.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	c := &Core{
		db:         db,
		logger:     logger,
		dbPath:     cleanPath,
		sessionTTL: defaultDuration(opts.SessionTTL, 7*24*time.Hour),
		journals:   make(map[string]*JournalState),
	}
	c.saver = newSaver(c, defaultDuration(opts.SaveDelay, 2*time.Second))
	return c, nil
}

// Close flushes pending saves and releases database resources.
func (c *Core) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	if c.saver != nil {
		c.saver.flush()
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

func defaultDuration(v time.Duration, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
