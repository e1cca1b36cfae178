package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Open builds the storage adapter named by dsn. Supported forms:
//
//	memory: | mem:
//	file:<dir> | <dir>
//	sqlite:<path> | sqlite::memory: | sqlite:///abs/path
//	postgres://... | postgresql://...
//	redis://... | rediss://...
func Open(ctx context.Context, dsn string) (Adapter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("storage dsn is empty")
	}
	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing storage dsn: %w", err)
	}
	scheme := strings.ToLower(strings.TrimSpace(parsed.Scheme))
	switch scheme {
	case "", "file":
		path, err := dsnPath(parsed, dsn)
		if err != nil {
			return nil, err
		}
		return NewFileAdapter(path)
	case "memory", "mem":
		return NewMemoryAdapter(), nil
	case "sqlite", "sqlite3":
		path, err := dsnPath(parsed, dsn)
		if err != nil {
			return nil, err
		}
		return OpenSQLite(path)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, dsn)
	case "redis", "rediss":
		return OpenRedis(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported storage scheme: %s", scheme)
	}
}

// OpenStore opens the adapter for dsn, bounds it with a per-call timeout and
// wraps it in a Store.
func OpenStore(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	a, err := Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(WithTimeout(a, timeout)), nil
}

func dsnPath(parsed *url.URL, raw string) (string, error) {
	var path string
	if strings.TrimSpace(parsed.Scheme) == "" {
		path = strings.TrimSpace(raw)
	} else {
		path = strings.TrimSpace(parsed.Opaque)
		if path == "" {
			path = strings.TrimSpace(parsed.Path)
		}
		if path == "" {
			path = strings.TrimSpace(parsed.Host)
		}
	}
	if path == "" {
		return "", fmt.Errorf("storage dsn %q has no path", raw)
	}
	return expandHome(path), nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
