// Package loader applies generated fixture files to a database and keeps a
// ledger of what was loaded so reruns only apply new or changed files.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/saltseed/internal/config"
	"github.com/Lumos-Labs-HQ/saltseed/internal/database"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

type Status string

const (
	StatusLoaded  Status = "loaded"
	StatusSkipped Status = "skipped"
	StatusChanged Status = "changed"
	// StatusMarked files were recorded without being executed.
	StatusMarked Status = "marked"
)

var ErrDialectMismatch = errors.New("fixture dialect does not match the database")

type Options struct {
	// Force reloads files already in the ledger, replacing the rows of
	// their table.
	Force bool
	// Mark records files in the ledger without executing them, for data
	// that was loaded by other means.
	Mark bool
}

// Result describes what happened to one file.
type Result struct {
	File     string
	Table    string
	Checksum string
	Status   Status
}

type Loader struct {
	adapter database.DatabaseAdapter
	dialect sqlfile.Dialect
	logger  *zap.Logger
}

// New connects to the database configured in cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Loader, error) {
	adapter, err := database.NewAdapter(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}
	dialect, err := sqlfile.ParseDialect(config.DialectFor(cfg.Database.Provider))
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return NewWithAdapter(adapter, dialect, logger), nil
}

// NewWithAdapter wraps an already connected adapter speaking dialect.
func NewWithAdapter(adapter database.DatabaseAdapter, dialect sqlfile.Dialect, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{adapter: adapter, dialect: dialect, logger: logger}
}

func (l *Loader) Close() error {
	return l.adapter.Close()
}

func (l *Loader) Adapter() database.DatabaseAdapter {
	return l.adapter
}

// Checksum is the hex sha256 of the decompressed SQL.
func Checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

// ApplySchema runs a plain or gzip-compressed SQL script in one
// transaction, typically the CREATE TABLE statements fixtures load into.
func (l *Loader) ApplySchema(ctx context.Context, path string) error {
	var script string
	if strings.HasSuffix(path, ".gz") {
		content, err := sqlfile.ReadFile(path)
		if err != nil {
			return err
		}
		script = content
	} else {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		script = string(content)
	}

	color.Cyan("🏗️  Applying schema %s", filepath.Base(path))
	if err := l.adapter.ExecuteScript(ctx, script); err != nil {
		return fmt.Errorf("failed to apply schema %s: %w", path, err)
	}
	l.logger.Debug("applied schema", zap.String("path", path))
	return nil
}

// Run applies every .sql.gz file in dir in name order. Files already in
// the ledger are skipped unless opts.Force is set, and a file whose content
// changed since it was loaded is reported as changed. A forced reload
// clears the file's table first, in the same transaction, so fixtures with
// fixed ids can be applied again.
func (l *Loader) Run(ctx context.Context, dir string, opts Options) ([]Result, error) {
	if err := l.adapter.EnsureLoadsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create loads table: %w", err)
	}

	loaded, err := l.adapter.LoadedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read loads table: %w", err)
	}

	files, err := sqlfile.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		color.Yellow("⚠️  No %s files found in %s", sqlfile.Extension, dir)
		return nil, nil
	}

	var results []Result
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := filepath.Base(file)
		script, err := sqlfile.ReadFile(file)
		if err != nil {
			return results, err
		}

		summary, err := sqlfile.Parse(script)
		if err != nil {
			return results, fmt.Errorf("%s: %w", name, err)
		}
		if l.dialect != "" && !summary.LoadableBy(l.dialect) {
			return results, fmt.Errorf("%w: %s quotes identifiers with %c, regenerate it with --dialect %s",
				ErrDialectMismatch, name, summary.Quote, l.dialect)
		}

		res := Result{File: name, Table: summary.Table, Checksum: Checksum(script)}
		prev, seen := loaded[name]
		if seen && !opts.Force {
			res.Status = StatusSkipped
			if prev.Checksum != res.Checksum {
				res.Status = StatusChanged
				color.Yellow("⚠️  %s changed since it was loaded on %s (use --force to reload)",
					name, prev.LoadedAt.Format("2006-01-02 15:04"))
			}
			results = append(results, res)
			continue
		}

		if opts.Mark {
			if err := l.adapter.RecordLoad(ctx, name, res.Checksum); err != nil {
				return results, fmt.Errorf("failed to mark %s: %w", name, err)
			}
			l.logger.Debug("marked fixture", zap.String("file", name), zap.String("checksum", res.Checksum))
			res.Status = StatusMarked
			results = append(results, res)
			continue
		}

		if seen {
			color.Cyan("🔄 Reloading %s (%d rows replace %s)", name, summary.Rows, summary.Table)
		} else {
			color.Cyan("📥 Loading %s (%d rows into %s)", name, summary.Rows, summary.Table)
		}
		fixture := database.Fixture{
			Name:     name,
			Checksum: res.Checksum,
			Table:    summary.Table,
			Script:   script,
			Replace:  seen,
		}
		if err := l.adapter.ExecuteAndRecordLoad(ctx, fixture); err != nil {
			return results, fmt.Errorf("failed to load %s: %w", name, err)
		}
		l.logger.Debug("loaded fixture",
			zap.String("file", name),
			zap.String("table", summary.Table),
			zap.Int("rows", summary.Rows),
			zap.Bool("replace", seen),
			zap.String("checksum", res.Checksum))

		res.Status = StatusLoaded
		results = append(results, res)
	}
	return results, nil
}
