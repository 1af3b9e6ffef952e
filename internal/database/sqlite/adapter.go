package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// One writer keeps sample loads from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Adapter) EnsureLoadsTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + common.LoadsTable + ` (
		name TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		loaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *Adapter) LoadedFiles(ctx context.Context) (map[string]common.Load, error) {
	query, args, err := s.qb.Select("name", "checksum", "loaded_at").
		From(common.LoadsTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make(map[string]common.Load)
	for rows.Next() {
		var l common.Load
		if err := rows.Scan(&l.Name, &l.Checksum, &l.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load record: %w", err)
		}
		loads[l.Name] = l
	}
	return loads, rows.Err()
}

func (s *Adapter) RecordLoad(ctx context.Context, name, checksum string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.recordLoad(ctx, tx, name, checksum); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Adapter) recordLoad(ctx context.Context, tx *sql.Tx, name, checksum string) error {
	del, args, err := s.qb.Delete(common.LoadsTable).Where(squirrel.Eq{"name": name}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("failed to clear load record: %w", err)
	}

	ins, args, err := s.qb.Insert(common.LoadsTable).
		Columns("name", "checksum", "loaded_at").
		Values(name, checksum, time.Now().UTC()).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, ins, args...); err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}
	return nil
}

func (s *Adapter) ExecuteScript(ctx context.Context, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := execStatements(ctx, tx, script); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Adapter) ExecuteAndRecordLoad(ctx context.Context, f common.Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if f.Replace {
		if err := s.clearTable(ctx, tx, f.Table); err != nil {
			return err
		}
	}
	if err := execStatements(ctx, tx, f.Script); err != nil {
		return err
	}
	if err := s.recordLoad(ctx, tx, f.Name, f.Checksum); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Adapter) clearTable(ctx context.Context, tx *sql.Tx, table string) error {
	query, args, err := s.qb.Delete(sqlfile.SQLite.QuoteIdent(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

func (s *Adapter) TableRowCount(ctx context.Context, table string) (int, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(sqlfile.SQLite.QuoteIdent(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func execStatements(ctx context.Context, tx *sql.Tx, script string) error {
	for i, stmt := range sqlfile.SplitStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}
	return nil
}
