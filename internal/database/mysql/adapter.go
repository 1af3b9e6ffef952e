package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
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

// ParseURL turns a mysql:// URL into a go-sql-driver DSN. Plain DSNs are
// returned unchanged apart from the parseTime flag.
func ParseURL(url string) string {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				replacer := strings.NewReplacer(
					"ssl-mode=REQUIRED", "tls=skip-verify",
					"ssl-mode=DISABLED", "tls=false",
					"ssl-mode=VERIFY_CA", "tls=true",
					"ssl-mode=VERIFY_IDENTITY", "tls=true",
					"sslmode=require", "tls=skip-verify",
					"sslmode=disable", "tls=false",
					"sslmode=verify-ca", "tls=true",
					"sslmode=verify-full", "tls=true",
				)
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, replacer.Replace(dbAndParams))
			}
		}
	}

	if !strings.Contains(dsn, "parseTime=") {
		if strings.Contains(dsn, "?") {
			dsn += "&parseTime=true"
		} else {
			dsn += "?parseTime=true"
		}
	}
	return dsn
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", ParseURL(url))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *Adapter) EnsureLoadsTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + common.LoadsTable + ` (
		name VARCHAR(255) PRIMARY KEY,
		checksum VARCHAR(64) NOT NULL,
		loaded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Adapter) LoadedFiles(ctx context.Context) (map[string]common.Load, error) {
	query, args, err := m.qb.Select("name", "checksum", "loaded_at").
		From(common.LoadsTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
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

func (m *Adapter) RecordLoad(ctx context.Context, name, checksum string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.recordLoad(ctx, tx, name, checksum); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *Adapter) recordLoad(ctx context.Context, tx *sql.Tx, name, checksum string) error {
	query, args, err := m.qb.Insert(common.LoadsTable).
		Columns("name", "checksum", "loaded_at").
		Values(name, checksum, time.Now().UTC()).
		Suffix("ON DUPLICATE KEY UPDATE checksum = VALUES(checksum), loaded_at = VALUES(loaded_at)").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}
	return nil
}

// ExecuteScript runs the statements in a transaction. MySQL commits DDL
// implicitly, which is fine for INSERT-only fixture files.
func (m *Adapter) ExecuteScript(ctx context.Context, script string) error {
	tx, err := m.db.BeginTx(ctx, nil)
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

func (m *Adapter) ExecuteAndRecordLoad(ctx context.Context, f common.Fixture) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if f.Replace {
		if err := m.clearTable(ctx, tx, f.Table); err != nil {
			return err
		}
	}
	if err := execStatements(ctx, tx, f.Script); err != nil {
		return err
	}
	if err := m.recordLoad(ctx, tx, f.Name, f.Checksum); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *Adapter) clearTable(ctx context.Context, tx *sql.Tx, table string) error {
	query, args, err := m.qb.Delete(sqlfile.MySQL.QuoteIdent(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

func (m *Adapter) TableRowCount(ctx context.Context, table string) (int, error) {
	query, args, err := m.qb.Select("COUNT(*)").From(sqlfile.MySQL.QuoteIdent(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&count)
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
