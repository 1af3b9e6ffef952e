package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/saltseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/saltseed/internal/sqlfile"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) EnsureLoadsTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + common.LoadsTable + ` (
		name VARCHAR(255) PRIMARY KEY,
		checksum VARCHAR(64) NOT NULL,
		loaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *Adapter) LoadedFiles(ctx context.Context) (map[string]common.Load, error) {
	query, args, err := p.qb.Select("name", "checksum", "loaded_at").
		From(common.LoadsTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Adapter) RecordLoad(ctx context.Context, name, checksum string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := p.recordLoad(ctx, tx, name, checksum); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Adapter) recordLoad(ctx context.Context, tx pgx.Tx, name, checksum string) error {
	query, args, err := p.qb.Insert(common.LoadsTable).
		Columns("name", "checksum", "loaded_at").
		Values(name, checksum, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (name) DO UPDATE SET checksum = EXCLUDED.checksum, loaded_at = EXCLUDED.loaded_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}
	return nil
}

func (p *Adapter) ExecuteScript(ctx context.Context, script string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := execStatements(ctx, tx, script); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (p *Adapter) ExecuteAndRecordLoad(ctx context.Context, f common.Fixture) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if f.Replace {
		if err := p.clearTable(ctx, tx, f.Table); err != nil {
			return err
		}
	}
	if err := execStatements(ctx, tx, f.Script); err != nil {
		return err
	}
	if err := p.recordLoad(ctx, tx, f.Name, f.Checksum); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Adapter) clearTable(ctx context.Context, tx pgx.Tx, table string) error {
	query, args, err := p.qb.Delete(sqlfile.Postgres.QuoteIdent(table)).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

func (p *Adapter) TableRowCount(ctx context.Context, table string) (int, error) {
	query, args, err := p.qb.Select("COUNT(*)").From(sqlfile.Postgres.QuoteIdent(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = p.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func execStatements(ctx context.Context, tx pgx.Tx, script string) error {
	for i, stmt := range sqlfile.SplitStatements(script) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}
	return nil
}
