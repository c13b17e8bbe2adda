package storage

// sqlite.go — histórico de resultados para análisis de tendencias.
//
// Una fila por resultado y ciclo, clave (timestamp, strategy, item, league).
// Re-ejecutar dentro del mismo segundo sobreescribe la fila vía UPSERT:
// append para timestamps nuevos, overwrite para repetidos, nunca duplicados.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/exilebot/internal/domain"
	"github.com/alejandrodnm/exilebot/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS trade_results (
    timestamp           INTEGER NOT NULL,
    strategy_name       TEXT    NOT NULL,
    item_or_combo       TEXT    NOT NULL,
    league              TEXT    NOT NULL,
    run_id              TEXT    NOT NULL,
    input_cost          REAL,
    profit_per_flip     REAL    NOT NULL,
    profit_per_hour_est REAL,
    profit_stddev       REAL,
    risk_profile        TEXT    NOT NULL,
    liquidity_score     REAL,
    long_term           INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (timestamp, strategy_name, item_or_combo, league)
);

CREATE INDEX IF NOT EXISTS idx_results_strategy
    ON trade_results(strategy_name, league, timestamp);
`

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el
// schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SaveReport implementa ports.Storage. Persiste todas las filas del report en
// una transacción, con el timestamp del ciclo truncado a segundos.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report domain.Report) error {
	if len(report.Results) == 0 {
		return nil
	}

	ts := report.GeneratedAt.UTC().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveReport: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_results
			(timestamp, strategy_name, item_or_combo, league, run_id,
			 input_cost, profit_per_flip, profit_per_hour_est, profit_stddev,
			 risk_profile, liquidity_score, long_term)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(timestamp, strategy_name, item_or_combo, league) DO UPDATE SET
			run_id              = excluded.run_id,
			input_cost          = excluded.input_cost,
			profit_per_flip     = excluded.profit_per_flip,
			profit_per_hour_est = excluded.profit_per_hour_est,
			profit_stddev       = excluded.profit_stddev,
			risk_profile        = excluded.risk_profile,
			liquidity_score     = excluded.liquidity_score,
			long_term           = excluded.long_term
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveReport: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range report.Results {
		longTerm := 0
		if r.LongTerm {
			longTerm = 1
		}
		if _, err := stmt.ExecContext(ctx,
			ts,
			r.StrategyName,
			r.ItemOrCombo,
			report.League,
			report.RunID,
			nullable(r.InputCost),
			r.ProfitPerFlip,
			nullable(r.ProfitPerHour),
			nullable(r.ProfitStdDev),
			r.Risk.String(),
			nullable(r.LiquidityScore),
			longTerm,
		); err != nil {
			return fmt.Errorf("storage.SaveReport: upsert %s/%s: %w", r.StrategyName, r.ItemOrCombo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveReport: commit: %w", err)
	}
	return nil
}

// GetHistory implementa ports.Storage. Devuelve todas las observaciones de
// una estrategia en una liga, las más antiguas primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, strategyName, league string) ([]ports.HistoryPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, run_id, item_or_combo, profit_per_flip,
		       profit_per_hour_est, risk_profile, liquidity_score, long_term
		FROM trade_results
		WHERE strategy_name = ? AND league = ?
		ORDER BY timestamp ASC, item_or_combo ASC
	`, strategyName, league)
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var points []ports.HistoryPoint
	for rows.Next() {
		var (
			p         ports.HistoryPoint
			ts        int64
			riskStr   string
			perHour   sql.NullFloat64
			liquidity sql.NullFloat64
			longTerm  int
		)
		if err := rows.Scan(&ts, &p.RunID, &p.ItemOrCombo, &p.ProfitPerFlip,
			&perHour, &riskStr, &liquidity, &longTerm); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}

		p.Timestamp = time.Unix(ts, 0).UTC()
		p.Risk, _ = domain.RiskProfileFromString(riskStr)
		if perHour.Valid {
			p.ProfitPerHour = domain.Float(perHour.Float64)
		}
		if liquidity.Valid {
			p.LiquidityScore = domain.Float(liquidity.Float64)
		}
		p.LongTerm = longTerm == 1
		points = append(points, p)
	}
	return points, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// nullable convierte un *float64 del dominio en el valor que espera el driver.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
