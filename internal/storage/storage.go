package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leaf468/memehack/internal/models"

	_ "github.com/lib/pq"
)

// ErrNoReports is returned when the archive holds nothing yet.
var ErrNoReports = errors.New("no reports stored")

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveReport archives one report row plus its per-token insight rows in a
// single transaction. A report with zero insight rows never appears.
func (s *PostgresStorage) SaveReport(ctx context.Context, report models.MarketReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	alerts, err := json.Marshal(report.Alerts)
	if err != nil {
		return fmt.Errorf("failed to encode alerts: %w", err)
	}

	var reportID int64
	err = tx.QueryRowContext(ctx, `
        INSERT INTO reports (
            generated_at, summary, top_mover, overall_sentiment, alerts
        ) VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `,
		report.Timestamp,
		report.Summary,
		report.TopMover,
		string(report.OverallSentiment),
		alerts,
	).Scan(&reportID)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	for _, in := range report.Tokens {
		detail, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode insight for %s: %w", in.Symbol, err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO token_insights (
                report_id, symbol, cultural_score, trend, risk_level,
                price, change_24h, volume_24h, detail, generated_at
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `,
			reportID,
			in.Symbol,
			in.CulturalScore,
			string(in.Trend),
			string(in.RiskLevel),
			in.Market.Price,
			in.Market.Change24h,
			in.Market.Volume24h,
			detail,
			in.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save insight for %s: %w", in.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// LatestReport returns the most recently archived report, reassembled from
// its insight rows.
func (s *PostgresStorage) LatestReport(ctx context.Context) (*models.MarketReport, error) {
	var (
		reportID int64
		report   models.MarketReport
		trendRaw string
		alerts   []byte
	)

	err := s.db.QueryRowContext(ctx, `
        SELECT id, generated_at, summary, top_mover, overall_sentiment, alerts
        FROM reports
        ORDER BY generated_at DESC
        LIMIT 1
    `).Scan(&reportID, &report.Timestamp, &report.Summary, &report.TopMover, &trendRaw, &alerts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoReports
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	report.OverallSentiment = models.Trend(trendRaw)
	if err := json.Unmarshal(alerts, &report.Alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT detail FROM token_insights
        WHERE report_id = $1
        ORDER BY cultural_score DESC
    `, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query report insights: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var detail []byte
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("failed to scan insight row: %w", err)
		}
		var in models.TokenInsight
		if err := json.Unmarshal(detail, &in); err != nil {
			return nil, fmt.Errorf("failed to decode insight row: %w", err)
		}
		report.Tokens = append(report.Tokens, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating insight rows: %w", err)
	}

	return &report, nil
}

// ReportHistory returns one token's archived insights since a point in time,
// oldest first.
func (s *PostgresStorage) ReportHistory(ctx context.Context, symbol string, since time.Time) ([]models.TokenInsight, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT detail FROM token_insights
        WHERE symbol = $1 AND generated_at >= $2
        ORDER BY generated_at ASC
    `, symbol, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var result []models.TokenInsight
	for rows.Next() {
		var detail []byte
		if err := rows.Scan(&detail); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		var in models.TokenInsight
		if err := json.Unmarshal(detail, &in); err != nil {
			return nil, fmt.Errorf("failed to decode history row: %w", err)
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return result, nil
}

// Close releases the underlying pool.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id SERIAL PRIMARY KEY,
			generated_at TIMESTAMP NOT NULL,
			summary TEXT,
			top_mover VARCHAR(50),
			overall_sentiment VARCHAR(20),
			alerts JSONB
		)`,

		`CREATE TABLE IF NOT EXISTS token_insights (
			id SERIAL PRIMARY KEY,
			report_id INT NOT NULL REFERENCES reports(id),
			symbol VARCHAR(50) NOT NULL,
			cultural_score INT,
			trend VARCHAR(20),
			risk_level VARCHAR(20),
			price NUMERIC(24, 12),
			change_24h NUMERIC(10, 4),
			volume_24h NUMERIC(20, 2),
			detail JSONB,
			generated_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_token_insights_symbol_time
			ON token_insights (symbol, generated_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}
