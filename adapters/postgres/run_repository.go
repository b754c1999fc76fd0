package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/internal/errors"
	"gobayes/ports"

	"github.com/jmoiron/sqlx"
)

// DSNWithSSLMode appends the configured sslmode to a connection string that
// does not already set one. A DSN that names its own sslmode wins.
func DSNWithSSLMode(dsn, sslMode string) string {
	if dsn == "" || sslMode == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "sslmode=" + sslMode
	}
	// key/value form
	return dsn + " sslmode=" + sslMode
}

// RunRepositoryImpl implements RunRepository for PostgreSQL. The full report
// is stored as a JSONB payload; the manifest columns are duplicated for
// listing without deserializing every payload.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// EnsureSchema creates the analysis_runs table if it does not exist
func (r *RunRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id TEXT PRIMARY KEY,
			seed BIGINT NOT NULL,
			rows_simulated INT NOT NULL,
			chains INT NOT NULL,
			iterations INT NOT NULL,
			prior_family TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			runtime_ms BIGINT NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to create analysis_runs table")
	}
	return nil
}

// SaveRun persists a completed report, replacing any previous run with the same ID
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, report *regress.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to serialize report")
	}

	m := report.Manifest
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (run_id, seed, rows_simulated, chains, iterations, prior_family, fingerprint, runtime_ms, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_id) DO UPDATE SET
			seed = EXCLUDED.seed,
			rows_simulated = EXCLUDED.rows_simulated,
			chains = EXCLUDED.chains,
			iterations = EXCLUDED.iterations,
			prior_family = EXCLUDED.prior_family,
			fingerprint = EXCLUDED.fingerprint,
			runtime_ms = EXCLUDED.runtime_ms,
			report = EXCLUDED.report
	`, m.RunID.String(), m.Seed, m.Rows, m.Chains, m.Iterations, string(m.Prior.Family), string(m.Fingerprint), m.RuntimeMs, payload)

	if err != nil {
		return errors.Wrap(err, "failed to persist run")
	}
	return nil
}

// GetRun retrieves a stored report by run ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, runID core.RunID) (*regress.Report, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `
		SELECT report FROM analysis_runs WHERE run_id = $1
	`, runID.String())
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("run " + runID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load run")
	}

	var report regress.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize report")
	}
	return &report, nil
}

// ListRuns returns manifests of the most recent runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]regress.RunManifest, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT run_id, seed, rows_simulated, chains, iterations, prior_family, fingerprint, runtime_ms, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}
	defer rows.Close()

	var manifests []regress.RunManifest
	for rows.Next() {
		var (
			m           regress.RunManifest
			runID       string
			priorFamily string
			fingerprint string
			createdAt   time.Time
		)
		if err := rows.Scan(&runID, &m.Seed, &m.Rows, &m.Chains, &m.Iterations, &priorFamily, &fingerprint, &m.RuntimeMs, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan run row")
		}
		m.RunID = core.RunID(runID)
		m.Prior.Family = regress.PriorFamily(priorFamily)
		m.Fingerprint = core.Hash(fingerprint)
		m.CreatedAt = core.NewTimestamp(createdAt)
		manifests = append(manifests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate run rows")
	}
	return manifests, nil
}
