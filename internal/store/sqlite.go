package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/contact-crawler/internal/model"
)

// SQLiteEmitter persists records to a local SQLite database using
// modernc.org/sqlite. Each batch invocation is one row in runs; each crawled
// domain is one row in records holding the full record as JSON plus the
// columns worth indexing.
type SQLiteEmitter struct {
	db    *sql.DB
	runID string
}

// NewSQLite opens (or creates) the database at dsn, configures WAL mode,
// applies the schema, and starts a run row.
func NewSQLite(ctx context.Context, dsn string) (*SQLiteEmitter, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	s := &SQLiteEmitter{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.beginRun(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	finished_at DATETIME,
	domains     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
	id            TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL REFERENCES runs(id),
	domain        TEXT NOT NULL,
	final_url     TEXT,
	primary_email TEXT,
	primary_phone TEXT,
	record        TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_domain ON records(domain);
`

func (s *SQLiteEmitter) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteEmitter) beginRun(ctx context.Context) error {
	s.runID = uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		s.runID, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: insert run")
}

// RunID returns the identifier of the run started by NewSQLite.
func (s *SQLiteEmitter) RunID() string {
	return s.runID
}

func (s *SQLiteEmitter) Emit(ctx context.Context, rec *model.DomainRecord) error {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrapf(err, "sqlite: marshal %s", rec.Domain)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, run_id, domain, final_url, primary_email, primary_phone, record, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), s.runID, rec.Domain, rec.FinalURL,
		rec.PrimaryEmail, rec.PrimaryPhone, string(recJSON), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert record %s", rec.Domain)
}

// FinishRun stamps the run row with its summary counts.
func (s *SQLiteEmitter) FinishRun(ctx context.Context, summary RunSummary) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, domains = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), summary.Domains, summary.Failed, s.runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", s.runID)
	}
	return checkRowsAffected(res, "run", s.runID)
}

// GetRecord returns the most recent record for a domain, or nil when the
// domain has never been crawled.
func (s *SQLiteEmitter) GetRecord(ctx context.Context, domain string) (*model.DomainRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record FROM records WHERE domain = ? ORDER BY created_at DESC LIMIT 1`,
		domain,
	)
	var recJSON string
	err := row.Scan(&recJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get record %s", domain)
	}
	var rec model.DomainRecord
	if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal record %s", domain)
	}
	return &rec, nil
}

func (s *SQLiteEmitter) Close() error {
	return s.db.Close()
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}
