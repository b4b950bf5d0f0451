// Package journal records every ledger posting in SQLite so a run can be
// audited against the live ledger. It is write-mostly: nothing is ever loaded
// back into a running world.
package journal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"lukechampine.com/uint128"
	_ "modernc.org/sqlite"

	"github.com/jogru0/save-the-planet/internal/duration"
	"github.com/jogru0/save-the-planet/internal/quantity"
	"github.com/jogru0/save-the-planet/internal/world"
)

// DB wraps a SQLite connection holding the postings of one run.
type DB struct {
	conn  *sqlx.DB
	runID uuid.UUID
}

// Open opens or creates the journal at dsn and starts a new run.
func Open(dsn string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A shared in-memory database lives only as long as a connection to it.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, runID: uuid.New()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := conn.Exec(
		"INSERT INTO runs (id, started_at) VALUES (?, ?)",
		db.runID.String(), time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("start run: %w", err)
	}

	slog.Debug("journal opened", "run", db.runID)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunID identifies the postings written through this DB.
func (db *DB) RunID() uuid.UUID {
	return db.runID
}

func (db *DB) migrate() error {
	// 128-bit values are stored as decimal text.
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS postings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		at_ticks TEXT NOT NULL,
		ledger TEXT NOT NULL,
		side TEXT NOT NULL,
		whole TEXT NOT NULL,
		residual TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_postings_run_ledger ON postings(run_id, ledger);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type postingRow struct {
	At       string `db:"at_ticks"`
	Ledger   string `db:"ledger"`
	Side     string `db:"side"`
	Whole    string `db:"whole"`
	Residual string `db:"residual"`
}

// Record appends p to the current run. It implements world.Recorder.
func (db *DB) Record(p world.Posting) error {
	whole, residual := p.Amount.Parts()
	_, err := db.conn.Exec(
		`INSERT INTO postings (run_id, at_ticks, ledger, side, whole, residual)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		db.runID.String(), p.At.Ticks().String(), p.Ledger, string(p.Side), whole.String(), residual.String(),
	)
	if err != nil {
		return fmt.Errorf("record posting: %w", err)
	}
	return nil
}

// Postings returns the current run's postings to ledger in the order they
// were recorded.
func (db *DB) Postings(ledger string) ([]world.Posting, error) {
	var rows []postingRow
	err := db.conn.Select(&rows,
		`SELECT at_ticks, ledger, side, whole, residual FROM postings
		 WHERE run_id = ? AND ledger = ? ORDER BY id`,
		db.runID.String(), ledger,
	)
	if err != nil {
		return nil, fmt.Errorf("select postings: %w", err)
	}

	postings := make([]world.Posting, 0, len(rows))
	for _, r := range rows {
		p, err := r.decode()
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, nil
}

func (r postingRow) decode() (world.Posting, error) {
	at, err := uint128.FromString(r.At)
	if err != nil {
		return world.Posting{}, fmt.Errorf("decode time %q: %w", r.At, err)
	}
	whole, err := uint128.FromString(r.Whole)
	if err != nil {
		return world.Posting{}, fmt.Errorf("decode whole %q: %w", r.Whole, err)
	}
	residual, err := uint128.FromString(r.Residual)
	if err != nil {
		return world.Posting{}, fmt.Errorf("decode residual %q: %w", r.Residual, err)
	}
	amount, err := quantity.FromParts[quantity.Emission](whole, residual)
	if err != nil {
		return world.Posting{}, fmt.Errorf("decode amount: %w", err)
	}
	return world.Posting{
		At:     duration.FromTicks(at),
		Ledger: r.Ledger,
		Side:   world.Side(r.Side),
		Amount: amount,
	}, nil
}

// Replay rebuilds the balance of ledger from the recorded postings.
func (db *DB) Replay(ledger string) (quantity.Balance[quantity.Emission], error) {
	balance := quantity.NewBalance[quantity.Emission]()

	postings, err := db.Postings(ledger)
	if err != nil {
		return balance, err
	}
	for _, p := range postings {
		switch p.Side {
		case world.SideCredit:
			balance.Credit(p.Amount)
		case world.SideDebit:
			balance.Debit(p.Amount)
		default:
			return balance, fmt.Errorf("posting at %s has unknown side %q", p.At, p.Side)
		}
	}
	return balance, nil
}
