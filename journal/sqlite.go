package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal stores history in a local SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures the schema.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordCondition(r ConditionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO conditions
		(id, time, symbol, condition, trend, volatility)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Symbol, r.Condition, r.Trend, r.Volatility,
	)
	return err
}

func (j *SQLiteJournal) RecordSizing(r SizingRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO sizings
		(id, time, symbol, entry_price, stop_loss, risk_percent, lots, policy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Symbol, r.EntryPrice, r.StopLoss, r.RiskPercent, r.Lots, r.Policy,
	)
	return err
}

// ListConditions returns the newest condition snapshots for symbol, most
// recent first.
func (j *SQLiteJournal) ListConditions(symbol string, limit int) ([]ConditionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, symbol, condition, trend, volatility
		FROM conditions WHERE symbol = ?
		ORDER BY id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConditionRecord
	for rows.Next() {
		var r ConditionRecord
		if err := rows.Scan(&r.ID, &r.Time, &r.Symbol, &r.Condition, &r.Trend, &r.Volatility); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListSizings returns the newest sizing decisions for symbol, most recent
// first.
func (j *SQLiteJournal) ListSizings(symbol string, limit int) ([]SizingRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, symbol, entry_price, stop_loss, risk_percent, lots, policy
		FROM sizings WHERE symbol = ?
		ORDER BY id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SizingRecord
	for rows.Next() {
		var r SizingRecord
		if err := rows.Scan(&r.ID, &r.Time, &r.Symbol, &r.EntryPrice, &r.StopLoss, &r.RiskPercent, &r.Lots, &r.Policy); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
