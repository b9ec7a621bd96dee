package journal

// Schema creates the history tables. ULID primary keys sort by time, so the
// symbol+id indexes double as time indexes.
const Schema = `
CREATE TABLE IF NOT EXISTS conditions (
	id         TEXT PRIMARY KEY,
	time       TIMESTAMP NOT NULL,
	symbol     TEXT NOT NULL,
	condition  TEXT NOT NULL,
	trend      TEXT NOT NULL,
	volatility TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conditions_symbol ON conditions(symbol, id);

CREATE TABLE IF NOT EXISTS sizings (
	id           TEXT PRIMARY KEY,
	time         TIMESTAMP NOT NULL,
	symbol       TEXT NOT NULL,
	entry_price  REAL NOT NULL,
	stop_loss    REAL NOT NULL,
	risk_percent REAL NOT NULL,
	lots         REAL NOT NULL,
	policy       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sizings_symbol ON sizings(symbol, id);
`
