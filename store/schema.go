package store

const schema = `
CREATE TABLE IF NOT EXISTS ledger (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	cash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	asset_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	name TEXT NOT NULL,
	image TEXT NOT NULL,
	amount TEXT NOT NULL,
	avg_buy_price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	seq INTEGER PRIMARY KEY,
	txn_id TEXT NOT NULL UNIQUE,
	kind TEXT NOT NULL,
	asset_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	amount TEXT NOT NULL,
	price TEXT NOT NULL,
	total TEXT NOT NULL,
	time DATETIME NOT NULL,
	slippage_pct TEXT NOT NULL,
	realized_pnl TEXT
);

CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY,
	time DATETIME NOT NULL,
	total_value TEXT NOT NULL,
	trade_kind TEXT,
	trade_symbol TEXT,
	trade_total TEXT
);

CREATE TABLE IF NOT EXISTS favorites (
	seq INTEGER PRIMARY KEY,
	asset_id TEXT NOT NULL UNIQUE,
	symbol TEXT NOT NULL,
	name TEXT NOT NULL,
	image TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(time);
`
