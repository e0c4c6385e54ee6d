package db

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	base_url    TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	discovered  INTEGER NOT NULL DEFAULT 0,
	scraped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	cancelled   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS accesses (
	access_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	url         TEXT NOT NULL,
	namespace   TEXT NOT NULL,
	cache_hit   INTEGER NOT NULL,
	ok          INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	accessed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accesses_run ON accesses(run_id);
CREATE INDEX IF NOT EXISTS idx_accesses_url ON accesses(url);
`
