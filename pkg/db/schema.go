package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- One row per completed word cloud
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    server_url TEXT NOT NULL,
    account_name TEXT NOT NULL,
    account_id TEXT NOT NULL,
    statuses_count INTEGER DEFAULT 0,  -- as reported by the server
    statuses_seen INTEGER DEFAULT 0,   -- actually paged through
    pages INTEGER DEFAULT 0,
    capped BOOLEAN DEFAULT 0,          -- stopped by --max_pages
    stopwords_removed INTEGER DEFAULT 0,
    output_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_account ON runs(account_name);

-- Final counts after stopword removal
CREATE TABLE IF NOT EXISTS run_words (
    run_id INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL CHECK (count >= 1),
    PRIMARY KEY (run_id, word),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_words_count ON run_words(run_id, count DESC);
`
