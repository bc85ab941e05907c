package store

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    source TEXT,
    recorded_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transaction_items (
    transaction_id TEXT NOT NULL,
    item TEXT NOT NULL,
    PRIMARY KEY (transaction_id, item),
    FOREIGN KEY (transaction_id) REFERENCES transactions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_txn_recorded ON transactions(recorded_at);
CREATE INDEX IF NOT EXISTS idx_txn_items_item ON transaction_items(item);
`
