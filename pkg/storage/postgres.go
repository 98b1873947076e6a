package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Postgres is a Backend stored in a single key-value table, for deployments
// that want the clinic data behind a server database instead of local disk.
type Postgres struct {
	db *sql.DB
}

// NewPostgres connects to the database at dsn and ensures the table exists
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS clinica_kv (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Get retrieves the value stored under key
func (p *Postgres) Get(key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(`SELECT value FROM clinica_kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value
func (p *Postgres) Put(key string, value []byte) error {
	query := `
		INSERT INTO clinica_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key and reports whether it existed
func (p *Postgres) Delete(key string) (bool, error) {
	result, err := p.db.Exec(`DELETE FROM clinica_kv WHERE key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete key %q: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// List returns all pairs whose key starts with prefix, in key order.
// Collection prefixes never contain LIKE metacharacters.
func (p *Postgres) List(prefix string) ([]KV, error) {
	rows, err := p.db.Query(
		`SELECT key, value FROM clinica_kv WHERE key LIKE $1 || '%' ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []KV
	for rows.Next() {
		var kv KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, kv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}
