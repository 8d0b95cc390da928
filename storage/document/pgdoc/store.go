// Package pgdoc persists the document as a single JSONB row in Postgres.
// The document-replace contract is unchanged: Save upserts the whole blob,
// Load reads it back; there is no per-field SQL.
package pgdoc

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/trezcool/housepoints/core/school"
)

const (
	schemaSQL = `
CREATE TABLE IF NOT EXISTS school_document (
    id         int PRIMARY KEY CHECK (id = 1),
    data       jsonb NOT NULL,
    updated_at timestamptz NOT NULL
);`

	loadSQL = `SELECT data FROM school_document WHERE id = 1;`

	saveSQL = `
INSERT INTO school_document (id, data, updated_at) VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;`
)

type Store struct {
	db *sqlx.DB
}

var _ school.Store = (*Store)(nil)

// Open connects and bootstraps the single-row table.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "bootstrapping schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the document row. No row yet yields an empty document.
func (s *Store) Load() (school.Document, error) {
	var doc school.Document
	var data []byte
	if err := s.db.Get(&data, loadSQL); err != nil {
		if err == sql.ErrNoRows {
			return doc, nil
		}
		return doc, errors.Wrap(err, "reading document row")
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, errors.Wrap(err, "parsing document row")
	}
	return doc, nil
}

func (s *Store) Save(doc school.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	_, err = s.db.Exec(saveSQL, data, time.Now().UTC())
	return errors.Wrap(err, "writing document row")
}
