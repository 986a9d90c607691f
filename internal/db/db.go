// Package db implements the record store on database/sql. SQLite is the
// default backend and gets its schema bootstrapped from the embedded
// schema file; setting CELLPLAN_DB_URL switches to Postgres, whose schema
// is expected to be managed by whoever runs the shared instance.
package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrNotFound indicates a point lookup that matched no record.
var ErrNotFound = errors.New("record not found")

// DB wraps the database connection.
type DB struct {
	*sql.DB
	driver string
}

// New opens the store. CELLPLAN_DB_URL selects Postgres; otherwise a local
// SQLite file is used, at CELLPLAN_DB_PATH when set or under the XDG data
// directory by default.
func New() (*DB, error) {
	if dsn := os.Getenv("CELLPLAN_DB_URL"); dsn != "" {
		return Open("postgres", dsn)
	}

	dbPath := os.Getenv("CELLPLAN_DB_PATH")
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return Open("sqlite3", dbPath+"?_foreign_keys=on")
}

// Open opens the store on an explicit driver and DSN. Tests use
// Open("sqlite3", ":memory:").
func Open(driver, dsn string) (*DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: conn, driver: driver}
	if driver == "sqlite3" {
		if _, err := conn.Exec(schema); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return db, nil
}

// defaultDBPath returns the path to the local database file.
func defaultDBPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "cellplan")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "cellplan.db"), nil
}

// rebind rewrites ? placeholders into the $n form Postgres expects.
// Queries in this package are written with ? throughout.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (db *DB) exec(query string, args ...any) (sql.Result, error) {
	return db.DB.Exec(db.rebind(query), args...)
}

func (db *DB) query(query string, args ...any) (*sql.Rows, error) {
	return db.DB.Query(db.rebind(query), args...)
}

func (db *DB) queryRow(query string, args ...any) *sql.Row {
	return db.DB.QueryRow(db.rebind(query), args...)
}

// insertID runs an INSERT and returns the generated id. Postgres has no
// LastInsertId, so the query gains a RETURNING clause there.
func (db *DB) insertID(query string, args ...any) (int64, error) {
	if db.driver == "postgres" {
		var id int64
		err := db.queryRow(query+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	result, err := db.exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
