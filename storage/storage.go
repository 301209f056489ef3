package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (and migrates) the local draft database. The file plays the
// role the host webview's cloud storage plays in the browser build: a
// durable key-value area that survives restarts.
func Open(path string) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return
	}

	// db tuning options
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}
