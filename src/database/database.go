package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/whisperchain/whisperchain/src/logging"
)

var (
	log = logging.Log
)

type database struct {
	name     string
	db       *sql.DB
	fileLock *flock.Flock
}

// open will open the database for transactions by first aquiring a filelock.
func open(ctx context.Context, fileName string) (d *database, err error) {
	d = new(database)
	d.name = fileName

	// obtain a lock on the database
	d.fileLock = flock.New(d.name + ".lock")
	locked, err := d.fileLock.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil {
		return nil, errors.Wrap(err, "locking "+d.name)
	}
	if !locked {
		return nil, errors.Errorf("could not lock %s", d.name)
	}

	// open sqlite3 database
	d.db, err = sql.Open("sqlite3", d.name)
	if err != nil {
		d.fileLock.Unlock()
		return nil, errors.Wrap(err, "open")
	}

	err = d.MakeTables()
	if err != nil {
		d.Close()
		return nil, err
	}
	return
}

// Close will close the database connection and release the filelock.
func (d *database) Close() (err error) {
	// the lock file stays: removing it would let a waiting process and a
	// new one lock different files
	err = d.fileLock.Unlock()
	if err != nil {
		log.Error(err)
	}
	// close database
	err2 := d.db.Close()
	if err2 != nil {
		err = err2
		log.Error(err)
	}
	return
}

// MakeTables creates the `keystore` table if it is missing:
//
//	BUCKET_KEY (TEXT)	VALUE (TEXT)
//
// Every collection is one row, so replacing a collection is a single
// statement inside a transaction.
func (d *database) MakeTables() (err error) {
	sqlStmt := `create table if not exists keystore (bucket_key text not null primary key, value text);`
	_, err = d.db.Exec(sqlStmt)
	if err != nil {
		err = errors.Wrap(err, "MakeTables")
	}
	return
}

// Get will retrieve the raw value associated with a key. A key that was
// never written returns a nil value and no error.
func (d *database) Get(ctx context.Context, key string) (value []byte, err error) {
	stmt, err := d.db.PrepareContext(ctx, "select value from keystore where bucket_key = ?")
	if err != nil {
		return nil, errors.Wrap(err, "problem preparing SQL")
	}
	defer stmt.Close()
	var result string
	err = stmt.QueryRowContext(ctx, key).Scan(&result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "problem getting key")
	}
	return []byte(result), nil
}

// Set will replace the value of a key.
func (d *database) Set(ctx context.Context, key string, value []byte) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "Set")
	}
	stmt, err := tx.PrepareContext(ctx, "insert or replace into keystore(bucket_key,value) values (?, ?)")
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "Set")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, key, string(value))
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "Set")
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrap(err, "Set")
	}
	return
}
