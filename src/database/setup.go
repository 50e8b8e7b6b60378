package database

import (
	"context"
	"time"
)

// Database is the sqlite backed Store. It holds no connection: each call
// opens the file under the lock and closes it again, so several processes
// can share one data directory.
type Database struct {
	name string
}

func Setup(fileName string) *Database {
	return &Database{name: fileName}
}

func (d *Database) Get(ctx context.Context, collection string) (value []byte, err error) {
	defer timeTrack(time.Now(), "Get "+collection)
	db, err := open(ctx, d.name)
	if err != nil {
		return
	}
	defer db.Close()
	return db.Get(ctx, collection)
}

func (d *Database) Set(ctx context.Context, collection string, value []byte) (err error) {
	defer timeTrack(time.Now(), "Set "+collection)
	db, err := open(ctx, d.name)
	if err != nil {
		return
	}
	defer db.Close()
	return db.Set(ctx, collection, value)
}

func (d *Database) Close() error {
	return nil
}

func timeTrack(start time.Time, name string) {
	log.Debugf("%s took %s", name, time.Since(start))
}
