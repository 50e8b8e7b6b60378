package database

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/pkg/errors"
)

// The two collections of the wall.
const (
	Whispers = "whispers"
	Blobs    = "blobs"
)

// Store keeps one whole value per collection. Get returns a nil value for a
// collection that was never written. Set replaces the value in one step, a
// reader never sees half of it.
type Store interface {
	Get(ctx context.Context, collection string) ([]byte, error)
	Set(ctx context.Context, collection string, value []byte) error
	Close() error
}

// Load decodes a collection into v, which must be a non-nil pointer.
//
// A collection that was never written leaves v untouched. So does a stored
// value that does not decode: it is logged and read as empty rather than
// failing the caller. Only errors from the backend itself are returned.
func Load(ctx context.Context, s Store, collection string, v interface{}) (err error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("Load needs a non-nil pointer")
	}

	b, err := s.Get(ctx, collection)
	if err != nil {
		return errors.Wrapf(err, "loading %s", collection)
	}
	if len(b) == 0 {
		return nil
	}

	fresh := reflect.New(rv.Elem().Type())
	if err = json.Unmarshal(b, fresh.Interface()); err != nil {
		log.Warnf("collection %s is malformed, reading it as empty: %s", collection, err)
		return nil
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

// Save encodes v and replaces the collection with it.
func Save(ctx context.Context, s Store, collection string, v interface{}) (err error) {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", collection)
	}
	err = s.Set(ctx, collection, b)
	if err != nil {
		err = errors.Wrapf(err, "saving %s", collection)
	}
	return
}
