// Package store persists contract state in a bbolt database.
package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/davinharding/advanced-NFT-contract/pkg/contract"
)

var (
	bucketState = []byte("state")

	keyContract = []byte("contract")
)

// ErrNoState indicates the database holds no saved contract state.
var ErrNoState = errors.New("no saved contract state")

// Store wraps a bbolt database holding a serialized contract state dump.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath. The parent directory
// is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveState writes a contract state dump, replacing any previous one.
func (s *Store) SaveState(dump *contract.StateDump) error {
	if dump == nil {
		return errors.New("store: nil state dump")
	}

	data, err := encodeGob(dump)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketState).Put(keyContract, data); err != nil {
			return fmt.Errorf("store: put state: %w", err)
		}
		return nil
	})
}

// LoadState reads the saved contract state dump. It returns ErrNoState when
// nothing has been saved yet.
func (s *Store) LoadState() (*contract.StateDump, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketState).Get(keyContract)
		if v == nil {
			return ErrNoState
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dump := new(contract.StateDump)
	if err := decodeGob(data, dump); err != nil {
		return nil, fmt.Errorf("store: decode state: %w", err)
	}
	return dump, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
