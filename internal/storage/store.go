package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ShowOriginalThumbnailKey selects the original thumbnail over the cached one
// when result rows are rendered.
const ShowOriginalThumbnailKey = "showOriginalThumbnail"

var settingsBucket = []byte("settings")

// ErrNotFound is returned when a setting has never been written.
var ErrNotFound = errors.New("setting not found")

// Store is a small persistent key/value settings store.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(settingsBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) put(key string, value any) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return tx.Bucket(settingsBucket).Put([]byte(key), data)
	})
}

func (s *Store) get(key string, dst any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(settingsBucket).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, dst)
	})
}

func (s *Store) SetBool(key string, value bool) error {
	if err := s.put(key, value); err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetBool(key string) (bool, error) {
	var value bool
	if err := s.get(key, &value); err != nil {
		return false, err
	}
	return value, nil
}

// Bool is the lookup used by renderers: unset or unreadable keys read as false.
func (s *Store) Bool(key string) bool {
	value, err := s.GetBool(key)
	if err != nil {
		return false
	}
	return value
}

// Toggle flips a boolean setting and returns the new value.
func (s *Store) Toggle(key string) (bool, error) {
	var next bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		var current bool
		if data := b.Get([]byte(key)); data != nil {
			if err := json.Unmarshal(data, &current); err != nil {
				return err
			}
		}
		next = !current
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return false, fmt.Errorf("toggling setting %s: %w", key, err)
	}
	return next, nil
}

// Delete removes a setting; deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Delete([]byte(key))
	})
}
