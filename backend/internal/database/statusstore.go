package database

import (
	"errors"
	"github.com/upper/db/v4"
	"time"
	"vincit.fi/photo-triage/common/logger"
)

type StatusKey string

const (
	LibraryScanned StatusKey = "library_scanned"
)

type StatusStore struct {
	database   *Database
	collection db.Collection
}

func NewStatusStore(database *Database) *StatusStore {
	return &StatusStore{
		database: database,
	}
}

func (s *StatusStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("status")
	}
	return s.collection
}

// GetTimestamp returns the zero time when the key has never been set.
func (s *StatusStore) GetTimestamp(key StatusKey) (time.Time, error) {
	var status Status
	if err := s.getCollection().Find(db.Cond{"key": key}).One(&status); err != nil {
		if errors.Is(err, db.ErrNoMoreRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	} else {
		return time.Unix(0, status.Timestamp), nil
	}
}

func (s *StatusStore) UpdateTimestamp(key StatusKey, timestamp time.Time) error {
	logger.Debug.Printf("Updating %s to %s", key, timestamp)
	_, err := s.getCollection().Session().SQL().Exec(`
		INSERT INTO status (key, timestamp) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET timestamp = excluded.timestamp
	`, key, timestamp.UnixNano())
	return err
}
