package database

import (
	"github.com/upper/db/v4"
	"vincit.fi/photo-triage/api"
	"vincit.fi/photo-triage/common/logger"
)

// IdentifierStore keeps named, ordered lists of identifiers. A list
// that was Set to an empty slice still exists; Remove deletes it.
type IdentifierStore struct {
	database   *Database
	collection db.Collection

	api.IdentifierStore
}

func NewIdentifierStore(database *Database) *IdentifierStore {
	return &IdentifierStore{
		database: database,
	}
}

func (s *IdentifierStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("identifier")
	}
	return s.collection
}

func (s *IdentifierStore) Set(key string, identifiers []string) error {
	logger.Trace.Printf("Storing %d identifiers for '%s'", len(identifiers), key)
	return s.getCollection().Session().Tx(func(session db.Session) error {
		if _, err := session.SQL().Exec(`
			INSERT INTO identifier_list (list_key) VALUES (?)
			ON CONFLICT(list_key) DO NOTHING
		`, key); err != nil {
			return err
		}
		if _, err := session.SQL().Exec(`DELETE FROM identifier WHERE list_key = ?`, key); err != nil {
			return err
		}

		statement, err := session.SQL().Prepare(`INSERT INTO identifier (list_key, position, value) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer statement.Close()

		for position, identifier := range identifiers {
			if _, err := statement.Exec(key, position, identifier); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *IdentifierStore) Get(key string) ([]string, bool, error) {
	session := s.getCollection().Session()
	if count, err := session.Collection("identifier_list").Find(db.Cond{"list_key": key}).Count(); err != nil {
		return nil, false, err
	} else if count == 0 {
		return nil, false, nil
	}

	var values []identifierValue
	err := session.SQL().
		Select("value").
		From("identifier").
		Where("list_key = ?", key).
		OrderBy("position").
		All(&values)
	if err != nil {
		return nil, false, err
	}

	identifiers := make([]string, len(values))
	for i, value := range values {
		identifiers[i] = value.Value
	}
	return identifiers, true, nil
}

func (s *IdentifierStore) Remove(key string) error {
	logger.Debug.Printf("Removing identifier list '%s'", key)
	return s.getCollection().Session().Tx(func(session db.Session) error {
		if _, err := session.SQL().Exec(`DELETE FROM identifier WHERE list_key = ?`, key); err != nil {
			return err
		}
		_, err := session.SQL().Exec(`DELETE FROM identifier_list WHERE list_key = ?`, key)
		return err
	})
}
