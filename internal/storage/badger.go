package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"bookingcal/internal/domain"
)

// BadgerRepository implements the Repository interface using BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.Info("BadgerDB opened successfully at path: ", dbPath)

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the BadgerDB database connection.
func (r *BadgerRepository) Close() error {
	r.log.Info("Closing BadgerDB...")
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	r.log.Info("BadgerDB closed.")
	return nil
}

// Format: user:{userID}:pending:{id}
func pendingKey(userID int64, id string) []byte {
	return []byte(fmt.Sprintf("user:%d:pending:%s", userID, id))
}

// Format: user:{userID}:event:{id}
func eventKey(userID int64, id string) []byte {
	return []byte(fmt.Sprintf("user:%d:event:%s", userID, id))
}

func eventPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("user:%d:event:", userID))
}

// SavePending stores or replaces a pending event.
func (r *BadgerRepository) SavePending(ctx context.Context, pending domain.PendingEvent, ttl time.Duration) error {
	log := r.log.WithFields(logrus.Fields{
		"user_id":    pending.UserID,
		"pending_id": pending.ID,
	})

	if pending.CreatedAt.IsZero() {
		pending.CreatedAt = time.Now()
	}
	data, err := json.Marshal(pending)
	if err != nil {
		log.WithError(err).Error("Failed to marshal pending event")
		return fmt.Errorf("failed to marshal pending event: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(pendingKey(pending.UserID, pending.ID), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		log.WithError(err).Error("Failed to save pending event to BadgerDB")
		return fmt.Errorf("failed to save pending event: %w", err)
	}

	log.WithField("ttl", ttl).Debug("Pending event saved")
	return nil
}

// GetPending loads a pending event.
func (r *BadgerRepository) GetPending(ctx context.Context, userID int64, id string) (domain.PendingEvent, error) {
	var pending domain.PendingEvent
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pendingKey(userID, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pending)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.PendingEvent{}, domain.ErrPendingNotFound
	}
	if err != nil {
		r.log.WithError(err).WithField("pending_id", id).Error("Failed to load pending event")
		return domain.PendingEvent{}, fmt.Errorf("failed to get pending event %s: %w", id, err)
	}
	return pending, nil
}

// DeletePending removes a pending event.
func (r *BadgerRepository) DeletePending(ctx context.Context, userID int64, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(pendingKey(userID, id))
	})
	if err != nil {
		r.log.WithError(err).WithField("pending_id", id).Error("Failed to delete pending event")
		return fmt.Errorf("failed to delete pending event %s for user %d: %w", id, userID, err)
	}
	return nil
}

// SaveEvent stores or updates an accepted event.
func (r *BadgerRepository) SaveEvent(ctx context.Context, event domain.SavedEvent) error {
	log := r.log.WithFields(logrus.Fields{
		"user_id":  event.UserID,
		"event_id": event.ID,
	})
	log.Info("Attempting to save event")

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("Failed to marshal event to JSON")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(eventKey(event.UserID, event.ID), data))
	})
	if err != nil {
		log.WithError(err).Error("Failed to save event to BadgerDB")
		return fmt.Errorf("failed to save event: %w", err)
	}

	log.Info("Event saved successfully")
	return nil
}

// GetEventsByUser retrieves all accepted events for a user.
func (r *BadgerRepository) GetEventsByUser(ctx context.Context, userID int64) ([]domain.SavedEvent, error) {
	log := r.log.WithField("user_id", userID)

	var events []domain.SavedEvent
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := eventPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var event domain.SavedEvent
				if err := json.Unmarshal(val, &event); err != nil {
					return fmt.Errorf("failed to unmarshal event data for key %s: %w", string(item.Key()), err)
				}
				events = append(events, event)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to retrieve events from BadgerDB")
		return nil, fmt.Errorf("failed to get events for user %d: %w", userID, err)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	log.WithField("event_count", len(events)).Debug("Events retrieved")
	return events, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
