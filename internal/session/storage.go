package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"videohub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStorage persists fiber sessions in the fiber_sessions table so they survive restarts.
// It satisfies fiber.Storage.
type GORMStorage struct {
	db        *gorm.DB
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	ready bool
}

// NewGORMStorage creates the session table if needed and starts a janitor removing
// expired rows every gcInterval. A non-positive gcInterval disables the janitor.
//
// The returned storage is usable even when err is non-nil: table creation is
// retried on every call until it succeeds, so an unreachable database at boot
// only fails the requests made while it is down.
func NewGORMStorage(db *gorm.DB, gcInterval time.Duration) (*GORMStorage, error) {
	s := &GORMStorage{
		db:   db,
		now:  time.Now,
		done: make(chan struct{}),
	}
	err := s.ensureTable()
	if gcInterval > 0 {
		go s.gcLoop(gcInterval)
	}
	return s, err
}

func (s *GORMStorage) ensureTable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.db.AutoMigrate(&models.SessionRecord{}); err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	s.ready = true
	return nil
}

// Get returns nil, nil when the session is unknown or expired.
func (s *GORMStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	if err := s.ensureTable(); err != nil {
		return nil, err
	}
	var rec models.SessionRecord
	err := s.db.First(&rec, "id = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if rec.ExpiresAt != 0 && rec.ExpiresAt <= s.now().Unix() {
		return nil, nil
	}
	return rec.Data, nil
}

// Set upserts the session with a fresh expiry; exp <= 0 stores it without one.
func (s *GORMStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.ensureTable(); err != nil {
		return err
	}
	rec := models.SessionRecord{ID: key, Data: val}
	if exp > 0 {
		rec.ExpiresAt = s.now().Add(exp).Unix()
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *GORMStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := s.ensureTable(); err != nil {
		return err
	}
	if err := s.db.Delete(&models.SessionRecord{}, "id = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Reset removes every stored session.
func (s *GORMStorage) Reset() error {
	if err := s.ensureTable(); err != nil {
		return err
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SessionRecord{}).Error; err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}
	return nil
}

// Close stops the janitor. The database handle is owned by the caller.
func (s *GORMStorage) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// DeleteExpired removes rows whose expiry has passed and reports how many.
func (s *GORMStorage) DeleteExpired() (int64, error) {
	if err := s.ensureTable(); err != nil {
		return 0, err
	}
	res := s.db.Where("expires_at <> 0 AND expires_at <= ?", s.now().Unix()).Delete(&models.SessionRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GORMStorage) gcLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n, err := s.DeleteExpired(); err != nil {
				log.Printf("Session GC failed: %v", err)
			} else if n > 0 {
				log.Printf("Session GC removed %d expired sessions", n)
			}
		}
	}
}
