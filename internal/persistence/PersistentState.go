package persistence

import (
	"errors"
	"fmt"
	"os"
	"powerevents/internal/models"
	"powerevents/internal/providers"
	"sync"
	"time"
)

var (
	ErrCorruptRecord = errors.New("persistent record is corrupted")
	ErrNonMonotonic  = errors.New("alive instant is not after the previous one")
)

type PersistentStateInterface interface {
	GetOrCreate() (models.PowerRecord, error)
	UpdateStart(instant time.Time) (models.PowerRecord, error)
	UpdateLastAlive(instant time.Time) (models.PowerRecord, error)
	Snapshot() models.PowerRecord
}

// PersistentState owns the boot/alive record. Every update rewrites the whole
// record through the medium, so a write that fails is healed by the next
// successful one.
type PersistentState struct {
	mu      sync.Mutex
	medium  MediumInterface
	metrics providers.MetricsProviderInterface
	current models.PowerRecord
	loaded  bool
}

// GetOrCreate returns the stored record, creating a zero record when none exists.
// On an unreadable or corrupted medium it returns the zero record alongside the error;
// the record is still usable as the first-run state.
func (s *PersistentState) GetOrCreate() (models.PowerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.current, nil
	}

	data, err := s.medium.Load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.write(models.PowerRecord{}); err != nil {
			return models.PowerRecord{}, fmt.Errorf("create record %s: %w", s.medium.Path(), err)
		}
		s.current = models.PowerRecord{}
		s.loaded = true
		return s.current, nil
	case err != nil:
		return models.PowerRecord{}, fmt.Errorf("read record %s: %w", s.medium.Path(), err)
	}

	rec, err := models.UnmarshalRecord(data)
	s.loaded = true
	if err != nil {
		s.current = models.PowerRecord{}
		return s.current, fmt.Errorf("%w: %s: %w", ErrCorruptRecord, s.medium.Path(), err)
	}
	s.current = rec
	return s.current, nil
}

// UpdateStart records the boot instant of the current run and clears the alive field.
func (s *PersistentState) UpdateStart(instant time.Time) (models.PowerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.PowerRecord{LastBootTime: models.Millis(instant)}
	s.loaded = true
	return s.current, s.write(s.current)
}

func (s *PersistentState) UpdateLastAlive(instant time.Time) (models.PowerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := models.Millis(instant)
	if ms <= s.current.LastAliveTime {
		return s.current, fmt.Errorf("%w: %d <= %d", ErrNonMonotonic, ms, s.current.LastAliveTime)
	}

	s.current.LastAliveTime = ms
	return s.current, s.write(s.current)
}

func (s *PersistentState) Snapshot() models.PowerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// write must be called with s.mu held.
func (s *PersistentState) write(rec models.PowerRecord) error {
	start := time.Now()
	data, err := models.MarshalRecord(rec)
	if err != nil {
		return err
	}
	if err := s.medium.Store(data); err != nil {
		return fmt.Errorf("store record %s: %w", s.medium.Path(), err)
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewPersistentState(medium MediumInterface, metrics providers.MetricsProviderInterface) PersistentStateInterface {
	return &PersistentState{
		medium:  medium,
		metrics: metrics,
	}
}
