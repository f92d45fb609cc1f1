// Package settings loads and persists the user's preferences.
package settings

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/lifegrid/internal/logging"
	"github.com/sandeepkv93/lifegrid/internal/model"
	"github.com/sandeepkv93/lifegrid/internal/storage"
)

// Store caches the current settings. Absent or invalid persisted values fall
// back to defaults; out-of-range updates are rejected without a write.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	log logging.Printer
	cur model.Settings
	err error
}

func New(kv storage.KV, log logging.Printer) *Store {
	if log == nil {
		log = logging.Discard
	}
	return &Store{kv: kv, log: log, cur: model.DefaultSettings()}
}

// Load reads every key. Read errors are returned after the defaults have
// been applied for the affected keys.
func (s *Store) Load(ctx context.Context) error {
	loaded := model.DefaultSettings()
	var errs []error

	var rawBirth string
	if ok, err := s.kv.Get(ctx, storage.KeyBirthdate, &rawBirth); err != nil {
		errs = append(errs, err)
	} else if ok {
		if t, err := ParseBirthdate(rawBirth); err != nil {
			s.log.Printf("birthdate %q: %v, using default", rawBirth, err)
		} else {
			loaded.Birthdate = t
		}
	}

	var years int
	if ok, err := s.kv.Get(ctx, storage.KeyLifeExpectancy, &years); err != nil {
		errs = append(errs, err)
	} else if ok {
		if err := model.ValidateLifeExpectancy(years); err != nil {
			s.log.Printf("%v, using default", err)
		} else {
			loaded.LifeExpectancy = years
		}
	}

	var opacity float64
	if ok, err := s.kv.Get(ctx, storage.KeyOpacity, &opacity); err != nil {
		errs = append(errs, err)
	} else if ok {
		if err := model.ValidateOpacity(opacity); err != nil {
			s.log.Printf("%v, using default", err)
		} else {
			loaded.Opacity = opacity
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.Printf("load settings: %v", err)
	}
	s.mu.Lock()
	s.cur = loaded
	s.err = err
	s.mu.Unlock()
	return err
}

func (s *Store) Get() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) SetBirthdate(ctx context.Context, t time.Time) bool {
	if err := model.ValidateBirthdate(t); err != nil {
		s.log.Printf("reject birthdate: %v", err)
		return false
	}
	y, m, d := t.Date()
	t = time.Date(y, m, d, 0, 0, 0, 0, time.Local)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Birthdate = t
	s.err = nil
	s.writeLocked(ctx, storage.KeyBirthdate, FormatBirthdate(t))
	return true
}

func (s *Store) SetLifeExpectancy(ctx context.Context, years int) bool {
	if err := model.ValidateLifeExpectancy(years); err != nil {
		s.log.Printf("reject life expectancy: %v", err)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.LifeExpectancy = years
	s.err = nil
	s.writeLocked(ctx, storage.KeyLifeExpectancy, years)
	return true
}

// SetOpacity stores v rounded to two decimals.
func (s *Store) SetOpacity(ctx context.Context, v float64) bool {
	v = math.Round(v*100) / 100
	if err := model.ValidateOpacity(v); err != nil {
		s.log.Printf("reject opacity: %v", err)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Opacity = v
	s.err = nil
	s.writeLocked(ctx, storage.KeyOpacity, v)
	return true
}

// Save writes all three keys.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.writeLocked(ctx, storage.KeyBirthdate, FormatBirthdate(s.cur.Birthdate))
	s.writeLocked(ctx, storage.KeyLifeExpectancy, s.cur.LifeExpectancy)
	s.writeLocked(ctx, storage.KeyOpacity, s.cur.Opacity)
	return s.err
}

func (s *Store) writeLocked(ctx context.Context, key string, value any) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.log.Printf("persist %s: %v", key, err)
		s.err = err
	}
}

func FormatBirthdate(t time.Time) string {
	return t.Format(model.DayKeyLayout)
}

// ParseBirthdate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns
// local midnight of that date.
func ParseBirthdate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(model.DayKeyLayout, raw, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
}
