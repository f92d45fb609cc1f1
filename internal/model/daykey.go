package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DayKeyLayout    = "2006-01-02"
	AlarmTimeLayout = "15:04"
)

var (
	ErrInvalidDayKey    = errors.New("model: invalid day key")
	ErrInvalidAlarmTime = errors.New("model: invalid alarm time")
)

// DayKey is the canonical YYYY-MM-DD identifier of a local calendar day.
type DayKey string

func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(DayKeyLayout))
}

func ParseDayKey(raw string) (DayKey, error) {
	raw = strings.TrimSpace(raw)
	if _, err := time.ParseInLocation(DayKeyLayout, raw, time.Local); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, raw)
	}
	return DayKey(raw), nil
}

// Time returns local midnight of the day.
func (k DayKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, string(k))
	}
	return t, nil
}

func (k DayKey) IsValid() bool {
	_, err := k.Time()
	return err == nil
}

func (k DayKey) String() string { return string(k) }

// At combines the day with an HH:MM clock time in the local zone.
func (k DayKey) At(clock string) (time.Time, error) {
	day, err := k.Time()
	if err != nil {
		return time.Time{}, err
	}
	hm, err := ParseAlarmTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, hm.Hour(), hm.Minute(), 0, 0, time.Local), nil
}

// ParseAlarmTime validates an HH:MM string. Only the hour and minute of the
// result are meaningful.
func ParseAlarmTime(raw string) (time.Time, error) {
	t, err := time.Parse(AlarmTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAlarmTime, raw)
	}
	return t, nil
}
