package model

import (
	"errors"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if got := s.Birthdate.Format(DayKeyLayout); got != "1990-01-01" {
		t.Fatalf("unexpected default birthdate: %s", got)
	}
	if s.LifeExpectancy != 80 || s.Opacity != 0.9 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSettingsRanges(t *testing.T) {
	cases := []struct {
		name    string
		years   int
		opacity float64
		wantErr bool
	}{
		{"lower bounds", 50, 0.1, false},
		{"upper bounds", 120, 1.0, false},
		{"years too low", 49, 0.5, true},
		{"years too high", 121, 0.5, true},
		{"opacity too low", 80, 0.05, true},
		{"opacity too high", 80, 1.05, true},
	}
	for _, tc := range cases {
		s := DefaultSettings()
		s.LifeExpectancy = tc.years
		s.Opacity = tc.opacity
		err := s.Validate()
		if tc.wantErr && !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("%s: expected ErrOutOfRange, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
