package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinLifeExpectancy     = 50
	MaxLifeExpectancy     = 120
	DefaultLifeExpectancy = 80

	MinOpacity     = 0.1
	MaxOpacity     = 1.0
	DefaultOpacity = 0.9
	OpacityStep    = 0.05
)

var ErrOutOfRange = errors.New("model: value out of range")

type Settings struct {
	Birthdate      time.Time
	LifeExpectancy int
	Opacity        float64
}

func DefaultBirthdate() time.Time {
	return time.Date(1990, time.January, 1, 0, 0, 0, 0, time.Local)
}

func DefaultSettings() Settings {
	return Settings{
		Birthdate:      DefaultBirthdate(),
		LifeExpectancy: DefaultLifeExpectancy,
		Opacity:        DefaultOpacity,
	}
}

func ValidateLifeExpectancy(years int) error {
	if years < MinLifeExpectancy || years > MaxLifeExpectancy {
		return fmt.Errorf("%w: life expectancy %d not in [%d, %d]", ErrOutOfRange, years, MinLifeExpectancy, MaxLifeExpectancy)
	}
	return nil
}

func ValidateOpacity(v float64) error {
	// Small tolerance so stepped values like 0.1 + n*0.05 stay in range.
	const eps = 1e-9
	if v < MinOpacity-eps || v > MaxOpacity+eps {
		return fmt.Errorf("%w: opacity %.2f not in [%.1f, %.1f]", ErrOutOfRange, v, MinOpacity, MaxOpacity)
	}
	return nil
}

func ValidateBirthdate(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: birthdate is required", ErrOutOfRange)
	}
	return nil
}

func (s Settings) Validate() error {
	if err := ValidateBirthdate(s.Birthdate); err != nil {
		return err
	}
	if err := ValidateLifeExpectancy(s.LifeExpectancy); err != nil {
		return err
	}
	return ValidateOpacity(s.Opacity)
}
