package timeline

import (
	"time"

	"github.com/sandeepkv93/lifegrid/internal/model"
)

// Level is the completion intensity of a single day.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelComplete
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	case LevelComplete:
		return "complete"
	default:
		return "none"
	}
}

// LevelFor buckets a completion ratio. The thresholds are ==1, >=0.75,
// >=0.5 and >0, so one of two done is MEDIUM.
func LevelFor(total, completed int) Level {
	if total <= 0 {
		return LevelNone
	}
	rate := float64(completed) / float64(total)
	switch {
	case rate == 1:
		return LevelComplete
	case rate >= 0.75:
		return LevelHigh
	case rate >= 0.5:
		return LevelMedium
	case rate > 0:
		return LevelLow
	default:
		return LevelNone
	}
}

func Classify(day time.Time, todos []model.Todo) Level {
	return ClassifyKey(model.DayKeyOf(day), todos)
}

func ClassifyKey(key model.DayKey, todos []model.Todo) Level {
	total, completed := 0, 0
	for _, t := range todos {
		if t.Date != key {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return LevelFor(total, completed)
}

type Counts struct {
	Total     int
	Completed int
}

// Index pre-aggregates todos per day so a full grid can be classified in one
// pass over the collection.
type Index map[model.DayKey]Counts

func NewIndex(todos []model.Todo) Index {
	idx := make(Index)
	for _, t := range todos {
		c := idx[t.Date]
		c.Total++
		if t.Completed {
			c.Completed++
		}
		idx[t.Date] = c
	}
	return idx
}

func (idx Index) Level(key model.DayKey) Level {
	c := idx[key]
	return LevelFor(c.Total, c.Completed)
}

// Band places a day relative to today.
type Band int

const (
	BandPast Band = iota
	BandToday
	BandFuture
)

func BandOf(day, today time.Time) Band {
	switch n := DaysBetween(today, day); {
	case n < 0:
		return BandPast
	case n == 0:
		return BandToday
	default:
		return BandFuture
	}
}

// Tier is the rendering class of a grid cell.
type Tier int

const (
	TierEmpty Tier = iota
	TierLevel1
	TierLevel2
	TierLevel3
	TierLevel4
	TierToday
	TierFuture
)

// TierFor resolves the temporal band first. Activity only colours past days.
func TierFor(day, today time.Time, idx Index) Tier {
	switch BandOf(day, today) {
	case BandToday:
		return TierToday
	case BandFuture:
		return TierFuture
	}
	switch idx.Level(model.DayKeyOf(day)) {
	case LevelComplete:
		return TierLevel4
	case LevelHigh:
		return TierLevel3
	case LevelMedium:
		return TierLevel2
	case LevelLow:
		return TierLevel1
	default:
		return TierEmpty
	}
}
