package dailyevent

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

const DOCUMENT_NAME = "events.json"

var (
	ErrInvalidTime     = errors.New("daily event time must be in HH:MM format")
	ErrInvalidTimezone = errors.New("unknown daily event timezone")
	ErrChannelNotSet   = errors.New("daily event channel is not set")
)

type DailyEvent struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Timezone string `json:"timezone,omitempty"`
	Channel  string `json:"channel"`
	Message  string `json:"message"`
	Enabled  bool   `json:"enabled"`
}

// Document is the persisted list of daily events.
type Document struct {
	DailyEvents []DailyEvent `json:"dailyEvents"`
}

func (e DailyEvent) Validate() error {
	if e.Channel == "" {
		return ErrChannelNotSet
	}
	if _, _, err := e.clock(); err != nil {
		return err
	}
	if _, err := e.location(); err != nil {
		return err
	}
	return nil
}

// NextFrom returns the first wall-clock occurrence of the event strictly after now.
func (e DailyEvent) NextFrom(now time.Time) (time.Time, error) {
	hour, minute, err := e.clock()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := e.location()
	if err != nil {
		return time.Time{}, err
	}

	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = carbon.Time2Carbon(next).AddDay().Carbon2Time().In(loc)
	}
	return next, nil
}

func (e DailyEvent) TimezoneOrDefault() string {
	if e.Timezone == "" {
		return "UTC"
	}
	return e.Timezone
}

func (e DailyEvent) clock() (hour int, minute int, err error) {
	parts := strings.SplitN(e.Time, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

func (e DailyEvent) location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.TimezoneOrDefault())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, e.Timezone)
	}
	return loc, nil
}
