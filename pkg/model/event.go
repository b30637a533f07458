package model

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

type RaceEvent struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Track       string    `db:"track" json:"track"`
	TrackLength *float64  `db:"track_length" json:"track_length"` // km
	DateStart   time.Time `db:"date_start" json:"date_start"`
	DateEnd     time.Time `db:"date_end" json:"date_end"`
	Weather     *string   `db:"weather" json:"weather"`
	Notes       *string   `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// RaceEventInput is used to create a new event
type RaceEventInput struct {
	Name        string   `json:"name"`
	Track       string   `json:"track"`
	TrackLength *float64 `json:"track_length"`
	DateStart   DateTime `json:"date_start"`
	DateEnd     DateTime `json:"date_end"`
	Weather     *string  `json:"weather"`
	Notes       *string  `json:"notes"`
}

// RaceEventPatch contains the fields of a partial update.
// Unset fields keep their stored value.
type RaceEventPatch struct {
	Name        omit.Val[string]      `json:"name"`
	Track       omit.Val[string]      `json:"track"`
	TrackLength omitnull.Val[float64] `json:"track_length"`
	DateStart   omit.Val[DateTime]    `json:"date_start"`
	DateEnd     omit.Val[DateTime]    `json:"date_end"`
	Weather     omitnull.Val[string]  `json:"weather"`
	Notes       omitnull.Val[string]  `json:"notes"`
}

func (in *RaceEventInput) Validate() error {
	if in.Name == "" {
		return missingField("name")
	}
	if in.Track == "" {
		return missingField("track")
	}
	if in.DateStart.IsZero() {
		return missingField("date_start")
	}
	if in.DateEnd.IsZero() {
		return missingField("date_end")
	}
	return nil
}

func (in *RaceEventInput) ToEvent() *RaceEvent {
	return &RaceEvent{
		Name:        in.Name,
		Track:       in.Track,
		TrackLength: in.TrackLength,
		DateStart:   in.DateStart.Time(),
		DateEnd:     in.DateEnd.Time(),
		Weather:     in.Weather,
		Notes:       in.Notes,
	}
}

func (p *RaceEventPatch) Apply(e *RaceEvent) {
	apply(&e.Name, p.Name)
	apply(&e.Track, p.Track)
	applyNull(&e.TrackLength, p.TrackLength)
	if v, ok := p.DateStart.Get(); ok {
		e.DateStart = v.Time()
	}
	if v, ok := p.DateEnd.Get(); ok {
		e.DateEnd = v.Time()
	}
	applyNull(&e.Weather, p.Weather)
	applyNull(&e.Notes, p.Notes)
}

func (p *RaceEventPatch) Validate() error {
	if v, ok := p.Name.Get(); ok && v == "" {
		return missingField("name")
	}
	if v, ok := p.Track.Get(); ok && v == "" {
		return missingField("track")
	}
	return nil
}
