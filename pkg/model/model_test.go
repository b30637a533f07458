//nolint:lll,funlen // test code
package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"gotest.tools/v3/assert"
)

func TestNextSessionNumber(t *testing.T) {
	sessions := []*Session{
		{SessionType: SessionTypeFP1, SessionNumber: 1},
		{SessionType: SessionTypeFP1, SessionNumber: 3},
		{SessionType: SessionTypeQualify, SessionNumber: 1},
	}
	tests := []struct {
		name string
		t    SessionType
		want int
	}{
		{name: "existing type", t: SessionTypeFP1, want: 4},
		{name: "single existing", t: SessionTypeQualify, want: 2},
		{name: "new type", t: SessionTypeRace1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NextSessionNumber(sessions, tt.t), tt.want)
		})
	}
	assert.Equal(t, NextSessionNumber(nil, SessionTypeTest), 1)
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-05-01T10:00:00Z", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T10:00:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01T10:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{in: "01.05.2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrValidation))
				return
			}
			assert.NilError(t, err)
			assert.Assert(t, got.Time().Equal(tt.want), "got %v", got.Time())
		})
	}
}

func TestRaceEventPatch(t *testing.T) {
	base := func() *RaceEvent {
		return &RaceEvent{
			ID: 1, Name: "24h", Track: "Spa",
			TrackLength: lo.ToPtr(7.004),
			DateStart:   time.Date(2024, 6, 29, 16, 0, 0, 0, time.UTC),
			DateEnd:     time.Date(2024, 6, 30, 16, 0, 0, 0, time.UTC),
			Weather:     lo.ToPtr("dry"),
		}
	}
	tests := []struct {
		name string
		body string
		want func(e *RaceEvent)
	}{
		{name: "empty patch", body: `{}`, want: func(e *RaceEvent) {}},
		{
			name: "name only",
			body: `{"name":"12h"}`,
			want: func(e *RaceEvent) { e.Name = "12h" },
		},
		{
			name: "explicit null clears",
			body: `{"weather":null,"track_length":null}`,
			want: func(e *RaceEvent) { e.Weather = nil; e.TrackLength = nil },
		},
		{
			name: "value replaces nullable field",
			body: `{"weather":"wet","notes":"rain expected"}`,
			want: func(e *RaceEvent) { e.Weather = lo.ToPtr("wet"); e.Notes = lo.ToPtr("rain expected") },
		},
		{
			name: "dates",
			body: `{"date_start":"2024-06-29T15:00:00"}`,
			want: func(e *RaceEvent) { e.DateStart = time.Date(2024, 6, 29, 15, 0, 0, 0, time.UTC) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p RaceEventPatch
			assert.NilError(t, json.Unmarshal([]byte(tt.body), &p))
			got := base()
			p.Apply(got)
			want := base()
			tt.want(want)
			assert.DeepEqual(t, got, want)
		})
	}
}

func TestSessionPatchValidate(t *testing.T) {
	var p SessionPatch
	assert.NilError(t, json.Unmarshal([]byte(`{"session_type":"FP9"}`), &p))
	assert.Assert(t, errors.Is(p.Validate(), ErrValidation))

	p = SessionPatch{}
	assert.NilError(t, json.Unmarshal([]byte(`{"session_status":"SC","duration":45}`), &p))
	assert.NilError(t, p.Validate())
	s := &Session{SessionType: SessionTypeFP1, SessionNumber: 2}
	p.Apply(s)
	assert.Equal(t, *s.SessionStatus, StatusSafetyCar)
	assert.Equal(t, *s.Duration, 45)
	assert.Equal(t, s.SessionNumber, 2)
}

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		v       interface{ Validate() error }
		wantErr bool
	}{
		{name: "event ok", v: &RaceEventInput{Name: "n", Track: "t", DateStart: DateTime(time.Now()), DateEnd: DateTime(time.Now())}},
		{name: "event without track", v: &RaceEventInput{Name: "n", DateStart: DateTime(time.Now()), DateEnd: DateTime(time.Now())}, wantErr: true},
		{name: "event without dates", v: &RaceEventInput{Name: "n", Track: "t"}, wantErr: true},
		{name: "session ok", v: &SessionInput{SessionType: SessionTypeFP2}},
		{name: "session without type", v: &SessionInput{}, wantErr: true},
		{name: "session unknown status", v: &SessionInput{SessionType: SessionTypeFP2, SessionStatus: lo.ToPtr(SessionStatus("XX"))}, wantErr: true},
		{name: "session number zero", v: &SessionInput{SessionType: SessionTypeFP2, SessionNumber: lo.ToPtr(0)}, wantErr: true},
		{name: "lap ok", v: &LapInput{LapNumber: lo.ToPtr(1)}},
		{name: "lap without number", v: &LapInput{}, wantErr: true},
		{name: "tire ok", v: &TireDataInput{TirePosition: TireRearLeft}},
		{name: "tire bad position", v: &TireDataInput{TirePosition: "XX"}, wantErr: true},
		{name: "engine negative rpm", v: &EngineDataInput{RpmLimit: lo.ToPtr(-1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrValidation), "got %v", err)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}
