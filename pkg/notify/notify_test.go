package notify

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		prefix string
		change Change
		want   string
	}{
		{DefaultSubjectPrefix, Change{Kind: KindSession, Op: OpCreate, ID: 12}, "res.records.session.create"},
		{DefaultSubjectPrefix, Change{Kind: KindLap, Op: OpDelete, ID: 1}, "res.records.lap.delete"},
		{"team1", Change{Kind: KindEvent, Op: OpUpdate}, "team1.event.update"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, Subject(tt.prefix, tt.change), tt.want)
		})
	}
}

func TestNoop(t *testing.T) {
	Noop().Notify(context.Background(), Change{Kind: KindTire, Op: OpCreate, ID: 1})
}
