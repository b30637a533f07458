package migrate

import (
	"testing"

	"gotest.tools/v3/assert"
)

func Test_toDriverURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgresql://u:p@localhost:5432/res", "pgx5://u:p@localhost:5432/res"},
		{"postgres://u:p@db/res?sslmode=disable", "pgx5://u:p@db/res?sslmode=disable"},
		{"pgx5://u:p@db/res", "pgx5://u:p@db/res"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, toDriverURL(tt.in), tt.want)
		})
	}
}
