package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelSatisfies(t *testing.T) {
	cases := []struct {
		name     string
		level    Level
		required Level
		want     bool
	}{
		{"equal levels allow", 2, 2, true},
		{"higher level allows", 3, 1, true},
		{"lower level denies", 1, 2, false},
		{"zero against zero allows", 0, 0, true},
		{"zero against max denies", 0, 3, false},
		{"max against everything", 3, 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.level.Satisfies(tc.required))
		})
	}
}

func TestLevelValid(t *testing.T) {
	assert.True(t, Level(0).Valid())
	assert.True(t, Level(3).Valid())
	assert.False(t, Level(-1).Valid())
	assert.False(t, Level(4).Valid())
}
