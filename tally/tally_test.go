package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/storex"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		state  int
		action string
		want   int
	}{
		{"add from zero", 0, Add, 1},
		{"add from negative", -3, Add, -2},
		{"subtract", 5, Subtract, 4},
		{"subtract below zero", 0, Subtract, -1},
		{"reset", 42, Reset, 0},
		{"reset negative", -7, Reset, 0},
		{"unknown is identity", 9, "UNKNOWN", 9},
		{"empty type is identity", 9, "", 9},
		{"lowercase is not known", 9, "add", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, storex.NewAction(tt.action, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_ZeroStateIsDefault(t *testing.T) {
	var state int
	assert.Equal(t, Initial, state)
	assert.Equal(t, 1, Reduce(state, storex.NewAction(Add, nil)))
}

func TestReduce_IgnoresPayload(t *testing.T) {
	assert.Equal(t, 2, Reduce(1, storex.NewAction(Add, map[string]int{"by": 10})))
}

func TestReduce_AddRepeated(t *testing.T) {
	state := 3
	for i := 0; i < 25; i++ {
		state = Reduce(state, storex.NewAction(Add, nil))
	}
	assert.Equal(t, 28, state)
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, storex.NewAction(Add, nil), ParseAction("add"))
	assert.Equal(t, storex.NewAction(Subtract, nil), ParseAction(" Subtract "))
	assert.Equal(t, storex.NewAction(Reset, nil), ParseAction("RESET"))
	assert.Equal(t, storex.NewAction("multiply", nil), ParseAction("multiply"))
}

func TestKnown(t *testing.T) {
	assert.Equal(t, []string{Add, Subtract, Reset}, Known())
	assert.True(t, IsKnown(Reset))
	assert.False(t, IsKnown("reset"))
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, Initial, s.GetState())

	require.NoError(t, s.Dispatch(ParseAction("add")))
	require.NoError(t, s.Dispatch(ParseAction("add")))
	assert.Equal(t, 2, s.GetState())
}
