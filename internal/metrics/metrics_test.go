package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/storex"
	"github.com/comalice/storex/tally"
)

func intValue(n int) float64 { return float64(n) }

func newTallyPublisher(t *testing.T, opts ...Option) *Publisher[int, storex.Action] {
	t.Helper()
	p, err := New[int, storex.Action](storex.ActionType, intValue, opts...)
	require.NoError(t, err)
	return p
}

func TestPublisher_CountsDispatchesAndState(t *testing.T) {
	p := newTallyPublisher(t)
	store := tally.New(storex.WithPublisher[int, storex.Action](p))

	for _, name := range []string{"add", "add", "add", "subtract", "bogus"} {
		require.NoError(t, store.Dispatch(tally.ParseAction(name)))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(p.Dispatches(tally.Add)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Dispatches(tally.Subtract)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Dispatches("bogus")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.Dispatches(tally.Reset)))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.State()))

	require.NoError(t, store.Dispatch(tally.ParseAction("reset")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.State()))
}

func TestPublisher_WriteText(t *testing.T) {
	p := newTallyPublisher(t, WithNamespace("tally"))
	store := tally.New(storex.WithPublisher[int, storex.Action](p))
	require.NoError(t, store.Dispatch(tally.ParseAction("add")))

	var buf bytes.Buffer
	require.NoError(t, p.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, `tally_dispatches_total{action="ADD"} 1`)
	assert.Contains(t, out, "tally_state 1")
}

func TestPublisher_SharedRegistryRejectsDuplicates(t *testing.T) {
	reg := prometheus.NewRegistry()
	newTallyPublisher(t, WithRegistry(reg), WithSubsystem("counter"))

	_, err := New[int, storex.Action](storex.ActionType, intValue, WithRegistry(reg), WithSubsystem("counter"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatches_total")
}

func TestPublisher_StateCollisionReturnsError(t *testing.T) {
	reg := prometheus.NewRegistry()
	taken := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storex", Name: "state"})
	require.NoError(t, reg.Register(taken))

	_, err := New[int, storex.Action](storex.ActionType, intValue, WithRegistry(reg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register state")

	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)

	// The counter registered before the failure is rolled back.
	require.True(t, reg.Unregister(taken))
	newTallyPublisher(t, WithRegistry(reg))
}

func TestPublisher_ConstLabels(t *testing.T) {
	p := newTallyPublisher(t, WithConstLabels(prometheus.Labels{"store": "demo"}))
	require.NoError(t, p.Publish(storex.Transition[int, storex.Action]{Action: storex.NewAction(tally.Add, nil), Next: 1}))

	var buf bytes.Buffer
	require.NoError(t, p.WriteText(&buf))
	assert.Contains(t, buf.String(), `store="demo"`)
}

func TestNew_RequiresFunctions(t *testing.T) {
	_, err := New[int, storex.Action](nil, intValue)
	assert.Error(t, err)

	_, err = New[int, storex.Action](storex.ActionType, nil)
	assert.Error(t, err)
}
