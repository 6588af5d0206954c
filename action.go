package storex

// Action is the conventional tagged record passed to a Reducer: a Type
// discriminator plus an optional Payload.
//
// The Store never inspects actions, so any type works as the A parameter of
// Store; Action exists so reducers and tooling share one shape. Treat a
// constructed Action as immutable.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewAction creates an Action with the given discriminator and payload.
func NewAction(actionType string, payload any) Action {
	return Action{
		Type:    actionType,
		Payload: payload,
	}
}

// ActionType returns a.Type. It is handy as a label function for sinks that
// work on any action type.
func ActionType(a Action) string {
	return a.Type
}
