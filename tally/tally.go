// Package tally is a counter reducer for storex.
package tally

import (
	"strings"

	"github.com/comalice/storex"
)

// Action discriminators understood by Reduce.
const (
	Add      = "ADD"
	Subtract = "SUBTRACT"
	Reset    = "RESET"
)

// Initial is the default tally. It is also the zero value of int, so a
// Store built from a zero state starts from the same default.
const Initial = 0

// Store is a tally store.
type Store = storex.Store[int, storex.Action]

// Option configures a tally Store.
type Option = storex.Option[int, storex.Action]

// Reduce is the tally transition function. Unknown discriminators leave the
// state unchanged.
func Reduce(state int, action storex.Action) int {
	switch action.Type {
	case Add:
		return state + 1
	case Subtract:
		return state - 1
	case Reset:
		return Initial
	default:
		return state
	}
}

// New creates a Store bound to Reduce, starting at Initial.
func New(opts ...Option) *Store {
	return storex.New(Reduce, Initial, opts...)
}

// Known returns the discriminators Reduce acts on, in a fixed order.
func Known() []string {
	return []string{Add, Subtract, Reset}
}

// IsKnown reports whether actionType is one of Known.
func IsKnown(actionType string) bool {
	for _, k := range Known() {
		if k == actionType {
			return true
		}
	}
	return false
}

// ParseAction turns a user supplied name into an Action. Known names match
// case-insensitively and are normalized; anything else is kept verbatim and
// reduces to the identity.
func ParseAction(name string) storex.Action {
	norm := strings.ToUpper(strings.TrimSpace(name))
	if IsKnown(norm) {
		return storex.NewAction(norm, nil)
	}
	return storex.NewAction(name, nil)
}
