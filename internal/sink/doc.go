// Package sink provides storex.Publisher implementations that observe a
// store's transitions: a channel forwarder and an in-memory transcript that
// renders as text, JSON or YAML.
package sink
