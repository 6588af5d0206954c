package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
)

// Output formats understood by Transcript.Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned by Render for formats outside Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Record is the serializable form of one transition.
type Record[S any] struct {
	Seq    uint64    `json:"seq" yaml:"seq"`
	Action string    `json:"action" yaml:"action"`
	Prev   S         `json:"prev" yaml:"prev"`
	Next   S         `json:"next" yaml:"next"`
	At     time.Time `json:"at" yaml:"at"`
}

// Document is the rendered transcript of a run.
type Document[S any] struct {
	RunID       string      `json:"runID" yaml:"runID"`
	Initial     S           `json:"initial" yaml:"initial"`
	Final       S           `json:"final" yaml:"final"`
	Transitions []Record[S] `json:"transitions" yaml:"transitions"`
}

// Transcript records every transition it is given.
type Transcript[S, A any] struct {
	mu      sync.Mutex
	runID   string
	initial S
	label   func(A) string
	records []Record[S]
}

// NewTranscript creates a Transcript for a run starting at initial.
// label names an action in the rendered output; nil uses fmt's %v.
func NewTranscript[S, A any](runID string, initial S, label func(A) string) *Transcript[S, A] {
	if label == nil {
		label = func(a A) string { return fmt.Sprintf("%v", a) }
	}
	return &Transcript[S, A]{
		runID:   runID,
		initial: initial,
		label:   label,
	}
}

func (t *Transcript[S, A]) Publish(tr storex.Transition[S, A]) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, Record[S]{
		Seq:    tr.Seq,
		Action: t.label(tr.Action),
		Prev:   tr.Prev,
		Next:   tr.Next,
		At:     tr.At,
	})
	return nil
}

// Records returns a copy of the recorded transitions.
func (t *Transcript[S, A]) Records() []Record[S] {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Record[S], len(t.records))
	copy(out, t.records)
	return out
}

// Document snapshots the transcript. Final is the last recorded state, or
// the initial state when nothing was dispatched.
func (t *Transcript[S, A]) Document() Document[S] {
	records := t.Records()

	final := t.initial
	if n := len(records); n > 0 {
		final = records[n-1].Next
	}

	return Document[S]{
		RunID:       t.runID,
		Initial:     t.initial,
		Final:       final,
		Transitions: records,
	}
}

// Render writes the transcript to w in the given format.
func (t *Transcript[S, A]) Render(w io.Writer, format string) error {
	doc := t.Document()

	switch format {
	case FormatText:
		return renderText(w, doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func renderText[S any](w io.Writer, doc Document[S]) error {
	if _, err := fmt.Fprintf(w, "run %s\ninitial: %v\n", doc.RunID, doc.Initial); err != nil {
		return err
	}
	for _, r := range doc.Transitions {
		if _, err := fmt.Fprintf(w, "#%d %s: %v -> %v\n", r.Seq, r.Action, r.Prev, r.Next); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "final: %v\n", doc.Final)
	return err
}
