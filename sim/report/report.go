// Package report turns run results into output: a text listing for terminals
// and a JSON document that can be stored through afs.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
)

// Sink accepts the final (id, state) pairs of one run for display.
type Sink interface {
	Emit(run *sim.RunResult) error
}

// TextSink prints runs in the classic layout:
//
//	Table-1 Jobs (Best-Fit):
//	1: Running
//	2: Sleep
//
// Runs after the first are separated by a blank line. With Metrics set, each run's
// metrics block follows its job lines.
type TextSink struct {
	W       io.Writer
	Metrics bool
	Memory  sim.MemoryConfig // limit shown in the metrics block
	emitted int
}

// Header returns the heading line of a run.
func Header(run *sim.RunResult) string {
	return fmt.Sprintf("%s Jobs (%s):", run.Table, sim.StrategyDisplayName(run.Strategy))
}

func (s *TextSink) Emit(run *sim.RunResult) error {
	var buf bytes.Buffer
	if s.emitted > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString(Header(run))
	buf.WriteString("\n")
	for _, j := range run.Jobs {
		fmt.Fprintf(&buf, "%d: %s\n", j.ID, j.State)
	}
	if s.Metrics && run.Metrics != nil {
		run.Metrics.Print(&buf, s.Memory)
	}
	if _, err := s.W.Write(buf.Bytes()); err != nil {
		return err
	}
	s.emitted++
	return nil
}

// EmitAll sends every run to sink in order.
func EmitAll(sink Sink, runs []*sim.RunResult) error {
	for _, run := range runs {
		if err := sink.Emit(run); err != nil {
			return err
		}
	}
	return nil
}

// Document is the JSON export layout.
type Document struct {
	Memory sim.MemoryConfig `json:"memory"`
	Runs   []*sim.RunResult `json:"runs"`
}

// SaveJSON uploads runs as an indented JSON document to URL through fs.
func SaveJSON(ctx context.Context, fs afs.Service, URL string, cfg sim.MemoryConfig, runs []*sim.RunResult) error {
	data, err := json.MarshalIndent(Document{Memory: cfg, Runs: runs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing results to %s: %w", URL, err)
	}
	return nil
}
