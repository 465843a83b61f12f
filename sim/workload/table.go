// Package workload loads job tables for the simulator.
//
// A job table is a line-oriented text source with whitespace-separated fields:
//
//	<id> <start_time> <size> <execution_interval> <state>
//
// Lines that do not hold exactly five fields, or whose numeric fields do not parse,
// are skipped with a warning; they never abort a load.
package workload

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/poliklinikvildan/Solving--Memory-Management-Problem/sim"
)

// fieldsPerRecord is the exact number of whitespace-separated fields in a job line.
const fieldsPerRecord = 5

// JobTable is a parsed job table. Records are kept in source order.
type JobTable struct {
	Source  string     // URL or label the table was read from
	Records []*sim.Job // parsed jobs; never handed to a simulator directly
	Skipped int        // non-blank lines dropped as malformed
}

// Jobs returns a fresh deep copy of the table's jobs, ready for one simulation run.
func (t *JobTable) Jobs() []*sim.Job {
	return sim.CloneJobs(t.Records)
}

// LoadJobTable reads the job table at URL once through fs and parses it.
// URL may be a local path or any scheme registered with afs (file://, mem://, ...).
func LoadJobTable(ctx context.Context, fs afs.Service, URL string) (*JobTable, error) {
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("checking job table %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("job table %s not found", URL)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("reading job table %s: %w", URL, err)
	}
	table, err := ParseJobTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing job table %s: %w", URL, err)
	}
	table.Source = URL
	logrus.Infof("Loaded %d jobs from %s (%d lines skipped)", len(table.Records), URL, table.Skipped)
	return table, nil
}

// ParseJobTable parses job records from r. Only read errors are returned;
// malformed lines are counted in Skipped and logged at warn level.
func ParseJobTable(r io.Reader) (*JobTable, error) {
	table := &JobTable{Records: make([]*sim.Job, 0)}
	seen := make(map[int]bool)

	// bufio.Reader has no line-length limit, so an over-long line is skipped like any other malformed one.
	reader := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if line != "" {
			lineNo++
			table.addLine(lineNo, line, seen)
		}
		if readErr == io.EOF {
			return table, nil
		}
	}
}

// addLine parses one raw line into the table, counting it in Skipped when malformed.
func (t *JobTable) addLine(lineNo int, line string, seen map[int]bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	job, err := parseRecord(parts)
	if err == nil && seen[job.ID] {
		err = fmt.Errorf("duplicate job id %d", job.ID)
	}
	if err != nil {
		t.Skipped++
		logrus.Warnf("skipping job table line %d: %v", lineNo, err)
		return
	}
	seen[job.ID] = true
	t.Records = append(t.Records, job)
}

// parseRecord converts one split line into a Job.
func parseRecord(parts []string) (*sim.Job, error) {
	if len(parts) != fieldsPerRecord {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldsPerRecord, len(parts))
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid job id %q", parts[0])
	}
	startTime, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || startTime < 0 {
		return nil, fmt.Errorf("invalid start time %q", parts[1])
	}
	size, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid job size %q", parts[2])
	}
	interval, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("invalid execution interval %q", parts[3])
	}
	return sim.NewJob(id, startTime, size, interval, sim.JobState(parts[4])), nil
}
