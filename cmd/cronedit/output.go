package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/job"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type jobRecord struct {
	Index    int    `json:"index" yaml:"index"`
	Schedule string `json:"schedule" yaml:"schedule"`
	Command  string `json:"command" yaml:"command"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func newJobRecord(index int, j *job.Job) jobRecord {
	return jobRecord{
		Index:    index,
		Schedule: j.Schedule(),
		Command:  j.Command(),
		Comment:  j.Comment(),
	}
}

type snapshotRecord struct {
	ID      string `json:"id" yaml:"id"`
	Source  string `json:"source" yaml:"source"`
	Jobs    int    `json:"jobs" yaml:"jobs"`
	Lines   int    `json:"lines" yaml:"lines"`
	Created string `json:"created" yaml:"created"`
}

func newSnapshotRecord(s *core.Snapshot) snapshotRecord {
	return snapshotRecord{
		ID:      s.ID,
		Source:  s.Source,
		Jobs:    s.Jobs,
		Lines:   s.Lines,
		Created: s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
}

// write encodes v as JSON or YAML, or calls text for the table form.
func write(w io.Writer, format string, v any, text func(*tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		text(tw)
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
