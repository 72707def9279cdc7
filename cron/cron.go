// Package cron layers the stateless table operations over a Source.
// Every operation reads a fresh snapshot of the raw table, reconciles
// it in memory, and installs the full result in one step; nothing is
// cached between calls.
package cron

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tekktrik/cronberry/crontab"
)

// Parse reads and parses the full table held by source.
func Parse(source Source) (*crontab.Table, error) {
	text, err := source.Read()
	if err != nil {
		return nil, err
	}
	return crontab.ParseTable(text)
}

// Add merges jobs into the table held by source.
func Add(source Source, jobs []*crontab.Job, overwrite bool) error {
	table, err := Parse(source)
	if err != nil {
		return err
	}
	if err := table.Add(jobs, overwrite); err != nil {
		return err
	}

	logrus.Debugf("installing %d job(s) into table of %d", len(jobs), table.Len())
	return source.Install(table.Render())
}

// Remove deletes the titled job from the table held by source.
func Remove(source Source, title string, ignoreMissing bool) error {
	table, err := Parse(source)
	if err != nil {
		return err
	}
	if err := table.Remove(title, ignoreMissing); err != nil {
		return err
	}
	return source.Install(table.Render())
}

// Write replaces the entire table held by source with the given jobs.
// Duplicate titles within jobs collapse, last writer wins.
func Write(source Source, jobs []*crontab.Job) error {
	table := crontab.NewTable()
	for _, job := range jobs {
		table.Put(job)
	}
	return source.Install(table.Render())
}

// Clear removes every job from the table held by source.
func Clear(source Source) error {
	return source.Install("")
}

// Save copies the current raw table text from source into path.
func Save(source Source, path string) error {
	text, err := source.Read()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save crontab: %w", err)
	}
	return nil
}

// Job returns the titled job from the table held by source.
func Job(source Source, title string) (*crontab.Job, error) {
	table, err := Parse(source)
	if err != nil {
		return nil, err
	}
	job, ok := table.Job(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", crontab.ErrTitleNotFound, title)
	}
	return job, nil
}
