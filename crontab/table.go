package crontab

import (
	"fmt"
	"regexp"
	"strings"
)

var titleLineMatcher = regexp.MustCompile(`^# \[(.*)]$`)

// Table is an insertion-ordered mapping of job titles to jobs. It is
// rebuilt from the raw table text on every read; the raw text is always
// the canonical store.
type Table struct {
	titles []string
	jobs   map[string]*Job

	// corrupt records whether the source text carried duplicate titles
	// before parsing collapsed them.
	corrupt bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{jobs: make(map[string]*Job)}
}

// ParseTable scans text for seven-line job blocks: a `# [title]`
// comment, the five environment lines in their fixed order, and the
// timing plus command line. Text not matching that shape is ignored.
// Duplicate titles collapse, last writer wins; the collapse is noted so
// that Add can refuse to reconcile against a corrupt table. A malformed
// schedule inside an otherwise well-formed block is an error.
func ParseTable(text string) (*Table, error) {
	table := NewTable()
	lines := strings.Split(text, "\n")
	rawBlocks := 0

	for i := 0; i < len(lines); i++ {
		m := titleLineMatcher.FindStringSubmatch(lines[i])
		if m == nil || i+6 >= len(lines) {
			continue
		}

		var env EnvVars
		slots := [5]*string{&env.MailTo, &env.MailFrom, &env.Path, &env.Shell, &env.CronTZ}
		structural := true
		for k, key := range envKeys {
			value, ok := parseEnvLine(lines[i+1+k], key)
			if !ok {
				structural = false
				break
			}
			*slots[k] = value
		}
		if !structural {
			continue
		}

		timing, command, err := ParseTiming(lines[i+6])
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", m[1], err)
		}

		table.Put(&Job{Title: m[1], Env: env, Timing: timing, Command: command})
		rawBlocks++
		i += 6
	}

	table.corrupt = rawBlocks != len(table.titles)
	return table, nil
}

// Put inserts or replaces a job by title. An existing title keeps its
// position; a new title is appended.
func (t *Table) Put(job *Job) {
	if _, ok := t.jobs[job.Title]; !ok {
		t.titles = append(t.titles, job.Title)
	}
	t.jobs[job.Title] = job
}

// Job returns the job stored under title.
func (t *Table) Job(title string) (*Job, bool) {
	job, ok := t.jobs[title]
	return job, ok
}

// Titles returns the job titles in table order.
func (t *Table) Titles() []string {
	titles := make([]string, len(t.titles))
	copy(titles, t.titles)
	return titles
}

// Jobs returns the jobs in table order.
func (t *Table) Jobs() []*Job {
	jobs := make([]*Job, 0, len(t.titles))
	for _, title := range t.titles {
		jobs = append(jobs, t.jobs[title])
	}
	return jobs
}

// Len returns the number of jobs in the table.
func (t *Table) Len() int {
	return len(t.titles)
}

// Add merges jobs into the table by title. The incoming batch must not
// repeat a title, the destination must not have been corrupt at parse
// time, and unless overwrite is set no incoming title may already be
// present. Validation runs fully before the table is touched. Existing
// titles keep their position; new titles are appended in batch order.
func (t *Table) Add(jobs []*Job, overwrite bool) error {
	distinct := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		distinct[job.Title] = true
	}
	if len(distinct) != len(jobs) {
		return ErrDuplicateTitle
	}

	if t.corrupt {
		return ErrCorruptTable
	}

	if !overwrite {
		for _, job := range jobs {
			if _, ok := t.jobs[job.Title]; ok {
				return fmt.Errorf("%w: %s", ErrTitleConflict, job.Title)
			}
		}
	}

	for _, job := range jobs {
		t.Put(job)
	}
	return nil
}

// Remove deletes the job stored under title. A missing title is an
// error unless ignoreMissing is set, in which case the table is left
// unchanged.
func (t *Table) Remove(title string, ignoreMissing bool) error {
	if _, ok := t.jobs[title]; !ok {
		if ignoreMissing {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrTitleNotFound, title)
	}

	delete(t.jobs, title)
	for i, existing := range t.titles {
		if existing == title {
			t.titles = append(t.titles[:i], t.titles[i+1:]...)
			break
		}
	}
	return nil
}

// Render serializes the table, one blank line between consecutive
// blocks, with no leading or trailing blank line. An empty table
// renders as empty text.
func (t *Table) Render() string {
	var b strings.Builder
	for i, title := range t.titles {
		if i != 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.jobs[title].Block())
	}
	return b.String()
}
