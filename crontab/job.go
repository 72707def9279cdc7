package crontab

import (
	"errors"
	"fmt"
	"os/user"
	"regexp"
	"strings"
)

// Fixed order in which the environment variables appear in a job block.
var envKeys = []string{"MAILTO", "MAILFROM", "PATH", "SHELL", "CRON_TZ"}

var envLineMatcher = regexp.MustCompile(`^([^\s=]+)\s*=\s*(.*)$`)

// EnvVars is the per-job environment header. Every key is always
// present; the empty string is the "no value" sentinel and serializes as
// a quoted empty string.
type EnvVars struct {
	MailTo   string
	MailFrom string
	Path     string
	Shell    string
	CronTZ   string
}

// DefaultEnvVars returns the values used when a job is constructed
// directly rather than parsed from a table.
func DefaultEnvVars() EnvVars {
	env := EnvVars{
		MailFrom: "root",
		Shell:    "/bin/sh",
		CronTZ:   "Etc/UTC",
	}
	if current, err := user.Current(); err == nil {
		env.MailTo = current.Username
		env.Path = current.HomeDir
	}
	return env
}

// pairs returns the variables in their fixed serialization order.
func (e EnvVars) pairs() [5][2]string {
	return [5][2]string{
		{"MAILTO", e.MailTo},
		{"MAILFROM", e.MailFrom},
		{"PATH", e.Path},
		{"SHELL", e.Shell},
		{"CRON_TZ", e.CronTZ},
	}
}

// parseEnvLine matches one KEY=VALUE header line against the expected
// key, case-insensitively. A value of "" or '' is the empty sentinel.
func parseEnvLine(line, wantKey string) (string, bool) {
	m := envLineMatcher.FindStringSubmatch(line)
	if m == nil || !strings.EqualFold(m[1], wantKey) {
		return "", false
	}
	value := m[2]
	if value == `""` || value == `''` {
		value = ""
	}
	return value, true
}

// Job is one titled entry in a cron table.
type Job struct {
	Title   string
	Env     EnvVars
	Timing  Timing
	Command string
}

// NewJob builds a job with the default environment header.
func NewJob(title string, timing Timing, command string) *Job {
	return &Job{
		Title:   title,
		Env:     DefaultEnvVars(),
		Timing:  timing,
		Command: command,
	}
}

// ParseJob builds a job from the raw timing-and-command half of a cron
// line, using the default environment header.
func ParseJob(title, cronText string) (*Job, error) {
	timing, command, err := ParseTiming(cronText)
	if err != nil {
		return nil, err
	}
	return NewJob(title, timing, command), nil
}

// String renders the job's cron line without its header.
func (j *Job) String() string {
	return fmt.Sprintf("%s %s", j.Timing, j.Command)
}

// Equal reports whether two jobs match on title, environment header,
// schedule, and command.
func (j *Job) Equal(other *Job) bool {
	return j.Title == other.Title &&
		j.Env == other.Env &&
		TimingEqual(j.Timing, other.Timing) &&
		j.Command == other.Command
}

// Reduce is meant to fold overlapping timing instructions into a
// minimal schedule. It has never been implemented.
func (j *Job) Reduce() error {
	return errors.New("schedule reduction is not implemented")
}

// Block renders the job's full table block: the title comment, the five
// environment lines, and the cron line, each newline-terminated.
func (j *Job) Block() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# [%s]\n", j.Title)
	for _, pair := range j.Env.pairs() {
		value := pair[1]
		if value == "" {
			value = `""`
		}
		fmt.Fprintf(&b, "%s=%s\n", pair[0], value)
	}
	fmt.Fprintf(&b, "%s %s\n", j.Timing, j.Command)
	return b.String()
}
