package crontab

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldValue is a single item within one timing field: a wildcard, an
// exact value, a range, or a step over one of those. Values carry no
// calendar semantics; bound checking is left to the crontab installer.
type FieldValue interface {
	cronString() string
}

// Wildcard matches every value of its field ("*").
type Wildcard struct{}

func (Wildcard) cronString() string { return "*" }

// Exact matches one value of its field ("5").
type Exact int

func (v Exact) cronString() string { return strconv.Itoa(int(v)) }

// Range matches an inclusive span of values ("3-45").
type Range struct {
	Start int
	End   int
}

func (r Range) cronString() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// Step matches every Frequency-th value of its base ("3-45/3").
type Step struct {
	Base      FieldValue
	Frequency int
}

func (s Step) cronString() string {
	return fmt.Sprintf("%s/%d", s.Base.cronString(), s.Frequency)
}

// Field is the comma-separated list of values making up one timing slot.
// A parsed field is never empty.
type Field []FieldValue

func (f Field) String() string {
	items := make([]string, 0, len(f))
	for _, value := range f {
		items = append(items, value.cronString())
	}
	return strings.Join(items, ",")
}

// Equal reports whether two fields hold the same values in the same
// order.
func (f Field) Equal(other Field) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// ParseField parses one timing field. Steps are recognized before
// ranges, so "3-45/3" is a step whose base is a range.
func ParseField(text string) (Field, error) {
	items := strings.Split(text, ",")
	field := make(Field, 0, len(items))
	for _, item := range items {
		value, err := parseFieldItem(item)
		if err != nil {
			return nil, err
		}
		field = append(field, value)
	}
	return field, nil
}

func parseFieldItem(item string) (FieldValue, error) {
	if base, freq, found := strings.Cut(item, "/"); found {
		baseValue, err := parseFieldItem(base)
		if err != nil {
			return nil, err
		}
		frequency, err := strconv.Atoi(freq)
		if err != nil {
			return nil, &ParseError{Component: freq}
		}
		return Step{Base: baseValue, Frequency: frequency}, nil
	}

	if start, end, found := strings.Cut(item, "-"); found {
		startValue, err := strconv.Atoi(start)
		if err != nil {
			return nil, &ParseError{Component: start}
		}
		endValue, err := strconv.Atoi(end)
		if err != nil {
			return nil, &ParseError{Component: end}
		}
		return Range{Start: startValue, End: endValue}, nil
	}

	if item == "*" {
		return Wildcard{}, nil
	}

	number, err := strconv.Atoi(item)
	if err != nil {
		return nil, &ParseError{Component: item}
	}
	return Exact(number), nil
}

// Timing is a job schedule: either a Shorthand or an Explicit.
type Timing interface {
	// String renders the schedule in canonical crontab form.
	String() string

	timing()
}

// Shorthand is one of cron's named schedules.
type Shorthand string

const (
	Hourly   Shorthand = "@hourly"
	Daily    Shorthand = "@daily"
	Weekly   Shorthand = "@weekly"
	Annually Shorthand = "@annually"
	Yearly   Shorthand = "@yearly"
	Reboot   Shorthand = "@reboot"
)

var shorthands = map[Shorthand]bool{
	Hourly:   true,
	Daily:    true,
	Weekly:   true,
	Annually: true,
	Yearly:   true,
	Reboot:   true,
}

func (Shorthand) timing() {}

func (s Shorthand) String() string { return string(s) }

// Explicit is a five-field cron schedule.
type Explicit struct {
	Minute     Field
	Hour       Field
	DayOfMonth Field
	Month      Field
	DayOfWeek  Field
}

func (Explicit) timing() {}

func (e Explicit) String() string {
	return strings.Join([]string{
		e.Minute.String(),
		e.Hour.String(),
		e.DayOfMonth.String(),
		e.Month.String(),
		e.DayOfWeek.String(),
	}, " ")
}

// Equal reports whether two explicit schedules match field by field.
func (e Explicit) Equal(other Explicit) bool {
	return e.Minute.Equal(other.Minute) &&
		e.Hour.Equal(other.Hour) &&
		e.DayOfMonth.Equal(other.DayOfMonth) &&
		e.Month.Equal(other.Month) &&
		e.DayOfWeek.Equal(other.DayOfWeek)
}

// TimingEqual reports structural equality of two schedules.
func TimingEqual(a, b Timing) bool {
	switch a := a.(type) {
	case Shorthand:
		b, ok := b.(Shorthand)
		return ok && a == b
	case Explicit:
		b, ok := b.(Explicit)
		return ok && a.Equal(b)
	}
	return false
}

// ParseTiming splits a job line into its schedule and command halves.
// The shorthand grammar is tried first; when the first token is a known
// shorthand, the rest of the line becomes the command with its internal
// whitespace collapsed. Otherwise five space-delimited fields are
// consumed as an explicit schedule and everything after the fifth field
// is the command, verbatim.
func ParseTiming(line string) (Timing, string, error) {
	first, _, _ := strings.Cut(line, " ")
	if shorthand := Shorthand(first); shorthands[shorthand] {
		command := strings.Join(strings.Fields(line)[1:], " ")
		return shorthand, command, nil
	}

	remaining := line
	fields := make([]Field, 0, 5)
	for i := 0; i < 5; i++ {
		var token string
		token, remaining, _ = strings.Cut(remaining, " ")
		field, err := ParseField(token)
		if err != nil {
			return nil, "", err
		}
		fields = append(fields, field)
	}

	explicit := Explicit{
		Minute:     fields[0],
		Hour:       fields[1],
		DayOfMonth: fields[2],
		Month:      fields[3],
		DayOfWeek:  fields[4],
	}
	return explicit, remaining, nil
}
