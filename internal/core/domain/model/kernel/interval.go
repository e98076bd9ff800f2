package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"dispatch/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

var rePeriod = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])-([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Period is a time-of-day range [start, end] on an arbitrary reference day,
// kept at minute resolution. A period whose end is before its start wraps
// past midnight; only delivery windows may do that.
type Period struct {
	start int
	end   int
}

// ParsePeriod parses a strict "HH:MM-HH:MM" string. It does not constrain the
// order of start and end.
func ParsePeriod(s string) (Period, error) {
	m := rePeriod.FindStringSubmatch(s)
	if m == nil {
		return Period{}, fmt.Errorf("%q is not in HH:MM-HH:MM format", s)
	}

	return Period{
		start: clock(m[1], m[2]),
		end:   clock(m[3], m[4]),
	}, nil
}

// clock converts pre-validated hour and minute digits to minutes since midnight.
func clock(hh, mm string) int {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// Start is the offset of the period start from midnight.
func (p Period) Start() time.Duration {
	return time.Duration(p.start) * time.Minute
}

// End is the offset of the period end from midnight.
func (p Period) End() time.Duration {
	return time.Duration(p.end) * time.Minute
}

// Wraps reports whether the period crosses midnight.
func (p Period) Wraps() bool {
	return p.end < p.start
}

// Overlaps reports whether the two periods share at least one instant, both
// ends inclusive. A wrapping period is tested as its two same-day segments.
func (p Period) Overlaps(other Period) bool {
	for _, a := range p.segments() {
		for _, b := range other.segments() {
			if a.start <= b.end && a.end >= b.start {
				return true
			}
		}
	}
	return false
}

func (p Period) segments() []Period {
	if !p.Wraps() {
		return []Period{p}
	}
	return []Period{
		{start: p.start, end: minutesPerDay - 1},
		{start: 0, end: p.end},
	}
}

func (p Period) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", p.start/60, p.start%60, p.end/60, p.end%60)
}

// Periods is a set of time-of-day ranges with no ordering guarantee.
type Periods []Period

// ParseWorkingHours parses courier working hours. Every period must stay
// within one day: an end before the start is rejected.
func ParseWorkingHours(values []string) (Periods, error) {
	return parsePeriods("working_hours", values, func(p Period) error {
		if p.Wraps() {
			return fmt.Errorf("%s ends before it starts", p)
		}
		return nil
	})
}

// ParseDeliveryHours parses order delivery windows. Windows may wrap past midnight.
func ParseDeliveryHours(values []string) (Periods, error) {
	return parsePeriods("delivery_hours", values, nil)
}

func parsePeriods(name string, values []string, check func(Period) error) (Periods, error) {
	if len(values) == 0 {
		return nil, errs.NewValueIsRequiredError(name)
	}

	periods := make(Periods, 0, len(values))
	for _, v := range values {
		p, err := ParsePeriod(v)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		if check != nil {
			if err = check(p); err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
			}
		}
		periods = append(periods, p)
	}
	return periods, nil
}

// Overlaps reports whether any period of ps overlaps any period of other.
// An empty set overlaps nothing.
func (ps Periods) Overlaps(other Periods) bool {
	for _, a := range ps {
		for _, b := range other {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Strings renders the set back into "HH:MM-HH:MM" strings.
func (ps Periods) Strings() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
