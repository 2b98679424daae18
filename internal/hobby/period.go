package hobby

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Period is the unit a goal or task repeats over.
type Period string

const (
	PeriodHour  Period = "Hour"
	PeriodDay   Period = "Day"
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
	PeriodYear  Period = "Year"
)

// GoalUnits lists the periods a goal can be measured in, in display order.
var GoalUnits = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// TaskDurations lists the periods a task duration can use.
var TaskDurations = []Period{PeriodHour, PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// ParsePeriod accepts the canonical names case-insensitively as well as the
// adverb forms (DAILY, WEEKLY, ...) older clients send.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hour", "hourly":
		return PeriodHour, nil
	case "day", "daily":
		return PeriodDay, nil
	case "week", "weekly":
		return PeriodWeek, nil
	case "month", "monthly":
		return PeriodMonth, nil
	case "year", "yearly":
		return PeriodYear, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// IsGoalUnit reports whether p can be used as a goal unit.
func (p Period) IsGoalUnit() bool {
	for _, u := range GoalUnits {
		if p == u {
			return true
		}
	}
	return false
}

// IsValid reports whether p is any known period.
func (p Period) IsValid() bool {
	return p == PeriodHour || p.IsGoalUnit()
}

// Next returns the goal unit after p, wrapping around.
func (p Period) Next() Period {
	for i, u := range GoalUnits {
		if u == p {
			return GoalUnits[(i+1)%len(GoalUnits)]
		}
	}
	return GoalUnits[0]
}

// Prev returns the goal unit before p, wrapping around.
func (p Period) Prev() Period {
	for i, u := range GoalUnits {
		if u == p {
			return GoalUnits[(i+len(GoalUnits)-1)%len(GoalUnits)]
		}
	}
	return GoalUnits[len(GoalUnits)-1]
}

// UnmarshalJSON normalizes any accepted spelling to the canonical name.
func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
