package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// broadcastWindow is how long a PPV broadcast stays purchasable after
// its countdown starts.
const broadcastWindow = 12*time.Hour + 59*time.Minute

const (
	// dateLayout parses operator-typed broadcast dates such as
	// "Saturday June 15" once the year and 24-hour clock are attached.
	dateLayout = "Monday January 2 2006 15:04"

	// matchKeyLayout is the rendering the billing export uses for its
	// date column; classification compares against this exact string.
	matchKeyLayout = "01/02/2006 15.04.05"

	// queryLayout is the minute-precision stamp the grid service expects.
	queryLayout = "2006-01-02T15:04Z"
)

// broadcastZone is the zone broadcast times are announced in.
const broadcastZone = "America/New_York"

// Schedule is a normalized broadcast window in UTC.
type Schedule struct {
	Start time.Time
	End   time.Time
}

// ParseClock converts operator time notation ("7:00p", "11:30a") into
// 24-hour components. The final character of the minute part is the
// AM/PM marker, case-insensitive.
func ParseClock(text string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(text), ":", 2)
	if len(parts) != 2 || len(parts[1]) < 2 {
		return 0, 0, fmt.Errorf("malformed broadcast time %q: expected H:MMa or H:MMp", text)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed broadcast time %q: %w", text, err)
	}

	marker := strings.ToLower(parts[1][len(parts[1])-1:])
	if marker != "a" && marker != "p" {
		return 0, 0, fmt.Errorf("malformed broadcast time %q: missing a/p marker", text)
	}

	minute, err = strconv.Atoi(parts[1][:len(parts[1])-1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed broadcast time %q: %w", text, err)
	}

	if hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("broadcast hour %d out of range 1-12", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("broadcast minute %d out of range 0-59", minute)
	}

	// 12-hour to 24-hour: 12a is midnight, 12p stays noon.
	if marker == "p" && hour != 12 {
		hour += 12
	} else if marker == "a" && hour == 12 {
		hour = 0
	}

	return hour, minute, nil
}

// Normalize combines a broadcast date ("Saturday June 15"), a clock
// ("7:00p") and an explicit year into a UTC broadcast window. The local
// time is interpreted in US Eastern, DST-aware.
func Normalize(dateText, timeText string, year int) (Schedule, error) {
	hour, minute, err := ParseClock(timeText)
	if err != nil {
		return Schedule{}, err
	}

	loc, err := time.LoadLocation(broadcastZone)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to load broadcast time zone: %w", err)
	}

	combined := fmt.Sprintf("%s %d %02d:%02d", strings.TrimSpace(dateText), year, hour, minute)
	local, err := time.ParseInLocation(dateLayout, combined, loc)
	if err != nil {
		return Schedule{}, fmt.Errorf("malformed broadcast date %q: %w", dateText, err)
	}

	start := local.UTC()
	return Schedule{Start: start, End: start.Add(broadcastWindow)}, nil
}

// MatchKey renders the UTC start instant the way the export's date
// column renders dates, for exact string comparison.
func (s Schedule) MatchKey() string {
	return s.Start.UTC().Format(matchKeyLayout)
}

// EndKey renders the window end the same way, for operator-facing output.
func (s Schedule) EndKey() string {
	return s.End.UTC().Format(matchKeyLayout)
}

// QueryStamp renders the start instant for the grid listing URL.
func (s Schedule) QueryStamp() string {
	return s.Start.UTC().Format(queryLayout)
}
