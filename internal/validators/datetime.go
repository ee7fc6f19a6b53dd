package validators

import "regexp"

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// IsDateShape checks the YYYY-MM-DD shape only; calendar validity is left
// to time.Parse at the call site.
func IsDateShape(s string) bool {
	return dateRe.MatchString(s)
}

func IsTimeShape(s string) bool {
	return timeRe.MatchString(s)
}
