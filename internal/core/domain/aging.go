package domain

import "time"

// AgingBucket groups debt by whole days since the sale was created.
type AgingBucket string

const (
	AgingCurrent AgingBucket = "current"
	Aging31To60  AgingBucket = "31-60"
	Aging61To90  AgingBucket = "61-90"
	Aging90Plus  AgingBucket = "90+"
)

// AgingFilterOverdue selects anything older than 30 days.
const AgingFilterOverdue = "overdue"

// AgingBuckets lists the buckets in ascending age.
var AgingBuckets = []AgingBucket{AgingCurrent, Aging31To60, Aging61To90, Aging90Plus}

// DaysBetween counts whole days from then to now, never negative.
func DaysBetween(then, now time.Time) int {
	d := now.Sub(then)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// BucketForDays places an age in days into its aging bucket.
func BucketForDays(days int) AgingBucket {
	switch {
	case days <= 30:
		return AgingCurrent
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return Aging90Plus
	}
}

// MatchesAgingFilter reports whether days satisfies an aging filter value.
// An empty filter matches everything; "overdue" means more than 30 days.
func MatchesAgingFilter(filter string, days int) bool {
	switch filter {
	case "":
		return true
	case AgingFilterOverdue:
		return days > 30
	default:
		return BucketForDays(days) == AgingBucket(filter)
	}
}

// ValidAgingFilter reports whether filter is empty, "overdue" or a bucket name.
func ValidAgingFilter(filter string) bool {
	if filter == "" || filter == AgingFilterOverdue {
		return true
	}
	for _, b := range AgingBuckets {
		if AgingBucket(filter) == b {
			return true
		}
	}
	return false
}
