package service

import "time"

// KST is the customs authority's fixed regional timezone (UTC+9). A fixed
// offset zone keeps anchor computation independent of the host timezone
// database and the machine's local zone.
var KST = time.FixedZone("KST", 9*60*60)

// RecentSundays returns the n most recent weekly anchor dates, newest first,
// as midnights in KST. The walk starts at the nearest Sunday at or before
// "now" in KST; when now falls on a Sunday, that day is the first anchor.
func RecentSundays(now time.Time, n int) []time.Time {
	local := now.In(KST)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KST)

	// Weekday is 0 for Sunday, so the offset is the days since the boundary
	first := day.AddDate(0, 0, -int(day.Weekday()))

	anchors := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		anchors = append(anchors, first.AddDate(0, 0, -7*i))
	}

	return anchors
}

// CompactDate formats an anchor for upstream API parameters, e.g. "20240107".
func CompactDate(t time.Time) string {
	return t.In(KST).Format("20060102")
}

// DashDate formats an anchor for display and snapshot keys, e.g. "2024-01-07".
func DashDate(t time.Time) string {
	return t.In(KST).Format("2006-01-02")
}
