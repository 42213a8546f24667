package numbering

import "time"

// ShouldReset reports whether the counter must roll back to 1 before the
// next number is issued. UpdatedAt is the anchor for the last period the
// counter was active in: a yearly reset fires on the first consumption of a
// new year, a monthly reset on the first consumption of a new month (a year
// change alone also trips the monthly check).
//
// The caller applies the side effect: when true, next_number is set to 1
// inside the same atomic unit as the increment.
func ShouldReset(cfg *Config, now time.Time) bool {
	if cfg.ResetYearly && now.Year() != cfg.UpdatedAt.Year() {
		return true
	}
	if cfg.ResetMonthly &&
		(now.Year() != cfg.UpdatedAt.Year() || now.Month() != cfg.UpdatedAt.Month()) {
		return true
	}
	return false
}
