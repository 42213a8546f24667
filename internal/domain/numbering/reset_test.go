package numbering

import (
	"testing"
	"time"
)

func TestShouldReset(t *testing.T) {
	tests := []struct {
		name    string
		yearly  bool
		monthly bool
		updated time.Time
		now     time.Time
		want    bool
	}{
		{
			name:    "no reset policy",
			updated: testDate(2023, time.December, 31),
			now:     testDate(2024, time.January, 1),
			want:    false,
		},
		{
			name:    "yearly same year",
			yearly:  true,
			updated: testDate(2024, time.January, 2),
			now:     testDate(2024, time.December, 30),
			want:    false,
		},
		{
			name:    "yearly across year boundary",
			yearly:  true,
			updated: testDate(2024, time.December, 31),
			now:     testDate(2025, time.January, 1),
			want:    true,
		},
		{
			name:    "monthly same month",
			monthly: true,
			updated: testDate(2024, time.July, 1),
			now:     testDate(2024, time.July, 31),
			want:    false,
		},
		{
			name:    "monthly across month boundary",
			monthly: true,
			updated: testDate(2024, time.July, 31),
			now:     testDate(2024, time.August, 1),
			want:    true,
		},
		{
			name:    "monthly same month of next year",
			monthly: true,
			updated: testDate(2024, time.March, 10),
			now:     testDate(2025, time.March, 10),
			want:    true,
		},
		{
			name:    "yearly wins when both set and year changed",
			yearly:  true,
			monthly: true,
			updated: testDate(2024, time.December, 15),
			now:     testDate(2025, time.December, 15),
			want:    true,
		},
		{
			name:    "both set same period",
			yearly:  true,
			monthly: true,
			updated: testDate(2024, time.June, 1),
			now:     testDate(2024, time.June, 28),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ResetYearly:  tt.yearly,
				ResetMonthly: tt.monthly,
				UpdatedAt:    tt.updated,
			}
			if got := ShouldReset(cfg, tt.now); got != tt.want {
				t.Errorf("ShouldReset() = %v, want %v", got, tt.want)
			}
		})
	}
}
