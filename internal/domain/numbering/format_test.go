package numbering

import (
	"testing"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
	"github.com/beenayasoft/tenant-service/internal/core/id"
)

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFormatStandard(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		number int
		date   time.Time
		want   string
	}{
		{
			name: "prefix year padding",
			cfg: Config{
				Prefix:      "FAC",
				IncludeYear: true,
				Separator:   "-",
				Padding:     3,
			},
			number: 7,
			date:   testDate(2024, time.March, 15),
			want:   "FAC-2024-007",
		},
		{
			name:   "number only with padding",
			cfg:    Config{Padding: 3, Separator: "-"},
			number: 1,
			want:   "001",
		},
		{
			name: "full date components",
			cfg: Config{
				Prefix:       "DEV",
				IncludeYear:  true,
				IncludeMonth: true,
				IncludeDay:   true,
				Separator:    "-",
				Padding:      4,
			},
			number: 42,
			date:   testDate(2024, time.July, 3),
			want:   "DEV-2024-07-03-0042",
		},
		{
			name: "suffix and custom separator",
			cfg: Config{
				Prefix:      "CMD",
				Suffix:      "PRO",
				IncludeYear: true,
				Separator:   "/",
				Padding:     2,
			},
			number: 9,
			date:   testDate(2025, time.January, 1),
			want:   "CMD/2025/09/PRO",
		},
		{
			name: "month without year",
			cfg: Config{
				Prefix:       "BL",
				IncludeMonth: true,
				Separator:    "-",
				Padding:      3,
			},
			number: 15,
			date:   testDate(2024, time.November, 20),
			want:   "BL-11-015",
		},
		{
			name:   "padding does not truncate wide numbers",
			cfg:    Config{Padding: 2, Separator: "-"},
			number: 12345,
			want:   "12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStandard(&tt.cfg, tt.number, tt.date)
			if got != tt.want {
				t.Errorf("FormatStandard() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCustom(t *testing.T) {
	cfg := Config{
		Prefix:       "DEV",
		Padding:      4,
		CustomFormat: "{prefix}/{year}{month}/{number}",
	}

	got, err := Format(&cfg, 12, testDate(2024, time.July, 23))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DEV/202407/0012" {
		t.Errorf("Format() = %q, want %q", got, "DEV/202407/0012")
	}
}

func TestFormatCustom_AllPlaceholders(t *testing.T) {
	cfg := Config{
		Prefix:       "FAC",
		Suffix:       "X",
		Padding:      3,
		CustomFormat: "{prefix}-{year}-{month}-{day}-{number}-{suffix}",
	}

	got, err := Format(&cfg, 5, testDate(2024, time.February, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "FAC-2024-02-09-005-X" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatCustom_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"unknown placeholder", "{bogus}"},
		{"unknown among valid", "{prefix}-{nummer}"},
		{"unterminated brace", "{prefix}-{number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Prefix: "FAC", Padding: 3, CustomFormat: tt.template}
			_, err := Format(&cfg, 1, testDate(2024, time.June, 1))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !apperror.IsFormat(err) {
				t.Errorf("expected FORMAT_ERROR, got %v", err)
			}
		})
	}
}

func TestFormat_Deterministic(t *testing.T) {
	cfg := DefaultConfig(id.New(), DocumentTypeInvoice)
	date := testDate(2024, time.May, 5)

	first, err := Format(cfg, 7, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := Format(cfg, 7, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != first {
			t.Fatalf("Format() not deterministic: %q != %q", got, first)
		}
	}
}

func TestDescribe(t *testing.T) {
	standard := Config{
		Prefix:      "FAC",
		IncludeYear: true,
		Separator:   "-",
		Padding:     3,
	}
	if got := Describe(&standard); got != "FAC-YYYY-001" {
		t.Errorf("Describe() = %q, want %q", got, "FAC-YYYY-001")
	}

	custom := Config{CustomFormat: "{prefix}/{year}/{number}"}
	if got := Describe(&custom); got != "{prefix}/{year}/{number}" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestDefaultConfig_Prefixes(t *testing.T) {
	tenantID := id.New()
	wantPrefixes := map[DocumentType]string{
		DocumentTypeInvoice:    "FAC",
		DocumentTypeQuote:      "DEV",
		DocumentTypeOrder:      "CMD",
		DocumentTypeDelivery:   "BL",
		DocumentTypeCreditNote: "AV",
	}

	for docType, want := range wantPrefixes {
		cfg := DefaultConfig(tenantID, docType)
		if cfg.Prefix != want {
			t.Errorf("DefaultConfig(%s).Prefix = %q, want %q", docType, cfg.Prefix, want)
		}
		if cfg.NextNumber != 1 || cfg.Padding != 3 || !cfg.IncludeYear || !cfg.ResetYearly {
			t.Errorf("DefaultConfig(%s) has unexpected defaults: %+v", docType, cfg)
		}
	}
}
