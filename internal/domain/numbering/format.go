package numbering

import (
	"fmt"
	"strings"
	"time"

	"github.com/beenayasoft/tenant-service/internal/core/apperror"
)

// Format renders the document number for the given counter value and date.
// Pure: no persistence, deterministic for identical inputs.
//
// When CustomFormat is set it is used exclusively; a malformed template
// returns a FORMAT_ERROR. Callers on the generate path must fall back to
// FormatStandard on that error instead of propagating it.
func Format(cfg *Config, number int, date time.Time) (string, error) {
	if cfg.CustomFormat != "" {
		return formatCustom(cfg, number, date)
	}
	return FormatStandard(cfg, number, date), nil
}

// FormatStandard assembles prefix, date components (year, month, day in
// that fixed order), the zero-padded number and suffix, joined by the
// configured separator. DateFormat never reorders components here.
func FormatStandard(cfg *Config, number int, date time.Time) string {
	sep := cfg.Separator
	if sep == "" {
		sep = "-"
	}

	var parts []string
	if cfg.Prefix != "" {
		parts = append(parts, cfg.Prefix)
	}
	if cfg.IncludeYear {
		parts = append(parts, fmt.Sprintf("%04d", date.Year()))
	}
	if cfg.IncludeMonth {
		parts = append(parts, fmt.Sprintf("%02d", int(date.Month())))
	}
	if cfg.IncludeDay {
		parts = append(parts, fmt.Sprintf("%02d", date.Day()))
	}
	parts = append(parts, padNumber(number, cfg.Padding))
	if cfg.Suffix != "" {
		parts = append(parts, cfg.Suffix)
	}

	return strings.Join(parts, sep)
}

// formatCustom substitutes {prefix} {year} {month} {day} {number} {suffix}
// placeholders in the template. Unknown placeholders and unterminated
// braces are format errors.
func formatCustom(cfg *Config, number int, date time.Time) (string, error) {
	values := map[string]string{
		"prefix": cfg.Prefix,
		"year":   fmt.Sprintf("%04d", date.Year()),
		"month":  fmt.Sprintf("%02d", int(date.Month())),
		"day":    fmt.Sprintf("%02d", date.Day()),
		"number": padNumber(number, cfg.Padding),
		"suffix": cfg.Suffix,
	}

	var b strings.Builder
	tmpl := cfg.CustomFormat
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			b.WriteString(tmpl)
			break
		}
		b.WriteString(tmpl[:open])

		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			return "", apperror.NewFormat("unterminated placeholder in custom format").
				WithDetail("template", cfg.CustomFormat)
		}
		name := tmpl[open+1 : open+end]
		val, ok := values[name]
		if !ok {
			return "", apperror.NewFormat("unknown placeholder in custom format").
				WithDetail("template", cfg.CustomFormat).
				WithDetail("placeholder", name)
		}
		b.WriteString(val)
		tmpl = tmpl[open+end+1:]
	}

	return b.String(), nil
}

// padNumber renders n zero-padded to at least width digits.
func padNumber(n, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%0*d", width, n)
}

// Describe returns a human-readable summary of the configured format with a
// placeholder example number ("001" for padding 3). Used by configuration
// UIs, never by generation.
func Describe(cfg *Config) string {
	if cfg.CustomFormat != "" {
		return cfg.CustomFormat
	}

	sep := cfg.Separator
	if sep == "" {
		sep = "-"
	}

	var parts []string
	if cfg.Prefix != "" {
		parts = append(parts, cfg.Prefix)
	}
	if cfg.IncludeYear {
		parts = append(parts, "YYYY")
	}
	if cfg.IncludeMonth {
		parts = append(parts, "MM")
	}
	if cfg.IncludeDay {
		parts = append(parts, "DD")
	}
	parts = append(parts, padNumber(1, cfg.Padding))
	if cfg.Suffix != "" {
		parts = append(parts, cfg.Suffix)
	}

	return strings.Join(parts, sep)
}
