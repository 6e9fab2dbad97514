package config

import (
	"fmt"
	"strings"

	"jobmarket-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it. Errors block saving; warnings do not.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Dataset.Path = strings.TrimSpace(out.Dataset.Path)
	out.Dataset.Country = strings.ToLower(strings.TrimSpace(out.Dataset.Country))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Dataset.Country == "" {
		out.Dataset.Country = domain.DefaultCountry
	} else if !domain.ValidCountry(out.Dataset.Country) {
		res.addErr("dataset.country must be one of: %s, %s", domain.CountryArgentina, domain.CountrySpain)
	}
	if out.Dataset.Path == "" {
		res.addWarn("dataset.path is empty; /jobs and /insights will have no default dataset.")
	}

	if out.Upload.MaxBytes <= 0 {
		res.addErr("upload.max_bytes must be > 0")
	} else if out.Upload.MaxBytes > 100<<20 {
		res.addWarn("upload.max_bytes is very large (%d); parsing is in-memory per request.", out.Upload.MaxBytes)
	}
	if out.Upload.PerMinute < 0 {
		res.addErr("upload.per_minute must be >= 0 (0 disables the limiter)")
	}

	if out.Retention.MaxAgeDays < 0 {
		res.addErr("retention.max_age_days must be >= 0 (0 keeps datasets forever)")
	}
	if out.Retention.MaxAgeDays > 0 && out.Retention.SweepSeconds <= 0 {
		res.addErr("retention.sweep_seconds must be > 0 when retention is enabled")
	}

	if out.Charts.MaxItems < 0 {
		res.addErr("charts.max_items must be >= 0 (0 uses the default cap)")
	}

	return out, res
}

// Validate is the hard-fail form used before persisting.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return fmt.Errorf("config validation failed:\n- %s", strings.Join(res.Errors, "\n- "))
	}
	return nil
}
