package config

import (
	"fmt"
	"strings"

	"github.com/rickhohler/cider-tool/internal/domain"
)

// Validate ensures config structure is consistent. Empty values are allowed
// and filled in by hydrateDefaults.
func Validate(cfg domain.Config) error {
	if err := validateAmend(cfg.Amend); err != nil {
		return err
	}
	if err := validateOutput(cfg.Output); err != nil {
		return err
	}
	return validateDoctor(cfg.Doctor)
}

func validateAmend(amend domain.AmendSettings) error {
	if amend.Strategy == "" || amend.Strategy.Valid() {
		return nil
	}
	return fmt.Errorf("amend.strategy must be auto|literal|structured, got %s", amend.Strategy)
}

func validateOutput(out domain.OutputSettings) error {
	switch out.Color {
	case "", domain.ColorAuto, domain.ColorAlways, domain.ColorNever:
		return nil
	}
	return fmt.Errorf("output.color must be auto|always|never, got %s", out.Color)
}

func validateDoctor(doctor domain.DoctorSettings) error {
	for name, value := range map[string]string{
		"doctor.tools.which":      doctor.Tools.Which,
		"doctor.tools.xcodebuild": doctor.Tools.Xcodebuild,
		"doctor.tools.security":   doctor.Tools.Security,
	} {
		if strings.ContainsAny(value, "\n\t") {
			return fmt.Errorf("%s must be a single command, got %q", name, value)
		}
	}
	return nil
}
