package doctor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// Service runs the developer tooling probes.
type Service struct {
	Runner   ports.CommandRunner
	Settings domain.DoctorSettings
	Logger   ports.Logger
}

// certificateKind words the two keychain probes.
type certificateKind struct {
	name   string
	filter string
}

// Run executes every probe in order. A failing probe never stops the others.
func (s *Service) Run(ctx context.Context) domain.DoctorReport {
	return domain.DoctorReport{Probes: []domain.ProbeResult{
		s.codesignProbe(ctx),
		s.xcodeProbe(ctx),
		s.certificateProbe(ctx, certificateKind{name: "developer", filter: s.Settings.DeveloperFilter}),
		s.certificateProbe(ctx, certificateKind{name: "distribution", filter: s.Settings.DistributionFilter}),
	}}
}

// codesignProbe treats exit 0 from the lookup as "installed".
func (s *Service) codesignProbe(ctx context.Context) domain.ProbeResult {
	probe, _ := s.run(ctx, "Codesign", s.Settings.Tools.Which, domain.CodesignToolName)
	if probe.Success() {
		return ok(probe, "Codesign tool installed")
	}
	return warn(probe, "Codesign tool missing")
}

func (s *Service) xcodeProbe(ctx context.Context) domain.ProbeResult {
	probe, res := s.run(ctx, "Xcode", s.Settings.Tools.Xcodebuild, "-version")
	if !probe.Success() {
		return warn(probe, "Xcode missing")
	}
	return ok(probe, xcodeSummary(res.Stdout))
}

func (s *Service) certificateProbe(ctx context.Context, kind certificateKind) domain.ProbeResult {
	name := "Keychain " + kind.name + " certificates"
	probe, res := s.run(ctx, name, s.Settings.Tools.Security, "-q", "find-certificate", "-a", "-c", kind.filter)
	if !probe.Success() {
		return fail(probe, "Listing keychain "+kind.name+" certificates failed")
	}
	labels := ParseCertificateLabels(res.Stdout)
	if len(labels) == 0 {
		return warn(probe, "No iOS "+kind.name+" certificates installed")
	}
	probe.Items = labels
	return ok(probe, name)
}

// run invokes one external command. Start failures are folded into the probe
// as exit code -1.
func (s *Service) run(ctx context.Context, name, command string, args ...string) (domain.ProbeResult, domain.CommandResult) {
	probe := domain.ProbeResult{Name: name, Command: formatCommand(command, args)}
	res, err := s.Runner.Run(ctx, command, args...)
	switch {
	case err != nil:
		res.ExitCode = -1
		probe.Err = err
		if s.Logger != nil {
			s.Logger.Warn("probe command could not start", map[string]interface{}{
				"probe":   name,
				"command": probe.Command,
				"error":   err.Error(),
			})
		}
	case res.ExitCode != 0:
		probe.Err = fmt.Errorf("%s: %w (exit %d)", probe.Command, domain.ErrProcessExit, res.ExitCode)
		if s.Logger != nil {
			s.Logger.Debug("probe command failed", map[string]interface{}{
				"probe":  name,
				"exit":   res.ExitCode,
				"stderr": strings.TrimSpace(res.Stderr),
			})
		}
	}
	probe.Exit = res.ExitCode
	return probe, res
}

// xcodeSummary renders "Xcode 15.0 (Build version 15A240d) installed" from
// the first two lines of `xcodebuild -version`.
func xcodeSummary(stdout string) string {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	version := strings.TrimSpace(lines[0])
	if version == "" {
		version = "Xcode"
	}
	if len(lines) < 2 {
		return version + " installed"
	}
	return version + " (" + strings.TrimSpace(lines[1]) + ") installed"
}

func formatCommand(command string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, command)
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

func ok(p domain.ProbeResult, summary string) domain.ProbeResult {
	p.Status, p.Summary = domain.ProbeOK, summary
	return p
}

func warn(p domain.ProbeResult, summary string) domain.ProbeResult {
	p.Status, p.Summary = domain.ProbeWarn, summary
	return p
}

func fail(p domain.ProbeResult, summary string) domain.ProbeResult {
	p.Status, p.Summary = domain.ProbeError, summary
	return p
}
