package amend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/pkg/filesystem"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// Prompt labels, asked in this order.
const (
	LabelBundleIdentifier = "App Bundle Identifier"
	LabelSigningIdentity  = "Signing Identity"
	LabelTeam             = "Apple Developer Team Id"
)

// Service rewrites identifier and signing fields of an .xcarchive.
type Service struct {
	Store    ports.MetadataStore
	Prompter ports.FieldPrompter
	Identity ports.IdentityReader
	Logger   ports.Logger
	Strategy domain.RewriteStrategy
}

// ValidateArchive checks that bundle is an existing directory ending in .xcarchive.
func ValidateArchive(bundle string) error {
	if bundle == "" || !filesystem.IsDir(bundle) {
		return fmt.Errorf("%w: %q was not found", domain.ErrInvalidBundle, bundle)
	}
	if !strings.HasSuffix(filepath.Clean(bundle), domain.ArchiveExtension) {
		return fmt.Errorf("%w: %q is not an %s bundle", domain.ErrInvalidBundle, bundle, domain.ArchiveExtension)
	}
	return nil
}

// Run validates the bundle, resolves the replacement values and applies them.
// Changes applied before a failure are returned alongside the error.
func (s *Service) Run(ctx context.Context, req domain.AmendRequest) (domain.AmendResult, error) {
	result := domain.AmendResult{Bundle: req.Bundle}
	if err := ValidateArchive(req.Bundle); err != nil {
		return result, err
	}

	meta, err := s.Store.ReadArchiveMetadata(req.Bundle)
	if err != nil {
		return result, err
	}

	answers, err := s.resolve(req, meta)
	if err != nil {
		return result, err
	}

	topInfo := filepath.Join(req.Bundle, domain.InfoPlistName)
	appInfo := filepath.Join(req.Bundle, meta.ApplicationPath, domain.InfoPlistName)

	steps := []struct {
		field   domain.Field
		current string
		answer  string
		targets []target
	}{
		{domain.FieldBundleIdentifier, meta.BundleIdentifier, answers.bundleID, []target{
			{topInfo, []string{domain.KeyApplicationProperties, domain.KeyBundleIdentifier}},
			{appInfo, []string{domain.KeyBundleIdentifier}},
		}},
		{domain.FieldSigningIdentity, meta.SigningIdentity, answers.signingIdentity, []target{
			{topInfo, []string{domain.KeyApplicationProperties, domain.KeySigningIdentity}},
		}},
		{domain.FieldTeam, meta.Team, answers.team, []target{
			{topInfo, []string{domain.KeyApplicationProperties, domain.KeyTeam}},
		}},
	}

	for _, step := range steps {
		if step.answer == "" || step.answer == step.current {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		change := domain.FieldChange{Field: step.field, OldValue: step.current, NewValue: step.answer}
		for _, t := range step.targets {
			if err := s.rewrite(t, step.current, step.answer); err != nil {
				if len(change.Files) > 0 {
					result.Changes = append(result.Changes, change)
				}
				return result, fmt.Errorf("change %s: %w", step.field, err)
			}
			change.Files = append(change.Files, t.path)
		}
		result.Changes = append(result.Changes, change)
	}
	return result, nil
}

type target struct {
	path    string
	keyPath []string
}

type answers struct {
	bundleID        string
	signingIdentity string
	team            string
}

// resolve fills every field from the request, the identity file or the prompter,
// in that order of precedence.
func (s *Service) resolve(req domain.AmendRequest, meta domain.ArchiveMetadata) (answers, error) {
	if req.IdentityFile != "" {
		if s.Identity == nil {
			return answers{}, fmt.Errorf("identity reader unavailable")
		}
		id, err := s.Identity.ReadIdentity(req.IdentityFile, req.IdentityPassword)
		if err != nil {
			return answers{}, err
		}
		if req.SigningIdentity == nil {
			req.SigningIdentity = &id.CommonName
		}
		if req.Team == nil && id.TeamID != "" {
			req.Team = &id.TeamID
		}
	}

	var a answers
	var err error
	if a.bundleID, err = s.answer(req.BundleID, req.NoInput, LabelBundleIdentifier, meta.BundleIdentifier); err != nil {
		return answers{}, err
	}
	if a.signingIdentity, err = s.answer(req.SigningIdentity, req.NoInput, LabelSigningIdentity, meta.SigningIdentity); err != nil {
		return answers{}, err
	}
	if a.team, err = s.answer(req.Team, req.NoInput, LabelTeam, meta.Team); err != nil {
		return answers{}, err
	}
	return a, nil
}

func (s *Service) answer(override *string, noInput bool, label, current string) (string, error) {
	if override != nil {
		return strings.TrimSpace(*override), nil
	}
	if noInput || s.Prompter == nil {
		return "", nil
	}
	value, err := s.Prompter.Ask(label, current)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(value), nil
}

// rewrite substitutes old with replacement in the target document. An empty
// old value cannot be searched for, so the key is set directly instead.
func (s *Service) rewrite(t target, old, replacement string) error {
	if s.Logger != nil {
		s.Logger.Debug("amending document", map[string]interface{}{
			"path": t.path,
			"key":  strings.Join(t.keyPath, "."),
		})
	}
	if old == "" {
		return s.Store.Set(t.path, t.keyPath, replacement)
	}
	return s.Store.Replace(t.path, t.keyPath, old, replacement, s.Strategy)
}
