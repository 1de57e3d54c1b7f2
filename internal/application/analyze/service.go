package analyze

import (
	"fmt"
	"path/filepath"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/pkg/filesystem"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// Service reads archive metadata for display.
type Service struct {
	Store    ports.MetadataStore
	Profiles ports.ProfileReader
	Binaries ports.BinaryInspector
	Logger   ports.Logger
}

// Metadata returns the ApplicationProperties of bundle. Any existing directory
// is accepted; the extension is not checked.
func (s *Service) Metadata(bundle string) (domain.ArchiveMetadata, error) {
	if bundle == "" || !filesystem.IsDir(bundle) {
		return domain.ArchiveMetadata{}, fmt.Errorf("%w: %q was not found", domain.ErrInvalidBundle, bundle)
	}
	return s.Store.ReadArchiveMetadata(bundle)
}

// Details inspects the embedded application. Missing or unreadable artefacts
// leave the corresponding fields empty.
func (s *Service) Details(bundle string, meta domain.ArchiveMetadata) domain.BundleDetails {
	appPath := filepath.Join(bundle, meta.ApplicationPath)
	details := domain.BundleDetails{AppPath: appPath}

	executable, err := s.Store.StringValue(filepath.Join(appPath, domain.InfoPlistName), domain.KeyBundleExecutable)
	if err != nil {
		s.debug("executable name unavailable", err, appPath)
	} else {
		details.Executable = executable
	}

	if details.Executable != "" && s.Binaries != nil {
		archs, err := s.Binaries.Architectures(filepath.Join(appPath, details.Executable))
		if err != nil {
			s.debug("architectures unavailable", err, appPath)
		} else {
			details.Architectures = archs
		}
	}

	if s.Profiles != nil {
		profilePath := filepath.Join(appPath, domain.EmbeddedProfileName)
		if filesystem.FileExists(profilePath) {
			profile, err := s.Profiles.ReadProfile(profilePath)
			if err != nil {
				s.debug("provisioning profile unreadable", err, profilePath)
			} else {
				details.Profile = &profile
			}
		}
	}
	return details
}

func (s *Service) debug(msg string, err error, path string) {
	if s.Logger != nil {
		s.Logger.Debug(msg, map[string]interface{}{"path": path, "error": err.Error()})
	}
}
