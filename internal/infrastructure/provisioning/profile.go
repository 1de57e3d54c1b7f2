// Package provisioning reads embedded .mobileprovision files.
package provisioning

import (
	"fmt"
	"os"
	"time"

	"go.mozilla.org/pkcs7"
	"howett.net/plist"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// profile is the subset of provisioning profile keys cider reports.
type profile struct {
	Name                        string                 `plist:"Name"`
	TeamIdentifier              []string               `plist:"TeamIdentifier"`
	ApplicationIdentifierPrefix []string               `plist:"ApplicationIdentifierPrefix"`
	Entitlements                map[string]interface{} `plist:"Entitlements"`
	ExpirationDate              time.Time              `plist:"ExpirationDate"`
	UUID                        string                 `plist:"UUID"`
}

// Reader implements ports.ProfileReader.
type Reader struct {
	now func() time.Time
}

// NewReader builds a profile reader.
func NewReader() *Reader {
	return &Reader{now: time.Now}
}

// ReadProfile parses the CMS container at path and summarises its plist payload.
func (r *Reader) ReadProfile(path string) (domain.ProfileSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}
	return r.Parse(data)
}

// Parse summarises raw .mobileprovision bytes.
func (r *Reader) Parse(data []byte) (domain.ProfileSummary, error) {
	p7, err := pkcs7.Parse(data)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("%w: PKCS#7 container: %v", domain.ErrMalformedDocument, err)
	}

	var p profile
	if _, err := plist.Unmarshal(p7.Content, &p); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("%w: provisioning profile plist: %v", domain.ErrMalformedDocument, err)
	}

	return domain.ProfileSummary{
		Name:           p.Name,
		TeamID:         p.teamID(),
		AppID:          p.applicationIdentifier(),
		UUID:           p.UUID,
		ExpirationDate: p.ExpirationDate,
		Expired:        r.now().After(p.ExpirationDate),
	}, nil
}

func (p profile) teamID() string {
	if len(p.TeamIdentifier) > 0 {
		return p.TeamIdentifier[0]
	}
	if len(p.ApplicationIdentifierPrefix) > 0 {
		return p.ApplicationIdentifierPrefix[0]
	}
	return ""
}

func (p profile) applicationIdentifier() string {
	if appID, ok := p.Entitlements["application-identifier"].(string); ok {
		return appID
	}
	return ""
}

var _ ports.ProfileReader = (*Reader)(nil)
