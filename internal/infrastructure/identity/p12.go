// Package identity reads PKCS#12 signing identities for display only.
package identity

import (
	"crypto/x509"
	"fmt"
	"os"

	gop12 "software.sslmate.com/src/go-pkcs12"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// P12Reader implements ports.IdentityReader.
type P12Reader struct{}

// NewP12Reader builds a reader.
func NewP12Reader() *P12Reader {
	return &P12Reader{}
}

// ReadIdentity decodes the .p12 file at path and returns the certificate's
// common name and team identifier. The private key is discarded.
func (r *P12Reader) ReadIdentity(path, password string) (domain.SigningIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SigningIdentity{}, fmt.Errorf("read %s: %w: %w", path, domain.ErrIO, err)
	}

	_, cert, _, err := gop12.DecodeChain(data, password)
	if err != nil {
		return domain.SigningIdentity{}, fmt.Errorf("decode P12 %s: %w", path, err)
	}

	return domain.SigningIdentity{
		CommonName: cert.Subject.CommonName,
		TeamID:     teamID(cert),
		NotAfter:   cert.NotAfter,
	}, nil
}

// teamID is the organisational unit Apple stamps on signing certificates.
func teamID(cert *x509.Certificate) string {
	if len(cert.Subject.OrganizationalUnit) > 0 {
		return cert.Subject.OrganizationalUnit[0]
	}
	return ""
}

var _ ports.IdentityReader = (*P12Reader)(nil)
