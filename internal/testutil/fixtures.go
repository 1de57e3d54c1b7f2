// Package testutil builds on-disk fixtures for tests: archive bundles,
// self-signed certificates, PKCS#12 files and provisioning profiles.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.mozilla.org/pkcs7"
	"howett.net/plist"
	gop12 "software.sslmate.com/src/go-pkcs12"
)

// Archive describes the fields written into a fixture .xcarchive.
type Archive struct {
	Name            string
	ApplicationPath string
	BundleID        string
	SigningIdentity string
	Team            string
	Format          int
}

// DefaultArchive returns a typical archive description.
func DefaultArchive() Archive {
	return Archive{
		Name:            "Foo.xcarchive",
		ApplicationPath: "Products/Applications/Foo.app",
		BundleID:        "com.old.app",
		SigningIdentity: "iPhone Distribution: Old Corp (OLDTEAM123)",
		Team:            "OLDTEAM123",
		Format:          plist.XMLFormat,
	}
}

// WriteArchive creates the archive under a temp dir and returns its path.
func WriteArchive(t testing.TB, a Archive) string {
	t.Helper()
	bundle := filepath.Join(t.TempDir(), a.Name)
	appDir := filepath.Join(bundle, a.ApplicationPath)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}

	WritePlist(t, filepath.Join(bundle, "Info.plist"), map[string]interface{}{
		"ArchiveVersion": uint64(2),
		"CreationDate":   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"Name":           "Foo",
		"SchemeName":     "Foo",
		"ApplicationProperties": map[string]interface{}{
			"ApplicationPath":            a.ApplicationPath,
			"CFBundleIdentifier":         a.BundleID,
			"CFBundleShortVersionString": "1.0",
			"CFBundleVersion":            "1",
			"SigningIdentity":            a.SigningIdentity,
			"Team":                       a.Team,
			"Architectures":              []interface{}{"arm64"},
		},
	}, a.Format)

	WritePlist(t, filepath.Join(appDir, "Info.plist"), map[string]interface{}{
		"CFBundleIdentifier":  a.BundleID,
		"CFBundleExecutable":  "Foo",
		"CFBundleName":        "Foo",
		"CFBundlePackageType": "APPL",
	}, a.Format)

	return bundle
}

// WritePlist encodes doc in the given plist format.
func WritePlist(t testing.TB, path string, doc interface{}, format int) {
	t.Helper()
	var (
		data []byte
		err  error
	)
	if format == plist.XMLFormat {
		data, err = plist.MarshalIndent(doc, format, "\t")
	} else {
		data, err = plist.Marshal(doc, format)
	}
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// ReadPlist decodes the document at path.
func ReadPlist(t testing.TB, path string) (map[string]interface{}, int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	format, err := plist.Unmarshal(data, &doc)
	if err != nil {
		t.Fatal(err)
	}
	return doc, format
}

// Certificate is a self-signed certificate with its key.
type Certificate struct {
	Cert *x509.Certificate
	Key  *rsa.PrivateKey
}

// SelfSigned generates a certificate shaped like an Apple signing certificate.
func SelfSigned(t testing.TB, commonName, teamID string) Certificate {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			CommonName:         commonName,
			OrganizationalUnit: []string{teamID},
			Organization:       []string{"Test Corp"},
		},
		NotBefore:   time.Now().Add(-time.Hour),
		NotAfter:    time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageCodeSigning},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return Certificate{Cert: cert, Key: key}
}

// WriteP12 writes c as a password-protected PKCS#12 file.
func WriteP12(t testing.TB, path string, c Certificate, password string) {
	t.Helper()
	data, err := gop12.Modern.Encode(c.Key, c.Cert, nil, password)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

// Profile is the payload of a fixture provisioning profile.
type Profile struct {
	Name           string                 `plist:"Name"`
	TeamIdentifier []string               `plist:"TeamIdentifier"`
	Entitlements   map[string]interface{} `plist:"Entitlements"`
	ExpirationDate time.Time              `plist:"ExpirationDate"`
	UUID           string                 `plist:"UUID"`
}

// MobileProvision wraps p in a signed CMS container.
func MobileProvision(t testing.TB, p Profile, signer Certificate) []byte {
	t.Helper()
	content, err := plist.MarshalIndent(p, plist.XMLFormat, "\t")
	if err != nil {
		t.Fatal(err)
	}
	sd, err := pkcs7.NewSignedData(content)
	if err != nil {
		t.Fatal(err)
	}
	if err := sd.AddSigner(signer.Cert, signer.Key, pkcs7.SignerInfoConfig{}); err != nil {
		t.Fatal(err)
	}
	data, err := sd.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return data
}
