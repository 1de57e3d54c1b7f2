package domain

import "time"

// ArchiveMetadata holds the ApplicationProperties fields of an archive's Info.plist.
type ArchiveMetadata struct {
	ApplicationPath  string
	BundleIdentifier string
	SigningIdentity  string
	Team             string
}

// Field names one amendable metadata field.
type Field string

const (
	FieldBundleIdentifier Field = "bundle identifier"
	FieldSigningIdentity  Field = "signing identity"
	FieldTeam             Field = "team id"
)

// AmendRequest carries the operator's overrides. A nil field means "not supplied yet";
// a pointer to an empty string means "leave unchanged".
type AmendRequest struct {
	Bundle          string
	BundleID        *string
	SigningIdentity *string
	Team            *string
	NoInput         bool

	// IdentityFile optionally names a .p12 whose certificate supplies
	// SigningIdentity and Team when those were not given explicitly.
	IdentityFile     string
	IdentityPassword string
}

// FieldChange records one applied replacement.
type FieldChange struct {
	Field    Field
	OldValue string
	NewValue string
	Files    []string
}

// AmendResult lists the changes applied, in application order.
type AmendResult struct {
	Bundle  string
	Changes []FieldChange
}

// BundleDetails is the optional deep view of an archive's embedded app.
type BundleDetails struct {
	AppPath       string
	Executable    string
	Architectures []string
	Profile       *ProfileSummary
}

// ProfileSummary describes an embedded provisioning profile.
type ProfileSummary struct {
	Name           string
	TeamID         string
	AppID          string
	UUID           string
	ExpirationDate time.Time
	Expired        bool
}

// SigningIdentity is the read-only view of a PKCS#12 identity file.
type SigningIdentity struct {
	CommonName string
	TeamID     string
	NotAfter   time.Time
}
