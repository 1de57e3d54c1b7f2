package amend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/infrastructure/metadata"
	"github.com/rickhohler/cider-tool/internal/testutil"
)

func TestRunBundleIdentifierScenario(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	prompter := &stubPrompter{answers: []string{"com.new.app", "", ""}}
	svc := newService(prompter)

	result, err := svc.Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, domain.FieldBundleIdentifier, result.Changes[0].Field)
	assert.Equal(t, "com.old.app", result.Changes[0].OldValue)
	assert.Equal(t, "com.new.app", result.Changes[0].NewValue)

	topInfo := filepath.Join(bundle, "Info.plist")
	appInfo := filepath.Join(bundle, "Products/Applications/Foo.app", "Info.plist")
	for _, path := range []string{topInfo, appInfo} {
		raw := readFile(t, path)
		assert.Contains(t, raw, "com.new.app", path)
		assert.NotContains(t, raw, "com.old.app", path)
	}

	doc, _ := testutil.ReadPlist(t, topInfo)
	props := doc["ApplicationProperties"].(map[string]interface{})
	assert.Equal(t, "com.new.app", props["CFBundleIdentifier"])
	app, _ := testutil.ReadPlist(t, appInfo)
	assert.Equal(t, "com.new.app", app["CFBundleIdentifier"])

	assert.Equal(t, []string{LabelBundleIdentifier, LabelSigningIdentity, LabelTeam}, prompter.labels)
	assert.Equal(t, []string{"com.old.app", "iPhone Distribution: Old Corp (OLDTEAM123)", "OLDTEAM123"}, prompter.defaults)
}

func TestRunAllBlankMutatesNothing(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	topInfo := filepath.Join(bundle, "Info.plist")
	appInfo := filepath.Join(bundle, "Products/Applications/Foo.app", "Info.plist")
	beforeTop, beforeApp := readFile(t, topInfo), readFile(t, appInfo)

	result, err := newService(&stubPrompter{answers: []string{"", "", ""}}).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.NoError(t, err)

	assert.Empty(t, result.Changes)
	assert.Equal(t, beforeTop, readFile(t, topInfo))
	assert.Equal(t, beforeApp, readFile(t, appInfo))
}

func TestRunSameValueIsNotAChange(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())

	result, err := newService(&stubPrompter{answers: []string{"com.old.app", "", "OLDTEAM123"}}).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
}

func TestRunAllFieldsBinaryArchive(t *testing.T) {
	a := testutil.DefaultArchive()
	a.Format = plist.BinaryFormat
	bundle := testutil.WriteArchive(t, a)

	prompter := &stubPrompter{answers: []string{"com.new.app", "iPhone Distribution: New Corp (NEWTEAM999)", "NEWTEAM999"}}
	result, err := newService(prompter).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.NoError(t, err)
	require.Len(t, result.Changes, 3)
	assert.Equal(t, domain.FieldBundleIdentifier, result.Changes[0].Field)
	assert.Equal(t, domain.FieldSigningIdentity, result.Changes[1].Field)
	assert.Equal(t, domain.FieldTeam, result.Changes[2].Field)
	assert.Len(t, result.Changes[0].Files, 2)

	meta, err := metadata.NewPlistStore(nil).ReadArchiveMetadata(bundle)
	require.NoError(t, err)
	assert.Equal(t, "com.new.app", meta.BundleIdentifier)
	assert.Equal(t, "iPhone Distribution: New Corp (NEWTEAM999)", meta.SigningIdentity)
	assert.Equal(t, "NEWTEAM999", meta.Team)

	_, format := testutil.ReadPlist(t, filepath.Join(bundle, "Info.plist"))
	assert.Equal(t, plist.BinaryFormat, format)
}

func TestRunOverridesSkipPrompts(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	prompter := &stubPrompter{answers: []string{""}}
	bundleID := "com.new.app"

	result, err := newService(prompter).Run(context.Background(), domain.AmendRequest{
		Bundle:   bundle,
		BundleID: &bundleID,
		Team:     strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{LabelSigningIdentity}, prompter.labels)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "com.new.app", result.Changes[0].NewValue)
}

func TestRunNoInputLeavesUnsetFields(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	prompter := &stubPrompter{}

	result, err := newService(prompter).Run(context.Background(), domain.AmendRequest{
		Bundle:  bundle,
		Team:    strPtr("NEWTEAM999"),
		NoInput: true,
	})
	require.NoError(t, err)
	assert.Empty(t, prompter.labels)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, domain.FieldTeam, result.Changes[0].Field)
}

func TestRunIdentityFilePrefillsSigningFields(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	svc := newService(&stubPrompter{answers: []string{""}})
	svc.Identity = stubIdentity{id: domain.SigningIdentity{CommonName: "iPhone Distribution: New Corp (NEWTEAM999)", TeamID: "NEWTEAM999"}}

	result, err := svc.Run(context.Background(), domain.AmendRequest{Bundle: bundle, IdentityFile: "dist.p12", IdentityPassword: "secret"})
	require.NoError(t, err)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, "iPhone Distribution: New Corp (NEWTEAM999)", result.Changes[0].NewValue)
	assert.Equal(t, "NEWTEAM999", result.Changes[1].NewValue)
}

func TestRunIdentityFileError(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	svc := newService(&stubPrompter{})
	svc.Identity = stubIdentity{err: errors.New("bad password")}

	_, err := svc.Run(context.Background(), domain.AmendRequest{Bundle: bundle, IdentityFile: "dist.p12"})
	assert.ErrorContains(t, err, "bad password")
}

func TestRunEmptyCurrentValueSetsKey(t *testing.T) {
	a := testutil.DefaultArchive()
	a.Team = ""
	bundle := testutil.WriteArchive(t, a)

	result, err := newService(&stubPrompter{answers: []string{"", "", "NEWTEAM999"}}).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)

	meta, err := metadata.NewPlistStore(nil).ReadArchiveMetadata(bundle)
	require.NoError(t, err)
	assert.Equal(t, "NEWTEAM999", meta.Team)
}

func TestRunPrompterError(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	prompter := &stubPrompter{err: errors.New("terminal closed")}

	_, err := newService(prompter).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	assert.ErrorContains(t, err, "terminal closed")
}

func TestRunMissingEmbeddedAppReturnsPartialResult(t *testing.T) {
	bundle := testutil.WriteArchive(t, testutil.DefaultArchive())
	require.NoError(t, os.RemoveAll(filepath.Join(bundle, "Products")))

	result, err := newService(&stubPrompter{answers: []string{"com.new.app", "", ""}}).Run(context.Background(), domain.AmendRequest{Bundle: bundle})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIO))

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, domain.FieldBundleIdentifier, change.Field)
	assert.Equal(t, []string{filepath.Join(bundle, "Info.plist")}, change.Files)

	meta, err := metadata.NewPlistStore(nil).ReadArchiveMetadata(bundle)
	require.NoError(t, err)
	assert.Equal(t, "com.new.app", meta.BundleIdentifier)
}

func TestRunSigningIdentityWithApostrophe(t *testing.T) {
	a := testutil.DefaultArchive()
	a.SigningIdentity = "iPhone Distribution: O'Brien Ltd (OLDTEAM123)"
	bundle := testutil.WriteArchive(t, a)
	identity := "Apple Distribution: New Co (NEWTEAM999)"

	result, err := newService(&stubPrompter{}).Run(context.Background(), domain.AmendRequest{
		Bundle:          bundle,
		SigningIdentity: &identity,
		NoInput:         true,
	})
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)

	meta, err := metadata.NewPlistStore(nil).ReadArchiveMetadata(bundle)
	require.NoError(t, err)
	assert.Equal(t, identity, meta.SigningIdentity)
}

func TestValidateArchive(t *testing.T) {
	archive := testutil.WriteArchive(t, testutil.DefaultArchive())
	plainDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "Foo.xcarchive")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "archive", path: archive},
		{name: "archive with trailing slash", path: archive + string(filepath.Separator)},
		{name: "empty", path: "", wantErr: true},
		{name: "missing", path: filepath.Join(plainDir, "Missing.xcarchive"), wantErr: true},
		{name: "wrong extension", path: plainDir, wantErr: true},
		{name: "file not directory", path: file, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArchive(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidBundle))
		})
	}
}

func TestRunInvalidBundleTouchesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Foo.app")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	prompter := &stubPrompter{}

	_, err := newService(prompter).Run(context.Background(), domain.AmendRequest{Bundle: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBundle))
	assert.Empty(t, prompter.labels)
}

func newService(prompter *stubPrompter) *Service {
	return &Service{
		Store:    metadata.NewPlistStore(nil),
		Prompter: prompter,
		Strategy: domain.StrategyAuto,
	}
}

type stubPrompter struct {
	answers  []string
	labels   []string
	defaults []string
	err      error
}

func (p *stubPrompter) Ask(label, current string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.labels = append(p.labels, label)
	p.defaults = append(p.defaults, current)
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type stubIdentity struct {
	id  domain.SigningIdentity
	err error
}

func (s stubIdentity) ReadIdentity(string, string) (domain.SigningIdentity, error) {
	return s.id, s.err
}

func strPtr(s string) *string { return &s }

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}
