package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/svn"
)

func TestDoctorCommand_AllReady(t *testing.T) {
	e := newCLIEnv(t)
	e.expectProbe()

	require.NoError(t, e.run("doctor"))

	out := e.out.String()
	assert.Contains(t, out, "✓ svn 1.14.2")
	assert.Contains(t, out, "✓ svnadmin 1.14.2")
	assert.Contains(t, out, "RA modules: ra_svn, ra_local")
	assert.Contains(t, out, "All tools are ready.")
}

func TestDoctorCommand_AdminMissing(t *testing.T) {
	e := newCLIEnv(t)
	e.fake.Expect(svn.TemplateVersion).Stdout("1.14.2\n")
	e.fake.Expect(svn.TemplateVersionFull).Stdout(versionListing)
	e.fake.Expect(svn.TemplateAdminVersion).Fails(errors.ErrToolUnavailable)

	require.NoError(t, e.run("doctor"), "svnadmin is optional")

	out := e.out.String()
	assert.Contains(t, out, "✗ svnadmin not found")
	assert.Contains(t, out, "create is unavailable")
}

func TestDoctorCommand_ClientOutdated(t *testing.T) {
	e := newCLIEnv(t)
	e.fake.Expect(svn.TemplateVersion).Stdout("1.6.17\n")
	e.fake.Expect(svn.TemplateVersionFull).Stdout(versionListing)
	e.fake.Expect(svn.TemplateAdminVersion).Stdout("1.6.17\n")

	err := e.run("doctor")

	require.ErrorIs(t, err, errors.ErrEnvironment)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, e.out.String(), "Missing required tools")
	assert.Contains(t, e.out.String(), "outdated (have 1.6.17, need 1.7.0)")
}

func TestDoctorCommand_JSON(t *testing.T) {
	e := newCLIEnv(t)
	e.expectProbe()

	require.NoError(t, e.run("--output", "json", "doctor"))

	var report struct {
		Tools []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"tools"`
		RAModules   []string `json:"ra_modules"`
		Environment struct {
			RALocal bool `json:"ra_local"`
		} `json:"environment"`
		OK bool `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &report))
	require.Len(t, report.Tools, 2)
	assert.Equal(t, "svn", report.Tools[0].Name)
	assert.Equal(t, "installed", report.Tools[0].Status)
	assert.True(t, report.Environment.RALocal)
	assert.True(t, report.OK)
}
