package config

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/svnop/internal/constants"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
	"github.com/mrz1836/svnop/internal/svn"
	"github.com/mrz1836/svnop/internal/testutil"
)

const versionListing = `svn, version 1.14.2 (r1899510)
   compiled Jan 31 2023, 14:54:30 on x86_64-pc-linux-gnu

The following repository access (RA) modules are available:

* ra_svn : Module for accessing a repository using the svn network protocol.
  - with Cyrus SASL authentication
  - handles 'svn' scheme
* ra_local : Module for accessing a repository on local disk.
  - handles 'file' scheme
* ra_serf : Module for accessing a repository via WebDAV protocol using serf.
  - handles 'http' scheme
  - handles 'https' scheme
`

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, required string
		want              int
	}{
		{"1.14.2", "1.7.0", 1},
		{"1.7.0", "1.7.0", 0},
		{"1.6.23", "1.7.0", -1},
		{"v1.10.0", "1.9.9", 1},
		{"1.14.2-dev", "1.14.2", 0},
		{"2", "1.99.99", 1},
	}
	for _, tc := range tests {
		t.Run(tc.current+"_vs_"+tc.required, func(t *testing.T) {
			assert.Equal(t, tc.want, CompareVersions(tc.current, tc.required))
		})
	}
}

func TestToolStatus_JSON(t *testing.T) {
	data, err := json.Marshal(ToolStatusOutdated)
	require.NoError(t, err)
	assert.JSONEq(t, `"outdated"`, string(data))

	var s ToolStatus
	require.NoError(t, json.Unmarshal([]byte(`"installed"`), &s))
	assert.Equal(t, ToolStatusInstalled, s)
	require.NoError(t, json.Unmarshal([]byte(`"bogus"`), &s))
	assert.Equal(t, ToolStatusMissing, s)
}

func TestToolDetector_Detect_AllInstalled(t *testing.T) {
	fake := testutil.NewFakeExecutor(t).Unordered()
	fake.Expect(svn.TemplateVersion).Stdout("1.14.2\n")
	fake.Expect(svn.TemplateVersionFull).Stdout(versionListing)
	fake.Expect(svn.TemplateAdminVersion).Stdout("1.14.2\n")

	result, err := NewToolDetector(fake, DefaultConfig().SVN).Detect(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Tools, 2)
	assert.Equal(t, constants.ToolSVN, result.Tools[0].Name)
	assert.Equal(t, "1.14.2", result.Tools[0].CurrentVersion)
	assert.Equal(t, ToolStatusInstalled, result.Tools[0].Status)
	assert.Equal(t, ToolStatusInstalled, result.Tools[1].Status)
	assert.ElementsMatch(t, []string{"ra_svn", "ra_local", "ra_serf"}, result.RAModules)
	assert.False(t, result.HasMissingRequired)
}

func TestToolDetector_Detect_OutdatedClient(t *testing.T) {
	fake := testutil.NewFakeExecutor(t).Unordered()
	fake.Expect(svn.TemplateVersion).Stdout("1.6.17\n")
	fake.Expect(svn.TemplateVersionFull).Stdout(versionListing)
	fake.Expect(svn.TemplateAdminVersion).Stdout("1.6.17\n")

	result, err := NewToolDetector(fake, DefaultConfig().SVN).Detect(context.Background())
	require.NoError(t, err)

	assert.True(t, result.HasMissingRequired)
	missing := result.MissingRequiredTools()
	require.Len(t, missing, 1)
	assert.Equal(t, ToolStatusOutdated, missing[0].Status)

	msg := FormatMissingToolsError(missing)
	assert.Contains(t, msg, "outdated (have 1.6.17, need 1.7.0)")
}

func TestToolDetector_Detect_MissingClientSkipsModules(t *testing.T) {
	fake := testutil.NewFakeExecutor(t).Unordered()
	fake.Expect(svn.TemplateVersion).Fails(svnerrors.ErrToolUnavailable)
	fake.Expect(svn.TemplateAdminVersion).Stdout("1.14.2\n")

	result, err := NewToolDetector(fake, DefaultConfig().SVN).Detect(context.Background())
	require.NoError(t, err)

	svnTool, ok := result.Tool(constants.ToolSVN)
	require.True(t, ok)
	assert.Equal(t, ToolStatusMissing, svnTool.Status)
	assert.Empty(t, result.RAModules)
	assert.True(t, result.HasMissingRequired)
	assert.NotContains(t, fake.Templates(), svn.TemplateVersionFull)
}

func TestToolDetector_Detect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewToolDetector(testutil.NewFakeExecutor(t), DefaultConfig().SVN).Detect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatMissingToolsError_Empty(t *testing.T) {
	assert.Empty(t, FormatMissingToolsError(nil))
}
