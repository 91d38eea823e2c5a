package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	oldVersion, oldTime, oldCommit := Version, BuildTime, Commit
	defer func() { Version, BuildTime, Commit = oldVersion, oldTime, oldCommit }()

	Version, BuildTime, Commit = "v1.2.3", "2026-01-02T03:04:05Z", "abc1234"
	full := GetFullVersion()
	assert.True(t, strings.HasPrefix(full, "scashdap v1.2.3 (abc1234)"))
	assert.Contains(t, full, "2026-01-02 03:04:05 UTC")
	assert.Contains(t, full, "平台: ")

	BuildTime = "yesterday"
	assert.Contains(t, GetFullVersion(), "构建时间: yesterday")

	assert.Equal(t, "v1.2.3", GetBuildInfo().Version)
}
