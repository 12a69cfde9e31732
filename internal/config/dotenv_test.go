package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ValidContent(t *testing.T) {
	content := `
# comment
OPENAI_API_KEY=sk-test
export PROVIDER=anthropic
MODEL_NAME="claude-x"
QUOTED='single'
`
	env, err := ParseEnv(strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"OPENAI_API_KEY": "sk-test",
		"PROVIDER":       "anthropic",
		"MODEL_NAME":     "claude-x",
		"QUOTED":         "single",
	}, env)
}

func TestParseEnv_InvalidLine_ReturnsError(t *testing.T) {
	_, err := ParseEnv(strings.NewReader("JUSTAKEY\n"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid line 1")
}

func TestLoadDotEnv_MissingFile_NoError(t *testing.T) {
	n, err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))

	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REPOQA_TEST_EXISTING=fromfile\nREPOQA_TEST_NEW=fromfile\n"), 0o644))
	t.Setenv("REPOQA_TEST_EXISTING", "fromenv")
	t.Setenv("REPOQA_TEST_NEW", "")
	os.Unsetenv("REPOQA_TEST_NEW")

	n, err := LoadDotEnv(path)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "fromenv", os.Getenv("REPOQA_TEST_EXISTING"))
	assert.Equal(t, "fromfile", os.Getenv("REPOQA_TEST_NEW"))
}
