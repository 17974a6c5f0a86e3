package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
)

const record = `package settings

type Settings struct {
	Verbose *bool
	Paths   []string ` + "`builder:\"each=Path\"`" + `
}
`

// newModule writes a dependency-free module holding one record and moves
// the test into it.
func newModule(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/settings\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.go"), []byte(record), 0o644))
	t.Chdir(dir)

	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "disabled"))

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestGenThenCheck(t *testing.T) {
	dir := newModule(t)

	_, err := execute(t, "check", "-t", "Settings")
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, err.Error(), filepath.Join(dir, "settings_builder.go"))

	_, err = execute(t, "gen", "-t", "Settings")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "settings_builder.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func NewSettingsBuilder() *SettingsBuilder {")
	assert.Contains(t, string(content), "func (b *SettingsBuilder) Path(path string) *SettingsBuilder {")

	_, err = execute(t, "check", "-t", "Settings")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings_builder.go"), append(content, '\n'), 0o644))

	_, err = execute(t, "check", "-t", "Settings")
	require.ErrorIs(t, err, ErrStale)
}

func TestGenFlagsOverrideConfigFile(t *testing.T) {
	dir := newModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".builder-generator.yaml"),
		[]byte("types: [Settings]\noutput:\n  suffix: _from_file.go\n"), 0o644))

	_, err := execute(t, "gen", "--suffix", "_from_flag.go", "--comments=false")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "settings_from_flag.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "// NewSettingsBuilder")

	_, err = os.Stat(filepath.Join(dir, "settings_from_file.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenWithoutTypes(t *testing.T) {
	newModule(t)

	_, err := execute(t, "gen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no type names given")
}

func TestAnalyze(t *testing.T) {
	newModule(t)

	out, err := execute(t, "analyze")
	require.NoError(t, err)

	assert.Contains(t, out, "record: example.com/settings.Settings\n")
	assert.Contains(t, out, "builder: SettingsBuilder\n")
	assert.Contains(t, out, "shape: optional\n")
	assert.Contains(t, out, "append: Path\n")
}

func TestAnalyzeSkipsGeneratedBuilders(t *testing.T) {
	newModule(t)

	_, err := execute(t, "gen", "-t", "Settings")
	require.NoError(t, err)

	out, err := execute(t, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "record: example.com/settings.Settings\n")
	assert.NotContains(t, out, "record: example.com/settings.SettingsBuilder")
}

func TestGenRequiredFieldCompilesInForeignModule(t *testing.T) {
	dir := newModule(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.go"), []byte(`package settings

type Server struct {
	Addr    string
	Timeout *int
}
`), 0o644))

	_, err := execute(t, "gen", "-t", "Server")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "server_builder.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `errors.New("Server: Addr is not set")`)
	assert.NotContains(t, string(content), "buildererrors")

	graph, err := analyze.NewAnalyzer(analyze.WithDir(dir)).LoadPackages(t.Context(), ".")
	require.NoError(t, err, "generated builder must type-check outside this module")
	assert.NotNil(t, graph.GetRecord(analyze.TypeID{PkgPath: "example.com/settings", Name: "ServerBuilder"}))
}

func TestAnalyzeUnknownType(t *testing.T) {
	newModule(t)

	_, err := execute(t, "analyze", "-t", "Setings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean Settings?")
}

func TestInvalidConfig(t *testing.T) {
	newModule(t)

	_, err := execute(t, "gen", "-t", "Settings", "--suffix", "_builder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
