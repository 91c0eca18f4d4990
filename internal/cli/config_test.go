package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/example/scriptbinds-gen/internal/generator"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noFlagsChanged(string) bool { return false }

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "no config file", path: ""},
		{name: "nonexistent config file", path: "/nonexistent/scriptbinds.yml", wantErr: true},
		{name: "unsupported extension", path: writeConfig(t, "scriptbinds.json", "{}"), wantErr: true},
		{name: "malformed yaml", path: writeConfig(t, "scriptbinds.yaml", "types: [\n"), wantErr: true},
		{name: "malformed toml", path: writeConfig(t, "scriptbinds.toml", "types = \n"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{ConfigPath: tt.path}
			err := loadConfigFile(config, noFlagsChanged)
			if (err != nil) != tt.wantErr {
				t.Errorf("loadConfigFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "scriptbinds.yml", `
input: docs/xml
output: build/scripts
format: yaml
output_name: bindings
separator: "_"
prefixes:
  - "game::scripting::Bind"
types:
  "glm::vec4": table
  double: number
`)

	config := &Config{ConfigPath: path, Format: FormatJSON}
	require.NoError(t, loadConfigFile(config, noFlagsChanged))

	assert.Equal(t, "docs/xml", config.InputDir)
	assert.Equal(t, "build/scripts", config.OutputDir)
	assert.Equal(t, FormatYAML, config.Format)
	assert.Equal(t, "bindings", config.OutputName)
	assert.Equal(t, []string{"game::scripting::Bind"}, config.Prefixes)
	assert.Equal(t, map[string]string{"glm::vec4": "table", "double": "number"}, config.Types)
	assert.Equal(t, filepath.Join("build/scripts", "bindings.yaml"), config.OutputPath())
	require.NoError(t, config.Validate())
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "scriptbinds.toml", `
input = "docs/xml"
output = "build/scripts"
format = "cbor"
separator = "-"

[types]
"glm::vec4" = "table"
`)

	config := &Config{ConfigPath: path}
	require.NoError(t, loadConfigFile(config, noFlagsChanged))

	assert.Equal(t, "docs/xml", config.InputDir)
	assert.Equal(t, FormatCBOR, config.Format)
	assert.Equal(t, "-", config.Separator)
	assert.Equal(t, map[string]string{"glm::vec4": "table"}, config.Types)
	require.NoError(t, config.Validate())
}

func TestLoadConfigFileFlagsWin(t *testing.T) {
	path := writeConfig(t, "scriptbinds.yaml", "input: from-file\noutput: from-file\nformat: yaml\n")

	config := &Config{ConfigPath: path, InputDir: "from-flag", OutputDir: "", Format: FormatJSON}
	changed := func(flag string) bool { return flag == "input" || flag == "format" }
	require.NoError(t, loadConfigFile(config, changed))

	assert.Equal(t, "from-flag", config.InputDir)
	assert.Equal(t, "from-file", config.OutputDir)
	assert.Equal(t, FormatJSON, config.Format)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{InputDir: "in", OutputDir: "out", Format: FormatJSON}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "missing input", modify: func(c *Config) { c.InputDir = "" }, wantErr: "input: required"},
		{name: "missing output", modify: func(c *Config) { c.OutputDir = "" }, wantErr: "output: required"},
		{name: "unknown format", modify: func(c *Config) { c.Format = "xml" }, wantErr: "format: oneof"},
		{name: "long separator", modify: func(c *Config) { c.Separator = "::" }, wantErr: "separator: len"},
		{name: "empty prefix", modify: func(c *Config) { c.Prefixes = []string{""} }, wantErr: "required"},
		{name: "unknown script type", modify: func(c *Config) { c.Types = map[string]string{"double": "integer"} }, wantErr: "oneof"},
		{name: "no-value is not a parameter type", modify: func(c *Config) { c.Types = map[string]string{"void": "no-value"} }, wantErr: "oneof"},
		{name: "output name with a directory", modify: func(c *Config) { c.OutputName = "a/b" }, wantErr: "output_name: excludesall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.modify(&config)
			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigNormalizer(t *testing.T) {
	config := &Config{}
	short, ok := config.Normalizer().Normalize(generator.EnginePrefix + "Input")
	require.True(t, ok)
	assert.Equal(t, "Input", short)

	config = &Config{Prefixes: []string{"game::Bind"}, Separator: "-"}
	short, ok = config.Normalizer().Normalize("game::BindUI-Menu")
	require.True(t, ok)
	assert.Equal(t, "Menu", short)

	_, ok = config.Normalizer().Normalize(generator.EnginePrefix + "Input")
	assert.False(t, ok, "configured prefixes replace the built-in ones")
}

func TestConfigTypeTable(t *testing.T) {
	config := &Config{Types: map[string]string{"double": "number", "bool": "string"}}
	table := config.TypeTable()

	assert.Equal(t, generator.TypeNumber, table["double"])
	assert.Equal(t, generator.TypeString, table["bool"], "configured spellings override built-in ones")
	assert.Equal(t, generator.TypeString, table["const char *"])
	assert.Len(t, table, len(generator.DefaultTypeTable())+1)
}
