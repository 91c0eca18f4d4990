package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/example/scriptbinds-gen/internal/generator"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

// DefaultOutputName is the descriptor file name without extension.
const DefaultOutputName = "scriptbinds"

// ErrInvalidConfig is returned when the merged configuration fails validation.
var ErrInvalidConfig = errors.Base("invalid configuration")

// Config holds everything a generation run needs. Fields tagged "-" only come
// from flags.
type Config struct {
	InputDir   string `yaml:"input" toml:"input" validate:"required"`
	OutputDir  string `yaml:"output" toml:"output" validate:"required"`
	Format     string `yaml:"format" toml:"format" validate:"omitempty,oneof=json yaml cbor"`
	OutputName string `yaml:"output_name" toml:"output_name" validate:"omitempty,excludesall=/"`

	// Prefixes replaces the built-in script binding prefixes.
	Prefixes []string `yaml:"prefixes" toml:"prefixes" validate:"omitempty,dive,required"`
	// Separator is a single character ending the stripped part of a name.
	Separator string `yaml:"separator" toml:"separator" validate:"omitempty,len=1,ascii"`
	// Types adds to or overrides the built-in type spellings.
	Types map[string]string `yaml:"types" toml:"types" validate:"omitempty,dive,keys,required,endkeys,oneof=string boolean number pointer table"`

	ConfigPath     string `yaml:"-" toml:"-"`
	ValidateOutput bool   `yaml:"-" toml:"-"`
	Debug          bool   `yaml:"-" toml:"-"`
	NoColor        bool   `yaml:"-" toml:"-"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report config file keys instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		problems := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			problems = append(problems, ve.Namespace()+": "+ve.Tag())
		}
		return errors.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return errors.WithStack(err)
}

// TypeTable returns the built-in type table with the configured spellings
// applied on top.
func (c *Config) TypeTable() map[string]generator.ScriptType {
	table := generator.DefaultTypeTable()
	for spelling, typ := range c.Types {
		table[spelling] = generator.ScriptType(typ)
	}
	return table
}

// Normalizer returns the name normalizer for the configured prefixes and
// separator.
func (c *Config) Normalizer() *generator.Normalizer {
	prefixes := c.Prefixes
	if len(prefixes) == 0 {
		prefixes = generator.DefaultPrefixes()
	}
	separator := byte(generator.DefaultSeparator)
	if c.Separator != "" {
		separator = c.Separator[0]
	}
	return generator.NewNormalizer(prefixes, separator)
}

// OutputPath returns the path of the descriptor file.
func (c *Config) OutputPath() string {
	name := c.OutputName
	if name == "" {
		name = DefaultOutputName
	}
	format := c.Format
	if format == "" {
		format = FormatJSON
	}
	return filepath.Join(c.OutputDir, name+"."+format)
}

// loadConfigFile merges the config file, if any, into config. Values of flags
// for which changed reports true are kept.
func loadConfigFile(config *Config, changed func(flag string) bool) error {
	if config.ConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return errors.Errorf("read config: %w", err)
	}

	var file Config
	switch ext := strings.ToLower(filepath.Ext(config.ConfigPath)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return errors.Errorf("%w: unsupported config file extension %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return errors.Errorf("parse config: %w", err)
	}

	if !changed("input") && file.InputDir != "" {
		config.InputDir = file.InputDir
	}
	if !changed("output") && file.OutputDir != "" {
		config.OutputDir = file.OutputDir
	}
	if !changed("format") && file.Format != "" {
		config.Format = file.Format
	}
	config.OutputName = file.OutputName
	config.Prefixes = file.Prefixes
	config.Separator = file.Separator
	config.Types = file.Types

	return nil
}
