package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fxamacker/cbor/v2"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/example/scriptbinds-gen/internal/generator"
	"github.com/example/scriptbinds-gen/internal/validator"
)

// Result describes a finished run.
type Result struct {
	OutputPath string
	Size       int
	Compounds  int
	Methods    int
	Stats      generator.Stats
}

// Generate extracts the descriptor from config.InputDir and writes it to
// config.OutputDir. config is expected to be validated.
func Generate(ctx context.Context, config *Config) (*Result, error) {
	translator := generator.NewTypeTranslator(config.TypeTable())
	gen := generator.New(translator, config.Normalizer())

	slogctx.Debug(ctx, "starting generation", "input", config.InputDir, "types", translator.Len())

	descriptor, err := gen.Run(ctx, config.InputDir)
	if err != nil {
		return nil, err
	}

	path := config.OutputPath()
	size, err := writeOutput(descriptor, path, config.Format)
	if err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: path,
		Size:       size,
		Compounds:  len(descriptor.Names()),
		Methods:    descriptor.MethodCount(),
		Stats:      gen.Stats(),
	}

	if config.ValidateOutput {
		summary, err := validator.ValidateFile(path)
		if err != nil {
			return nil, errors.Errorf("output validation failed: %w", err)
		}
		slogctx.Debug(ctx, "output is valid", "compounds", summary.Compounds, "methods", summary.Methods, "params", summary.Params)
	}

	slogctx.Info(ctx, "script binds generated",
		"output", path,
		"size", humanize.Bytes(uint64(size)),
		"scriptbinds", result.Compounds,
		"methods", result.Methods,
		"skipped_documents", result.Stats.SkippedDocuments,
		"skipped_members", result.Stats.SkippedMembers,
		"skipped_params", result.Stats.SkippedParams,
		"skipped_returns", result.Stats.SkippedReturns,
	)

	return result, nil
}

// FileSystem is the part of the OS the writer touches.
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// DefaultFileSystem implements FileSystem on the real file system.
type DefaultFileSystem struct{}

func (fs *DefaultFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *DefaultFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

var defaultFileSystem FileSystem = &DefaultFileSystem{}

func writeOutput(d *generator.Descriptor, path, format string) (int, error) {
	return writeOutputWithFS(d, path, format, defaultFileSystem)
}

func writeOutputWithFS(d *generator.Descriptor, path, format string, fs FileSystem) (int, error) {
	var buf bytes.Buffer
	if err := encodeDescriptor(&buf, format, d); err != nil {
		return 0, err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, errors.Errorf("create output directory: %w", err)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, errors.Errorf("write output: %w", err)
	}
	return buf.Len(), nil
}

func encodeDescriptor(w io.Writer, format string, d *generator.Descriptor) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d); err != nil {
			return errors.Errorf("encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return errors.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatCBOR:
		if err := cbor.NewEncoder(w).Encode(d); err != nil {
			return errors.Errorf("encode CBOR: %w", err)
		}
		return nil
	default:
		return errors.Errorf("unsupported format: %s", format)
	}
}
