package generator

import (
	"context"
	"path/filepath"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

const (
	// IndexFile is the name of the index document inside the input directory.
	IndexFile = "index.xml"
	// DocumentExt is appended to a compound's refid to find its document.
	DocumentExt = ".xml"
)

// LoadFunc loads one document of the input directory.
type LoadFunc func(path string) (*doctree.Node, error)

// Stats counts what a run skipped.
type Stats struct {
	Documents        int
	SkippedDocuments int
	SkippedMembers   int
	SkippedParams    int
	SkippedReturns   int
}

// Generator extracts script binding descriptors from a documentation tree.
type Generator struct {
	translator *TypeTranslator
	normalizer *Normalizer
	load       LoadFunc

	descriptor *Descriptor
	stats      Stats
}

// New creates a generator using the given translation table and name rules.
func New(translator *TypeTranslator, normalizer *Normalizer) *Generator {
	return &Generator{
		translator: translator,
		normalizer: normalizer,
		load:       doctree.LoadFile,
		descriptor: NewDescriptor(),
	}
}

// WithLoader replaces the document loader.
func (g *Generator) WithLoader(load LoadFunc) *Generator {
	g.load = load
	return g
}

// Descriptor returns the descriptor assembled so far.
func (g *Generator) Descriptor() *Descriptor {
	return g.descriptor
}

// Stats returns the counters of the run.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Run reads the index document of inputDir and every script binding document
// it references, in index order, and returns the assembled descriptor. Only a
// failure to load or read the index fails the run; a broken compound document
// is logged and skipped. Each call starts from an empty descriptor and zeroed
// stats.
func (g *Generator) Run(ctx context.Context, inputDir string) (*Descriptor, error) {
	g.descriptor = NewDescriptor()
	g.stats = Stats{}

	index, err := g.load(filepath.Join(inputDir, IndexFile))
	if err != nil {
		return nil, errors.Errorf("loading index: %w", err)
	}

	refs, err := g.ScanIndex(ctx, index)
	if err != nil {
		return nil, errors.Errorf("scanning index: %w", err)
	}

	for _, ref := range refs {
		g.processDocument(slogctx.With(ctx, "refid", ref.RefID), inputDir, ref)
	}

	return g.descriptor, nil
}

func (g *Generator) processDocument(ctx context.Context, inputDir string, ref CompoundRef) {
	g.stats.Documents++

	doc, err := g.load(filepath.Join(inputDir, ref.RefID+DocumentExt))
	if err != nil {
		g.stats.SkippedDocuments++
		slogctx.Error(ctx, "skipping script bind document", "scriptbind", ref.ShortName, "error", err)
		return
	}

	short, compound, err := g.ExtractCompound(ctx, doc)
	if err != nil {
		g.stats.SkippedDocuments++
		slogctx.Error(ctx, "skipping script bind document", "scriptbind", ref.ShortName, "error", err)
		return
	}
	if short != ref.ShortName {
		slogctx.Warn(ctx, "document names a different script bind than the index", "index", ref.ShortName, "document", short)
	}

	if err := g.descriptor.Merge(short, compound); err != nil {
		g.stats.SkippedDocuments++
		slogctx.Error(ctx, "skipping script bind document", "scriptbind", short, "error", err)
		return
	}

	slogctx.Debug(ctx, "extracted script bind", "scriptbind", short, "methods", compound.Methods.Len())
}
