package generator

import (
	"context"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

// ScanIndex walks the compounds listed in a loaded index document and returns
// the script bindings among them in index order. Every match is registered in
// the descriptor right away so a binding without extractable methods, or
// without a document to extract them from, still shows up in the output.
func (g *Generator) ScanIndex(ctx context.Context, index *doctree.Node) ([]CompoundRef, error) {
	root, ok := doctree.Lookup(index, "doxygenindex")
	if !ok {
		return nil, errors.Errorf("%w: index has no doxygenindex element", ErrShape)
	}

	compounds, _ := doctree.Lookup(root, "compound")

	var refs []CompoundRef
	for _, entry := range doctree.Items(compounds) {
		node, ok := entry.(*doctree.Node)
		if !ok {
			slogctx.Warn(ctx, "ignoring index entry without attributes")
			continue
		}

		nameValue, _ := node.Get("name")
		qualified := strings.TrimSpace(doctree.Text(nameValue))
		short, ok := g.normalizer.Normalize(qualified)
		if !ok {
			continue
		}

		if !g.descriptor.Register(short) {
			slogctx.Warn(ctx, "script bind short name seen twice, merging", "scriptbind", short, "compound", qualified)
		}

		refID, ok := node.Attr("refid")
		if !ok || refID == "" {
			slogctx.Warn(ctx, "script bind has no refid, leaving it empty", "compound", qualified)
			continue
		}
		refs = append(refs, CompoundRef{ShortName: short, RefID: refID})
	}

	slogctx.Debug(ctx, "scanned index", "scriptbinds", len(refs))
	return refs, nil
}
