package generator

import (
	"context"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

const (
	kindParam  = "param"
	kindRetval = "retval"
)

// ExtractCompound builds the compound described by one per-compound document
// and returns it with its short name. Members that cannot be extracted are
// logged and left out; only a document that is not a script binding at all
// fails the call.
func (g *Generator) ExtractCompound(ctx context.Context, doc *doctree.Node) (string, *Compound, error) {
	defValue, _ := doctree.Lookup(doc, "doxygen", "compounddef")
	def, ok := defValue.(*doctree.Node)
	if !ok {
		return "", nil, errors.Errorf("%w: document has no compounddef", ErrShape)
	}

	nameValue, _ := def.Get("compoundname")
	qualified := strings.TrimSpace(doctree.Text(nameValue))
	short, ok := g.normalizer.Normalize(qualified)
	if !ok {
		return "", nil, errors.Errorf("%w: %q", ErrNotScriptBind, qualified)
	}

	ctx = slogctx.With(ctx, "scriptbind", short)

	compound := NewCompound()
	compound.Description = briefDescription(def)
	if compound.Description == "" {
		slogctx.Info(ctx, "no description on script bind")
	}

	members := functionMembers(def)
	// members[0] is never exported to scripts
	for i := 1; i < len(members); i++ {
		name, method, err := g.extractMember(ctx, short, members[i])
		if err != nil {
			g.stats.SkippedMembers++
			slogctx.Error(ctx, "skipping member", "error", err)
			continue
		}
		if compound.Methods.Set(name, method) {
			slogctx.Warn(ctx, "method documented twice, keeping the last one", "method", name)
		}
	}

	return short, compound, nil
}

// functionMembers returns the memberdef values of the section holding the
// script functions: the second section when there are several, the only one
// otherwise.
func functionMembers(def *doctree.Node) []doctree.Value {
	var section doctree.Value
	sections, _ := def.Get("sectiondef")
	switch s := sections.(type) {
	case doctree.List:
		switch {
		case len(s) > 1:
			section = s[1]
		case len(s) == 1:
			section = s[0]
		}
	case *doctree.Node:
		section = s
	default:
		return nil
	}

	members, _ := doctree.Lookup(section, "memberdef")
	return doctree.Items(members)
}

func (g *Generator) extractMember(ctx context.Context, compound string, v doctree.Value) (string, *Method, error) {
	member, ok := v.(*doctree.Node)
	if !ok {
		return "", nil, &MemberError{Compound: compound, Method: "?", Err: errors.Errorf("%w: memberdef has no elements", ErrShape)}
	}

	nameValue, _ := member.Get("name")
	name := strings.TrimSpace(doctree.Text(nameValue))
	if name == "" {
		id, _ := member.Attr("id")
		return "", nil, &MemberError{Compound: compound, Method: id, Err: errors.Errorf("%w: memberdef has no name", ErrShape)}
	}

	ctx = slogctx.With(ctx, "method", name)

	method := NewMethod()
	method.Description = briefDescription(member)
	if method.Description == "" {
		slogctx.Info(ctx, "no description on function")
	}

	declared := doctree.Items(field(member, "param"))
	if len(declared) > 0 {
		// the script engine handle
		declared = declared[1:]
	}

	var documented []doctree.Value
	for _, list := range parameterLists(member) {
		kind, _ := list.Attr("kind")
		items := doctree.Items(field(list, "parameteritem"))
		switch kind {
		case kindParam:
			documented = append(documented, items...)
		case kindRetval:
			for _, item := range items {
				g.applyRetval(ctx, compound, name, method, item)
			}
		default:
			slogctx.Debug(ctx, "ignoring parameter list", "kind", kind)
		}
	}

	pairs, err := pairParams(declared, documented)
	if err != nil {
		return "", nil, &MemberError{Compound: compound, Method: name, Err: err}
	}
	if len(documented) == 0 && len(declared) > 0 {
		slogctx.Info(ctx, "parameters are not documented")
	}

	for _, pair := range pairs {
		param, err := g.buildParam(pair)
		if err != nil {
			g.stats.SkippedParams++
			slogctx.Error(ctx, "skipping parameter", "error", &MemberError{Compound: compound, Method: name, Err: err})
			continue
		}
		method.Params = append(method.Params, param)
	}

	return name, method, nil
}

// briefDescription flattens the brief description of n. A missing paragraph
// and one holding only whitespace both give "".
func briefDescription(n *doctree.Node) string {
	para, ok := doctree.Lookup(n, "briefdescription", "para")
	if !ok {
		return ""
	}
	return Flatten(para)
}

// parameterLists collects the parameterlist nodes of every paragraph of the
// member's detailed description.
func parameterLists(member *doctree.Node) []*doctree.Node {
	paras, _ := doctree.Lookup(member, "detaileddescription", "para")

	var lists []*doctree.Node
	for _, para := range doctree.Items(paras) {
		found, _ := doctree.Lookup(para, "parameterlist")
		for _, item := range doctree.Items(found) {
			if list, ok := item.(*doctree.Node); ok {
				lists = append(lists, list)
			}
		}
	}
	return lists
}

func (g *Generator) buildParam(pair paramPair) (Param, error) {
	declared, ok := pair.Declared.(*doctree.Node)
	if !ok {
		return Param{}, errors.Errorf("%w: parameter %d has no declaration", ErrShape, pair.Index+1)
	}

	nameValue, _ := declared.Get("declname")
	name := strings.TrimSpace(doctree.Text(nameValue))
	if name == "" {
		documentedName, _ := doctree.Lookup(pair.Annotation, "parameternamelist", "parametername")
		name = strings.TrimSpace(doctree.Text(documentedName))
	}
	if name == "" {
		return Param{}, errors.Errorf("%w: parameter %d has no name", ErrShape, pair.Index+1)
	}

	typeValue, _ := declared.Get("type")
	typ, err := g.translator.Translate(doctree.Text(typeValue))
	if err != nil {
		return Param{}, errors.Errorf("parameter %q: %w", name, err)
	}

	param := Param{Name: name, Type: typ}
	if para, ok := doctree.Lookup(pair.Annotation, "parameterdescription", "para"); ok {
		param.Description = Flatten(para)
	}
	return param, nil
}

// applyRetval overwrites the method's default return with a retval
// annotation. An unknown type leaves the default in place.
func (g *Generator) applyRetval(ctx context.Context, compound, name string, method *Method, item doctree.Value) {
	typeName, _ := doctree.Lookup(item, "parameternamelist", "parametername")
	typ, err := g.translator.Translate(doctree.Text(typeName))
	if err != nil {
		g.stats.SkippedReturns++
		slogctx.Error(ctx, "ignoring return annotation", "error", &MemberError{Compound: compound, Method: name, Err: err})
		return
	}

	method.Ret = Return{Type: typ}
	if para, ok := doctree.Lookup(item, "parameterdescription", "para"); ok {
		method.Ret.Description = Flatten(para)
	}
}

func field(n *doctree.Node, key string) doctree.Value {
	v, _ := n.Get(key)
	return v
}
