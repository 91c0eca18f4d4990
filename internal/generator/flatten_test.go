package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

func parsePara(t *testing.T, xml string) doctree.Value {
	t.Helper()
	doc, err := doctree.ParseString(xml)
	require.NoError(t, err)
	para, ok := doctree.Lookup(doc, "briefdescription", "para")
	require.True(t, ok)
	return para
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "plain text",
			xml:  `<briefdescription><para>Checks whether a key is held down. </para></briefdescription>`,
			want: "Checks whether a key is held down.",
		},
		{
			name: "link between text runs",
			xml:  `<briefdescription><para>Layer name, see <ulink url="https://wiki.example.com/layers">the layer list</ulink> for valid names. </para></briefdescription>`,
			want: "Layer name, see https://wiki.example.com/layers for valid names.",
		},
		{
			name: "link at the end",
			xml:  `<briefdescription><para>Docs at <ulink url="https://example.com/a?b=1&amp;c=2">here</ulink></para></briefdescription>`,
			want: "Docs at https://example.com/a?b=1&c=2",
		},
		{
			name: "other inline markup keeps its text",
			xml:  `<briefdescription><para>Returns <computeroutput>nil</computeroutput> when <bold>no</bold> tile exists.</para></briefdescription>`,
			want: "Returns nil when no tile exists.",
		},
		{
			name: "leading whitespace is kept",
			xml:  "<briefdescription><para>  indented\t\n </para></briefdescription>",
			want: "  indented",
		},
		{
			name: "several paragraphs",
			xml:  `<briefdescription><para>First. </para><para> </para><para>Second. </para></briefdescription>`,
			want: "First.\n\nSecond.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(parsePara(t, tt.xml)))
		})
	}
}

func TestFlattenIdempotent(t *testing.T) {
	para := parsePara(t, `<briefdescription><para>See <ulink url="https://example.com">docs</ulink>.  </para></briefdescription>`)
	once := Flatten(para)
	assert.Equal(t, once, Flatten(doctree.Scalar(once)))
}

func TestFlattenMissing(t *testing.T) {
	assert.Equal(t, "", Flatten(nil))
	assert.Equal(t, "", Flatten(doctree.Scalar(" \n ")))
}
