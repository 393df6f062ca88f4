package integration

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/regexplainer/regexplain"
)

// Text rendering without options reproduces the fixture comment body.
func TestRenderTextMatchesFixtures(t *testing.T) {
	for _, c := range loadNarrative(t) {
		if len(c.Expected) == 0 {
			continue
		}
		exp := explainCase(t, c)
		var buf bytes.Buffer
		require.NoError(t, exp.RenderText(&buf, regexplain.RenderOptions{}))
		assert.Equal(t, strings.Join(c.Expected, "\n")+"\n", buf.String(), c.Name())
	}
}

func TestRenderMarkdownWithCaveats(t *testing.T) {
	exp, err := regexplain.ExplainLiteral(`/x(?<!u)@/g`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exp.RenderMarkdown(&buf, regexplain.RenderOptions{Caveats: true, Header: true}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "/x(?<!u)@/g (flags: global)", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "- `x` **NOT preceding**:", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "  - _lookbehind"), lines[3])
	assert.Equal(t, "  - `u`", lines[4])
	assert.Equal(t, "- `@`", lines[5])
}

type jsonNode struct {
	Kind       string      `json:"kind"`
	Label      string      `json:"label"`
	Quantifier string      `json:"quantifier"`
	Group      *struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
	} `json:"group"`
	Children []*jsonNode `json:"children"`
}

func TestExplanationJSONShape(t *testing.T) {
	exp, err := regexplain.ExplainLiteral(`/(?<y>\d{4})-(\d\d)?/gm`)
	require.NoError(t, err)
	data, err := exp.JSON()
	require.NoError(t, err)

	var doc struct {
		Pattern string    `json:"pattern"`
		Flags   string    `json:"flags"`
		IsValid bool      `json:"is_valid"`
		Tree    *jsonNode `json:"tree"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, `(?<y>\d{4})-(\d\d)?`, doc.Pattern)
	assert.Equal(t, "gm", doc.Flags)
	assert.True(t, doc.IsValid)
	require.NotNil(t, doc.Tree)
	assert.Equal(t, "root", doc.Tree.Kind)
	require.Len(t, doc.Tree.Children, 3)

	named := doc.Tree.Children[0]
	require.NotNil(t, named.Group)
	assert.Equal(t, 1, named.Group.Index)
	assert.Equal(t, "y", named.Group.Name)

	second := doc.Tree.Children[2]
	require.NotNil(t, second.Group)
	assert.Equal(t, 2, second.Group.Index)
	assert.Equal(t, "optional", second.Quantifier)
}

func TestExplanationYAMLInvalid(t *testing.T) {
	exp, err := regexplain.ExplainPattern(`(a`, 0)
	require.Error(t, err)
	data, yerr := exp.YAML()
	require.NoError(t, yerr)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, false, doc["is_valid"])
	assert.Equal(t, err.Error(), doc["error"])
	assert.NotContains(t, doc, "tree")
}
