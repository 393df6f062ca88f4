// Package integration checks the explainer against the fixture corpus.
//
// Narrative fixtures under testdata/narrative/ pair every regex literal
// with a doc comment holding its expected explanation, one line per
// node with two spaces of indentation per level. Smoke fixtures under
// testdata/smoke/ carry descriptions instead; they only have to parse
// and explain without error.
//
// # Adding Test Cases
//
//  1. Add the literal to the matching testdata/narrative/*.js file
//  2. Write the expected explanation above it in a /** */ comment
//  3. For constructs explained on a best-effort basis, list the literal
//     as a line comment under a "// UNSUPPORTED" marker instead
//
// # File Organization
//
//   - corpus_test.go: shared loading and the golden narrative test
//   - unsupported_test.go: lookbehind limitations and caveats
//   - smoke_test.go: description-only fixtures
//   - render_test.go: rendered output of whole explanations
package integration

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexplainer/regexplain"
	"github.com/regexplainer/regexplain/internal/fixture"
	"github.com/regexplainer/regexplain/internal/testutil"
)

// narrativeCases holds the parsed narrative corpus. Loaded once via
// loadNarrative().
var (
	narrativeCases []fixture.Case
	narrativeOnce  sync.Once
	narrativeErr   error
)

// loadNarrative parses testdata/narrative once and caches the result.
func loadNarrative(t *testing.T) []fixture.Case {
	t.Helper()

	narrativeOnce.Do(func() {
		narrativeCases, narrativeErr = fixture.Glob(testutil.TestdataDir(t, "narrative"))
	})

	require.NoError(t, narrativeErr, "failed to load narrative fixtures")
	require.NotEmpty(t, narrativeCases, "narrative corpus is empty")
	return narrativeCases
}

// explainCase explains a fixture case and fails if it is malformed.
func explainCase(t *testing.T, c fixture.Case) *regexplain.Explanation {
	t.Helper()
	flags, err := c.ParseFlags()
	require.NoError(t, err, "flags of %s", c.Name())
	exp, err := regexplain.ExplainPattern(c.Pattern, flags)
	require.NoError(t, err, "explain %s", c.Name())
	return exp
}

func TestNarrativeCorpus(t *testing.T) {
	for _, c := range loadNarrative(t) {
		if c.Unsupported || len(c.Expected) == 0 {
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			exp := explainCase(t, c)
			got := exp.Root.Lines()
			if diff := testutil.DiffLines(c.Expected, got); diff != "" {
				t.Errorf("explanation of %s differs:\n%s", c.Literal, diff)
			}
		})
	}
}

func TestNarrativeCorpusCounts(t *testing.T) {
	var documented, unsupported int
	for _, c := range loadNarrative(t) {
		switch {
		case c.Unsupported:
			unsupported++
		case len(c.Expected) > 0:
			documented++
		}
	}
	assert.GreaterOrEqual(t, documented, 38, "documented cases")
	assert.Equal(t, 2, unsupported, "unsupported cases")
}

func TestNarrativeIndentation(t *testing.T) {
	// Every expected child line is indented exactly one level deeper
	// than some line above it.
	for _, c := range loadNarrative(t) {
		depth := 0
		for i, line := range c.Expected {
			indent := len(line) - len(strings.TrimLeft(line, " "))
			require.Zero(t, indent%2, "%s line %d: odd indentation", c.Name(), i)
			require.LessOrEqual(t, indent/2, depth, "%s line %d: skipped a level", c.Name(), i)
			depth = indent/2 + 1
		}
	}
}

func TestExplanationsAreDeterministic(t *testing.T) {
	cases := loadNarrative(t)
	inputs := make([]regexplain.Input, 0, len(cases))
	for _, c := range cases {
		flags, err := c.ParseFlags()
		require.NoError(t, err)
		inputs = append(inputs, regexplain.Input{Pattern: c.Pattern, Flags: flags})
	}

	results, err := regexplain.ExplainAll(t.Context(), inputs)
	require.NoError(t, err)
	for i, r := range results {
		require.NoError(t, r.Err, cases[i].Name())
		again := explainCase(t, cases[i])
		assert.Equal(t, again.Root.Lines(), r.Exp.Root.Lines(), cases[i].Name())
	}
}
