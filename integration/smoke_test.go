package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regexplainer/regexplain"
	"github.com/regexplainer/regexplain/internal/testutil"
)

// Smoke fixtures describe patterns in prose. Each must explain, produce
// a non-empty tree and pass the ECMAScript cross-check.
func TestSmokeCorpus(t *testing.T) {
	cases := testutil.LoadFixtures(t, "smoke")
	for _, c := range cases {
		t.Run(c.Name(), func(t *testing.T) {
			flags, err := c.ParseFlags()
			require.NoError(t, err)
			exp, err := regexplain.ExplainPattern(c.Pattern, flags,
				regexplain.WithECMAValidation(true),
				regexplain.WithDiagnosticConfig(regexplain.QuietConfig()))
			require.NoError(t, err)
			require.True(t, exp.IsValid)
			assert.NotEmpty(t, exp.Root.Children, "explanation has lines")
			for _, d := range exp.Diagnostics {
				assert.NotEqual(t, "ecma-rejected", d.Code, "%s: %s", c.Literal, d.Message)
			}
		})
	}
}

func TestSmokeSelected(t *testing.T) {
	tests := []struct {
		literal string
		want    []string
	}{
		{`/colou?r/`, []string{"`colo`", "`u` (_optional_)", "`r`"}},
		{`/cat|dog/`, []string{"Either `cat` or `dog`"}},
		{`/(a(b|c)d)/`, []string{
			"capture group 1:",
			"  `a`",
			"  capture group 2:",
			"    Either `b` or `c`",
			"  `d`",
		}},
		{`/\(\d{3}\)\s\d{3}-\d{4}/`, []string{
			"`(`",
			"**0-9** (_3x_)",
			"`)`",
			"**WS**",
			"**0-9** (_3x_)",
			"`-`",
			"**0-9** (_4x_)",
		}},
		{`/\d+(?=\s*dollars?)/`, []string{
			"**0-9** (_>= 1x_)",
			"**followed by**:",
			"  **WS** (_>= 0x_)",
			"  `dollar`",
			"  `s` (_optional_)",
		}},
		{`/(?<=\$)\d+(\.\d{2})?/`, []string{
			"**preceding**:",
			"  `$`",
			"**0-9** (_>= 1x_)",
			"capture group 1 (_optional_):",
			"  `.`",
			"  **0-9** (_2x_)",
		}},
		{`/^p[^p^a]*p/`, []string{
			"**START**",
			"`p`",
			"NOT one of `p`, `^`, or `a` (_>= 0x_)",
			"`p`",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			exp, err := regexplain.ExplainLiteral(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exp.Root.Lines())
		})
	}
}
