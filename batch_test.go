package regexplain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/regexplainer/regexplain/internal/testutil"
)

func TestExplainAll(t *testing.T) {
	inputs := []Input{
		{Pattern: `a+`},
		{Pattern: `(b`},
		{Pattern: `c|d`, Flags: FlagGlobal},
	}
	results, err := ExplainAll(context.Background(), inputs, WithWorkers(2))
	testutil.NoError(t, err, "batch")
	testutil.Len(t, results, 3, "one result per input")

	testutil.NoError(t, results[0].Err, "first")
	testutil.SliceEqual(t, []string{"`a` (_>= 1x_)"}, results[0].Exp.Root.Lines(), "first lines")

	testutil.True(t, errors.Is(results[1].Err, ErrMalformedPattern), "second is malformed")
	testutil.False(t, results[1].Exp.IsValid, "second invalid")

	testutil.NoError(t, results[2].Err, "third")
	testutil.Equal(t, FlagGlobal, results[2].Exp.Flags, "flags kept")
}

func TestExplainAllMatchesSequential(t *testing.T) {
	var inputs []Input
	for i := range 50 {
		inputs = append(inputs, Input{Pattern: fmt.Sprintf(`(x{%d})(?<n%d>y)\%d`, i, i, i%3+1)})
	}
	results, err := ExplainAll(context.Background(), inputs)
	testutil.NoError(t, err, "batch")
	for i, in := range inputs {
		want, werr := ExplainPattern(in.Pattern, in.Flags)
		testutil.NoError(t, werr, "sequential %d", i)
		testutil.NoError(t, results[i].Err, "parallel %d", i)
		testutil.SliceEqual(t, want.Root.Lines(), results[i].Exp.Root.Lines(), "input %d", i)
	}
}

func TestExplainAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExplainAll(ctx, []Input{{Pattern: `a`}})
	testutil.True(t, errors.Is(err, context.Canceled), "cancelled: %v", err)
}

func TestExplainAllEmpty(t *testing.T) {
	results, err := ExplainAll(context.Background(), nil)
	testutil.NoError(t, err, "empty")
	testutil.Len(t, results, 0, "no results")
}
