package expr

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formdialog/pkg/visibility"
)

func TestEvaluatorComparisons(t *testing.T) {
	t.Parallel()

	ctx := visibility.Context{
		Values: map[string]any{
			"Environment": "Production",
			"Port":        "22",
			"Verbose":     "true",
			"Log level":   "debug",
			"Token":       "",
		},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{`Environment == "Production"`, true},
		{`Environment != 'Production'`, false},
		{`Environment == Staging`, false},
		{`Port == 22`, true},
		{`Port != 23`, true},
		{`Verbose == true`, true},
		{"`Log level` == \"debug\"", true},
		{`Token`, false},
		{`!Token`, true},
		{`Token == null`, false},
		{`Missing == null`, true},
		{`Environment == "Production" && (Port == 80 || Verbose)`, true},
		{`!(Environment == "Production")`, false},
		{`   `, true},
	}

	eval := New()
	for _, tc := range cases {
		got, err := eval.Eval("Target", tc.rule, ctx)
		if err != nil {
			t.Fatalf("%s: Eval returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.rule, tc.want, got)
		}
	}
}

func TestEvaluatorListMembership(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{
		Values: map[string]any{
			"Regions": []string{"EU", "US"},
			"Empty":   []string{},
		},
	}

	ok, err := eval.Eval("Target", `Regions has "EU"`, ctx)
	if err != nil || !ok {
		t.Fatalf("expected EU membership, got %v (%v)", ok, err)
	}
	ok, err = eval.Eval("Target", `Regions has APAC`, ctx)
	if err != nil || ok {
		t.Fatalf("expected no APAC membership, got %v (%v)", ok, err)
	}
	ok, err = eval.Eval("Target", `Empty == null && !Empty`, ctx)
	if err != nil || !ok {
		t.Fatalf("expected empty list to be null and falsy, got %v (%v)", ok, err)
	}
}

func TestEvaluatorModesAndExtras(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{
		Modes:  map[string]bool{"locked": true},
		Extras: map[string]any{"beta": true},
	}

	for rule, want := range map[string]bool{
		"modes.locked":                  true,
		"modes.open":                    false,
		"extras.beta == true":           true,
		"modes.locked && !extras.alpha": true,
	} {
		got, err := eval.Eval("Target", rule, ctx)
		if err != nil {
			t.Fatalf("%s: Eval returned error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", rule, want, got)
		}
	}
}

func TestEvaluatorErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	for rule, want := range map[string]string{
		`a = 1`:   "use '=='",
		`a & b`:   "use '&&'",
		`a | b`:   "use '||'",
		`(a`:      "missing closing ')'",
		`a == "x`: "unterminated string literal",
		"`a == 1": "unterminated quoted identifier",
		`a ==`:    "missing literal",
		`== 1`:    "expected identifier",
		`a b`:     "unexpected token",
		`a == (`:  "expected literal",
	} {
		_, err := eval.Eval("Target", rule, visibility.Context{})
		if err == nil {
			t.Fatalf("%s: expected error", rule)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: expected %q in %q", rule, want, err.Error())
		}
	}
}
