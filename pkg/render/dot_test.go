package render

import (
	"strings"
	"testing"

	"github.com/scenestack/scenestack/pkg/stack"
)

func TestToDOT(t *testing.T) {
	stacks := []stack.Stack{
		{Group: "stack001", Members: []string{"stack001_base", "stack001_mid1", "stack001_top"}},
		{Group: "stack002", Members: []string{"stack002_base", "stack002_top"}},
	}

	dot := ToDOT(stacks)

	if !strings.HasPrefix(dot, "digraph stacks {") {
		t.Errorf("ToDOT() does not open a digraph:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() does not close the digraph:\n%s", dot)
	}
	for _, want := range []string{
		`subgraph cluster_0`,
		`label="stack001";`,
		`subgraph cluster_1`,
		`label="stack002";`,
		`"stack001_top" -> "stack001_mid1";`,
		`"stack001_mid1" -> "stack001_base";`,
		`"stack002_top" -> "stack002_base";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"stack001_base" ->`) {
		t.Errorf("ToDOT() has an edge out of the base:\n%s", dot)
	}
}

func TestToDOTSingleMember(t *testing.T) {
	dot := ToDOT([]stack.Stack{{Group: "stack001", Members: []string{"stack001_base"}}})

	if !strings.Contains(dot, `"stack001_base";`) {
		t.Errorf("ToDOT() missing node:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT() has edges for a single member:\n%s", dot)
	}
}
