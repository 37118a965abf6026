package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/stack"
)

// ToDOT converts stacks to Graphviz DOT format. Each stack becomes a cluster
// and each member an edge to the member it rests on, upper to lower. The
// resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(stacks []stack.Stack) string {
	var buf bytes.Buffer
	buf.WriteString("digraph stacks {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i, st := range stacks {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", st.Group)
		for _, m := range st.Members {
			fmt.Fprintf(&buf, "    %q;\n", m)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, st := range stacks {
		for j := len(st.Members) - 1; j > 0; j-- {
			fmt.Fprintf(&buf, "  %q -> %q;\n", st.Members[j], st.Members[j-1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}
