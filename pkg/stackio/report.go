package stackio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/stack"
)

type report struct {
	RunID      string        `json:"run_id"`
	Seed       uint64        `json:"seed"`
	Stacks     []reportStack `json:"stacks"`
	Objects    int           `json:"objects"`
	DurationMS int64         `json:"duration_ms"`
}

type reportStack struct {
	Group   string   `json:"group"`
	Members []string `json:"members"`
}

// WriteReport encodes a build result as JSON and writes it to w. The report
// carries the run id, the seed, and the member list of every stack, so
// external tools can consume a build without parsing the scene.
func WriteReport(res *stack.Result, w io.Writer) error {
	out := report{
		RunID:      res.RunID,
		Seed:       res.Seed,
		Stacks:     make([]reportStack, len(res.Stacks)),
		Objects:    res.Stats.Objects,
		DurationMS: res.Stats.Duration.Milliseconds(),
	}
	for i, st := range res.Stacks {
		out.Stacks[i] = reportStack{Group: st.Group, Members: st.Members}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// SaveReport writes a build report to a JSON file at path.
func SaveReport(res *stack.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteReport(res, f)
}
