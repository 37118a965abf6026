package stackio

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/scene"
	"github.com/scenestack/scenestack/pkg/stack"
)

// File is a parsed placement file.
type File struct {
	XMLName xml.Name     `xml:"stacks"`
	Stacks  []StackEntry `xml:"stack"`
}

// StackEntry records the placements of one stack group.
type StackEntry struct {
	Name    string        `xml:"name,attr"`
	Objects []ObjectEntry `xml:"object"`
}

// ObjectEntry records the world translation of one object.
type ObjectEntry struct {
	Name string  `xml:"name,attr"`
	TX   float64 `xml:"tx,attr"`
	TY   float64 `xml:"ty,attr"`
	TZ   float64 `xml:"tz,attr"`
}

// Mapping returns the placements as nested maps: stack name to object name
// to translation. Later duplicates overwrite earlier entries.
func (f *File) Mapping() map[string]map[string]mgl64.Vec3 {
	out := make(map[string]map[string]mgl64.Vec3, len(f.Stacks))
	for _, st := range f.Stacks {
		objs, ok := out[st.Name]
		if !ok {
			objs = make(map[string]mgl64.Vec3, len(st.Objects))
			out[st.Name] = objs
		}
		for _, o := range st.Objects {
			objs[o.Name] = mgl64.Vec3{o.TX, o.TY, o.TZ}
		}
	}
	return out
}

// Write encodes placements as XML and writes them to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(f *File, w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write placements")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode placements")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write placements")
	}
	return nil
}

// WriteFile writes placements to an XML file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(f *File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer out.Close()
	return Write(f, out)
}

// FromScene captures the current placements of the given stacks from doc.
// Each member contributes its world translation, so writing the result and
// replaying it against an untouched copy of the same scene reproduces the
// build exactly.
func FromScene(doc *scene.Document, stacks []stack.Stack) (*File, error) {
	f := &File{}
	for _, st := range stacks {
		entry := StackEntry{Name: st.Group, Objects: make([]ObjectEntry, 0, len(st.Members))}
		for _, m := range st.Members {
			obj, err := doc.Object(m)
			if err != nil {
				return nil, err
			}
			entry.Objects = append(entry.Objects, ObjectEntry{
				Name: m,
				TX:   obj.Translate.X(),
				TY:   obj.Translate.Y(),
				TZ:   obj.Translate.Z(),
			})
		}
		f.Stacks = append(f.Stacks, entry)
	}
	return f, nil
}
