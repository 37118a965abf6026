package scene

import (
	"encoding/json"
	"io"
	"os"

	"github.com/scenestack/scenestack/pkg/errors"
)

// sceneFile is the on-disk JSON layout.
type sceneFile struct {
	Objects   []Object `json:"objects"`
	Groups    []Group  `json:"groups,omitempty"`
	Selection []string `json:"selection,omitempty"`
}

// Read decodes a JSON scene from r into a new Document.
//
// The input must be a JSON object with an "objects" array and optional
// "groups" and "selection" arrays:
//
//	{
//	  "objects": [
//	    {"name": "crate_a", "box": {"min": [0,0,0], "max": [2,2,2]}, "translate": [0,0,0]}
//	  ],
//	  "groups": [{"name": "stack001", "members": ["crate_a"], "translate": [0,0,0]}],
//	  "selection": ["crate_a"]
//	}
//
// Every entry passes the same validation as building the document through
// its methods: names must be valid and unique, boxes must be valid, group
// members must name ungrouped objects, and the selection must resolve.
// Violations are reported as INVALID_FORMAT errors identifying the entry.
//
// The returned Document is independent of r. Read does not close r.
func Read(r io.Reader) (*Document, error) {
	var data sceneFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}

	d := NewDocument()
	for _, obj := range data.Objects {
		if err := d.AddObject(obj.Name, obj.Box); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "object %q", obj.Name)
		}
		d.objects[obj.Name].Translate = obj.Translate
	}
	for _, grp := range data.Groups {
		assigned, err := d.Group(grp.Members, grp.Name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "group %q", grp.Name)
		}
		if assigned != grp.Name {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate name %q", grp.Name)
		}
		d.groups[assigned].Translate = grp.Translate
	}
	if len(data.Selection) > 0 {
		if err := d.Select(data.Selection); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "selection")
		}
	}
	return d, nil
}

// Write encodes the document as indented JSON and writes it to w.
// The output can be re-read with [Read] for round-trip processing.
func Write(d *Document, w io.Writer) error {
	out := sceneFile{
		Objects:   d.Objects(),
		Groups:    d.Groups(),
		Selection: d.CurrentSelection(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return nil
}

// Load reads a JSON scene file at path and returns the decoded Document.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "scene file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Save writes the document to a JSON file at path.
func Save(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(d, f)
}
