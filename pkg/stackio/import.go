package stackio

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/scenestack/scenestack/pkg/errors"
)

// Read decodes an XML placement file from r.
//
// The input must have a <stacks> root with one <stack> element per group and
// one <object> element per placed object:
//
//	<stacks>
//	  <stack name="stack001">
//	    <object name="stack001_base" tx="0" ty="0" tz="0"/>
//	  </stack>
//	</stacks>
//
// Every stack and object must carry a valid node name, and tx, ty, and tz
// must parse as numbers. Violations are INVALID_FORMAT errors naming the
// offending element. Read does not close r.
func Read(r io.Reader) (*File, error) {
	var f File
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode placements")
	}
	for _, st := range f.Stacks {
		if err := errors.NodeName(st.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "stack name")
		}
		for _, o := range st.Objects {
			if err := errors.NodeName(o.Name); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "object in stack %q", st.Name)
			}
		}
	}
	return &f, nil
}

// ReadFile reads an XML placement file at path.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "placement file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}
