package scene

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/errors"
	"github.com/scenestack/scenestack/pkg/geom"
)

// Document is an in-memory scene and the [Host] implementation used outside
// a DCC application. Objects and groups keep insertion order, and every
// lookup is explicit: nothing is created on access.
type Document struct {
	objects    map[string]*Object
	objOrder   []string
	groups     map[string]*Group
	groupOrder []string
	memberOf   map[string]string
	selection  []string
}

var _ Host = (*Document)(nil)

// NewDocument returns an empty scene document.
func NewDocument() *Document {
	return &Document{
		objects:  make(map[string]*Object),
		groups:   make(map[string]*Group),
		memberOf: make(map[string]string),
	}
}

// AddObject adds a new object with the given world-space box and a zero
// translation. The name must be a valid node name and must be unused.
func (d *Document) AddObject(name string, box geom.Box) error {
	if err := errors.NodeName(name); err != nil {
		return err
	}
	if d.nameTaken(name) {
		return errors.New(errors.ErrCodeInvalidName, "name %q already in use", name)
	}
	if !box.IsValid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid box for %q", name)
	}
	d.objects[name] = &Object{Name: name, Box: box}
	d.objOrder = append(d.objOrder, name)
	return nil
}

// Object returns a copy of the named object.
func (d *Document) Object(name string) (Object, error) {
	obj, ok := d.objects[name]
	if !ok {
		return Object{}, notFound(name)
	}
	return *obj, nil
}

// Objects returns copies of all objects in insertion order.
func (d *Document) Objects() []Object {
	out := make([]Object, 0, len(d.objOrder))
	for _, name := range d.objOrder {
		out = append(out, *d.objects[name])
	}
	return out
}

// GroupNamed returns a copy of the named group.
func (d *Document) GroupNamed(name string) (Group, error) {
	grp, ok := d.groups[name]
	if !ok {
		return Group{}, notFound(name)
	}
	out := *grp
	out.Members = append([]string(nil), grp.Members...)
	return out, nil
}

// Groups returns copies of all groups in insertion order.
func (d *Document) Groups() []Group {
	out := make([]Group, 0, len(d.groupOrder))
	for _, name := range d.groupOrder {
		grp := *d.groups[name]
		grp.Members = append([]string(nil), d.groups[name].Members...)
		out = append(out, grp)
	}
	return out
}

// GetBoundingBox returns the current box of an object, or the union of
// member boxes for a group.
func (d *Document) GetBoundingBox(id string) (geom.Box, error) {
	if obj, ok := d.objects[id]; ok {
		return obj.Box, nil
	}
	if grp, ok := d.groups[id]; ok {
		box := d.objects[grp.Members[0]].Box
		for _, member := range grp.Members[1:] {
			box = box.Union(d.objects[member].Box)
		}
		return box, nil
	}
	return geom.Box{}, notFound(id)
}

// TranslateRelative moves an object or group by delta. Group moves are
// applied to every member, so member translations stay world-accurate.
func (d *Document) TranslateRelative(id string, delta mgl64.Vec3) error {
	if obj, ok := d.objects[id]; ok {
		obj.Box = obj.Box.Translate(delta)
		obj.Translate = obj.Translate.Add(delta)
		return nil
	}
	if grp, ok := d.groups[id]; ok {
		for _, member := range grp.Members {
			obj := d.objects[member]
			obj.Box = obj.Box.Translate(delta)
			obj.Translate = obj.Translate.Add(delta)
		}
		grp.Translate = grp.Translate.Add(delta)
		return nil
	}
	return notFound(id)
}

// TranslateAbsolute moves an object or group so that its accumulated
// translation equals pos.
func (d *Document) TranslateAbsolute(id string, pos mgl64.Vec3) error {
	if obj, ok := d.objects[id]; ok {
		return d.TranslateRelative(id, pos.Sub(obj.Translate))
	}
	if grp, ok := d.groups[id]; ok {
		return d.TranslateRelative(id, pos.Sub(grp.Translate))
	}
	return notFound(id)
}

// Duplicate copies an object under newName, uniquified with a numeric
// suffix when taken, and returns the assigned name. The copy keeps the
// source box and translation and belongs to no group. Groups cannot be
// duplicated.
func (d *Document) Duplicate(id, newName string) (string, error) {
	obj, ok := d.objects[id]
	if !ok {
		if _, isGroup := d.groups[id]; isGroup {
			return "", errors.New(errors.ErrCodeUnsupported, "cannot duplicate group %q", id)
		}
		return "", notFound(id)
	}
	if err := errors.NodeName(newName); err != nil {
		return "", err
	}

	assigned := d.uniqueName(newName)
	d.objects[assigned] = &Object{Name: assigned, Box: obj.Box, Translate: obj.Translate}
	d.objOrder = append(d.objOrder, assigned)
	return assigned, nil
}

// Group collects objects into a new group and returns the assigned group
// name, uniquified like Duplicate. Members must be ungrouped objects;
// groups do not nest.
func (d *Document) Group(ids []string, name string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot group zero objects")
	}
	for _, id := range ids {
		if _, ok := d.objects[id]; !ok {
			if _, isGroup := d.groups[id]; isGroup {
				return "", errors.New(errors.ErrCodeInvalidInput, "cannot nest group %q", id)
			}
			return "", notFound(id)
		}
		if owner, grouped := d.memberOf[id]; grouped {
			return "", errors.New(errors.ErrCodeInvalidInput, "object %q already in group %q", id, owner)
		}
	}
	if err := errors.NodeName(name); err != nil {
		return "", err
	}

	assigned := d.uniqueName(name)
	grp := &Group{Name: assigned, Members: append([]string(nil), ids...)}
	d.groups[assigned] = grp
	d.groupOrder = append(d.groupOrder, assigned)
	for _, id := range ids {
		d.memberOf[id] = assigned
	}
	return assigned, nil
}

// Select replaces the current selection. Every id must resolve.
func (d *Document) Select(ids []string) error {
	for _, id := range ids {
		if !d.nameTaken(id) {
			return notFound(id)
		}
	}
	d.selection = append([]string(nil), ids...)
	return nil
}

// CurrentSelection returns the selected ids in selection order.
func (d *Document) CurrentSelection() []string {
	return append([]string(nil), d.selection...)
}

// Clone returns a deep copy of the document. Used for dry runs.
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, name := range d.objOrder {
		obj := *d.objects[name]
		out.objects[name] = &obj
		out.objOrder = append(out.objOrder, name)
	}
	for _, name := range d.groupOrder {
		grp := *d.groups[name]
		grp.Members = append([]string(nil), d.groups[name].Members...)
		out.groups[name] = &grp
		out.groupOrder = append(out.groupOrder, name)
	}
	for member, owner := range d.memberOf {
		out.memberOf[member] = owner
	}
	out.selection = append([]string(nil), d.selection...)
	return out
}

func (d *Document) nameTaken(name string) bool {
	if _, ok := d.objects[name]; ok {
		return true
	}
	_, ok := d.groups[name]
	return ok
}

// uniqueName returns want if free, otherwise the first free name formed by
// incrementing a numeric suffix, matching how DCC hosts resolve clashes.
func (d *Document) uniqueName(want string) string {
	if !d.nameTaken(want) {
		return want
	}
	stem := strings.TrimRightFunc(want, unicode.IsDigit)
	next := 1
	if digits := want[len(stem):]; digits != "" {
		if v, err := strconv.Atoi(digits); err == nil {
			next = v + 1
		}
	}
	for {
		candidate := fmt.Sprintf("%s%d", stem, next)
		if !d.nameTaken(candidate) {
			return candidate
		}
		next++
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeObjectNotFound, "object or group %q not found", id)
}
