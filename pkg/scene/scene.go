// Package scene defines the boundary to the hosting 3D application and an
// in-memory implementation of it.
//
// All geometry operations in this project talk to a [Host] rather than to a
// concrete application. The host owns object naming, bounding boxes, and
// transforms; callers identify everything by name and never cache boxes
// across mutations. [Document] implements Host for headless use and is the
// backing store for scene files.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenestack/scenestack/pkg/geom"
)

// Host is the command surface a scene application must provide.
//
// Implementations resolve ids to objects first, then to groups. Every method
// that takes an id fails with a NOT_FOUND_OBJECT error when the id resolves
// to nothing.
type Host interface {
	// GetBoundingBox returns the current world-space bounding box of the
	// object or group. Group boxes are the union of their member boxes.
	GetBoundingBox(id string) (geom.Box, error)

	// TranslateRelative moves the object or group by delta. Moving a group
	// moves every member.
	TranslateRelative(id string, delta mgl64.Vec3) error

	// TranslateAbsolute moves the object or group so that its transform
	// translation equals pos.
	TranslateAbsolute(id string, pos mgl64.Vec3) error

	// Duplicate copies the object under a new name. The host uniquifies the
	// requested name if it is already taken and returns the assigned name.
	Duplicate(id, newName string) (string, error)

	// Group collects the named objects into a new group and returns the
	// assigned group name.
	Group(ids []string, name string) (string, error)

	// Select replaces the current selection.
	Select(ids []string) error

	// CurrentSelection returns the selected ids in selection order.
	CurrentSelection() []string
}

// Object is a named scene object with its current world-space box and the
// accumulated translation of its transform.
type Object struct {
	Name      string     `json:"name"`
	Box       geom.Box   `json:"box"`
	Translate mgl64.Vec3 `json:"translate"`
}

// Group is a named, ordered collection of objects. Members are object names;
// groups do not nest. Translate is the accumulated translation applied to
// the group as a whole.
type Group struct {
	Name      string     `json:"name"`
	Members   []string   `json:"members"`
	Translate mgl64.Vec3 `json:"translate"`
}
