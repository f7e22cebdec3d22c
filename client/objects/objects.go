package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Lifecycle is shared by scenes and board objects. Update and Draw run on the ebiten goroutine.
type Lifecycle interface {
	Init() error
	Destroy() error
	Update() error
	Draw(screen *ebiten.Image)
}

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetZIndex() int
	GetParent() GameObject
	SetParent(parent GameObject)
	GetChildren() []GameObject
	AddChild(child GameObject) error
	RemoveChild(id string) error
}

// BaseObject implements the tree part of GameObject. Children are kept sorted by z-index.
type BaseObject struct {
	id       string
	zIndex   int
	parent   GameObject
	children []GameObject
}

type NewBaseObjectOpts struct {
	ZIndex int
}

var _ GameObject = &BaseObject{}

func NewBaseObject(id string, opts *NewBaseObjectOpts) *BaseObject {
	o := &BaseObject{
		id: id,
	}
	if opts != nil {
		o.zIndex = opts.ZIndex
	}
	return o
}

func (o *BaseObject) Init() error               { return nil }
func (o *BaseObject) Destroy() error            { return nil }
func (o *BaseObject) Update() error             { return nil }
func (o *BaseObject) Draw(screen *ebiten.Image) {}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetZIndex() int {
	return o.zIndex
}

func (o *BaseObject) GetParent() GameObject {
	return o.parent
}

func (o *BaseObject) SetParent(parent GameObject) {
	o.parent = parent
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children
}

// AddChild initializes child and inserts it after every child with a lower or equal z-index.
func (o *BaseObject) AddChild(child GameObject) error {
	for _, c := range o.children {
		if c.GetID() == child.GetID() {
			return fmt.Errorf("child object with id %s already exists", child.GetID())
		}
	}
	if err := InitTree(child); err != nil {
		return fmt.Errorf("failed to initialize child object tree: %v", err)
	}
	child.SetParent(o)
	for i, c := range o.children {
		if c.GetZIndex() > child.GetZIndex() {
			o.children = append(o.children[:i], append([]GameObject{child}, o.children[i:]...)...)
			return nil
		}
	}
	o.children = append(o.children, child)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	for i, c := range o.children {
		if c.GetID() != id {
			continue
		}
		if err := DestroyTree(c); err != nil {
			return fmt.Errorf("failed to destroy child object tree: %v", err)
		}
		c.SetParent(nil)
		o.children = append(o.children[:i], o.children[i+1:]...)
		return nil
	}
	return fmt.Errorf("child object with id %s does not exist", id)
}

// RemoveFromParent detaches the object from its parent, if any.
func (o *BaseObject) RemoveFromParent() error {
	if o.parent == nil {
		return nil
	}
	return o.parent.RemoveChild(o.id)
}

// InitTree initializes an object and then its children.
func InitTree(o GameObject) error {
	if err := o.Init(); err != nil {
		return fmt.Errorf("failed to initialize object %s: %v", o.GetID(), err)
	}
	for _, c := range o.GetChildren() {
		if err := InitTree(c); err != nil {
			return err
		}
	}
	return nil
}

// DestroyTree destroys the children of an object and then the object.
func DestroyTree(o GameObject) error {
	for _, c := range o.GetChildren() {
		if err := DestroyTree(c); err != nil {
			return err
		}
	}
	if err := o.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy object %s: %v", o.GetID(), err)
	}
	return nil
}

// UpdateTree updates an object and then its children. Children may remove themselves.
func UpdateTree(o GameObject) error {
	if err := o.Update(); err != nil {
		return fmt.Errorf("failed to update object %s: %v", o.GetID(), err)
	}
	children := append([]GameObject(nil), o.GetChildren()...)
	for _, c := range children {
		if err := UpdateTree(c); err != nil {
			return err
		}
	}
	return nil
}

// DrawTree draws an object and then its children in z-index order.
func DrawTree(o GameObject, screen *ebiten.Image) {
	o.Draw(screen)
	for _, c := range o.GetChildren() {
		DrawTree(c, screen)
	}
}
