// Package inventory holds the shelf data model: tags, compartments,
// containers and items, owned by a single Inventory aggregate.
package inventory

// Tag is a named label that can be attached to containers and items.
type Tag struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// Compartment is a top level storage grouping. It refers to its containers
// by id.
type Compartment struct {
	ID           uint32   `json:"id"`
	Name         string   `json:"name"`
	ContainerIDs []uint32 `json:"container_ids"`
}

// Container lives inside exactly one compartment and holds items.
type Container struct {
	ID            uint32   `json:"id"`
	CompartmentID uint32   `json:"compartment_id"`
	Name          string   `json:"name"`
	ItemIDs       []uint32 `json:"item_ids"`
	TagIDs        []uint32 `json:"tag_ids"`
}

// Item is a tracked object inside exactly one container.
type Item struct {
	ID          uint32   `json:"id"`
	ContainerID uint32   `json:"container_id"`
	Name        string   `json:"name"`
	TagIDs      []uint32 `json:"tag_ids,omitempty"`
}

// Inventory is the aggregate root. It exclusively owns every entity sequence
// and the per-kind id counters. Counters hold the next id to hand out.
type Inventory struct {
	Tags         []Tag         `json:"tags"`
	Compartments []Compartment `json:"compartments"`
	Containers   []Container   `json:"containers"`
	Items        []Item        `json:"items"`

	NextTagID         uint32 `json:"next_tag_id"`
	NextCompartmentID uint32 `json:"next_compartment_id"`
	NextContainerID   uint32 `json:"next_container_id"`
	NextItemID        uint32 `json:"next_item_id"`
}

// New returns an empty inventory with all counters at zero.
func New() *Inventory {
	return &Inventory{
		Tags:         []Tag{},
		Compartments: []Compartment{},
		Containers:   []Container{},
		Items:        []Item{},
	}
}

// Normalize replaces nil sequences with empty ones so a freshly decoded
// document encodes the same way as one built with New.
func (inv *Inventory) Normalize() {
	if inv.Tags == nil {
		inv.Tags = []Tag{}
	}
	if inv.Compartments == nil {
		inv.Compartments = []Compartment{}
	}
	if inv.Containers == nil {
		inv.Containers = []Container{}
	}
	if inv.Items == nil {
		inv.Items = []Item{}
	}
	for i := range inv.Compartments {
		if inv.Compartments[i].ContainerIDs == nil {
			inv.Compartments[i].ContainerIDs = []uint32{}
		}
	}
	for i := range inv.Containers {
		if inv.Containers[i].ItemIDs == nil {
			inv.Containers[i].ItemIDs = []uint32{}
		}
		if inv.Containers[i].TagIDs == nil {
			inv.Containers[i].TagIDs = []uint32{}
		}
	}
}

// Clone returns a deep copy of the inventory.
func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{
		Tags:              append([]Tag{}, inv.Tags...),
		Compartments:      make([]Compartment, len(inv.Compartments)),
		Containers:        make([]Container, len(inv.Containers)),
		Items:             make([]Item, len(inv.Items)),
		NextTagID:         inv.NextTagID,
		NextCompartmentID: inv.NextCompartmentID,
		NextContainerID:   inv.NextContainerID,
		NextItemID:        inv.NextItemID,
	}
	for i, c := range inv.Compartments {
		c.ContainerIDs = append([]uint32{}, c.ContainerIDs...)
		out.Compartments[i] = c
	}
	for i, c := range inv.Containers {
		c.ItemIDs = append([]uint32{}, c.ItemIDs...)
		c.TagIDs = append([]uint32{}, c.TagIDs...)
		out.Containers[i] = c
	}
	for i, it := range inv.Items {
		if it.TagIDs != nil {
			it.TagIDs = append([]uint32{}, it.TagIDs...)
		}
		out.Items[i] = it
	}
	return out
}

// Tag looks up a tag by id.
func (inv *Inventory) Tag(id uint32) (Tag, bool) {
	if i := inv.tagIndex(id); i >= 0 {
		return inv.Tags[i], true
	}
	return Tag{}, false
}

// Compartment looks up a compartment by id.
func (inv *Inventory) Compartment(id uint32) (Compartment, bool) {
	if i := inv.compartmentIndex(id); i >= 0 {
		return inv.Compartments[i], true
	}
	return Compartment{}, false
}

// Container looks up a container by id.
func (inv *Inventory) Container(id uint32) (Container, bool) {
	if i := inv.containerIndex(id); i >= 0 {
		return inv.Containers[i], true
	}
	return Container{}, false
}

// Item looks up an item by id.
func (inv *Inventory) Item(id uint32) (Item, bool) {
	for _, it := range inv.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ContainersIn returns the containers of a compartment in insertion order.
func (inv *Inventory) ContainersIn(compartmentID uint32) []Container {
	comp, ok := inv.Compartment(compartmentID)
	if !ok {
		return nil
	}
	out := make([]Container, 0, len(comp.ContainerIDs))
	for _, id := range comp.ContainerIDs {
		if c, ok := inv.Container(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// ItemsIn returns the items of a container in insertion order.
func (inv *Inventory) ItemsIn(containerID uint32) []Item {
	cont, ok := inv.Container(containerID)
	if !ok {
		return nil
	}
	out := make([]Item, 0, len(cont.ItemIDs))
	for _, id := range cont.ItemIDs {
		if it, ok := inv.Item(id); ok {
			out = append(out, it)
		}
	}
	return out
}

// TagNames resolves tag ids to names, skipping unknown ids.
func (inv *Inventory) TagNames(ids []uint32) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := inv.Tag(id); ok {
			names = append(names, t.Name)
		}
	}
	return names
}

func (inv *Inventory) tagIndex(id uint32) int {
	for i := range inv.Tags {
		if inv.Tags[i].ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) compartmentIndex(id uint32) int {
	for i := range inv.Compartments {
		if inv.Compartments[i].ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) containerIndex(id uint32) int {
	for i := range inv.Containers {
		if inv.Containers[i].ID == id {
			return i
		}
	}
	return -1
}
