package inventory

import "math"

// AddTag allocates the next tag id and appends a new tag.
func (inv *Inventory) AddTag(name string) (Tag, error) {
	if err := checkNext(KindTag, inv.NextTagID); err != nil {
		return Tag{}, err
	}
	t := Tag{ID: inv.NextTagID, Name: name}
	inv.NextTagID++
	inv.Tags = append(inv.Tags, t)
	return t, nil
}

// AddCompartment allocates the next compartment id and appends a new
// compartment.
func (inv *Inventory) AddCompartment(name string) (Compartment, error) {
	if err := checkNext(KindCompartment, inv.NextCompartmentID); err != nil {
		return Compartment{}, err
	}
	c := Compartment{ID: inv.NextCompartmentID, Name: name, ContainerIDs: []uint32{}}
	inv.NextCompartmentID++
	inv.Compartments = append(inv.Compartments, c)
	return c, nil
}

// AddContainer creates a container under compartmentID with the given tags.
// Every reference is checked before anything is written, so a failed call
// leaves the inventory untouched.
func (inv *Inventory) AddContainer(name string, compartmentID uint32, tagIDs []uint32) (Container, error) {
	if err := checkNext(KindContainer, inv.NextContainerID); err != nil {
		return Container{}, err
	}
	ci := inv.compartmentIndex(compartmentID)
	if ci < 0 {
		return Container{}, notFound(KindCompartment, compartmentID)
	}
	tags, err := inv.resolveTags(tagIDs)
	if err != nil {
		return Container{}, err
	}

	c := Container{
		ID:            inv.NextContainerID,
		CompartmentID: compartmentID,
		Name:          name,
		ItemIDs:       []uint32{},
		TagIDs:        tags,
	}
	inv.NextContainerID++
	inv.Containers = append(inv.Containers, c)
	inv.Compartments[ci].ContainerIDs = append(inv.Compartments[ci].ContainerIDs, c.ID)
	return c, nil
}

// AddItem creates an item inside containerID. Tags are optional and follow
// the same all-or-nothing validation as AddContainer.
func (inv *Inventory) AddItem(name string, containerID uint32, tagIDs ...uint32) (Item, error) {
	if err := checkNext(KindItem, inv.NextItemID); err != nil {
		return Item{}, err
	}
	ci := inv.containerIndex(containerID)
	if ci < 0 {
		return Item{}, notFound(KindContainer, containerID)
	}
	var tags []uint32
	if len(tagIDs) > 0 {
		var err error
		if tags, err = inv.resolveTags(tagIDs); err != nil {
			return Item{}, err
		}
	}

	it := Item{
		ID:          inv.NextItemID,
		ContainerID: containerID,
		Name:        name,
		TagIDs:      tags,
	}
	inv.NextItemID++
	inv.Items = append(inv.Items, it)
	inv.Containers[ci].ItemIDs = append(inv.Containers[ci].ItemIDs, it.ID)
	return it, nil
}

// resolveTags checks every id and returns a de-duplicated copy in first-seen
// order. The first missing id is reported.
func (inv *Inventory) resolveTags(ids []uint32) ([]uint32, error) {
	out := make([]uint32, 0, len(ids))
	seen := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		if inv.tagIndex(id) < 0 {
			return nil, notFound(KindTag, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// checkNext refuses the last uint32: handing it out would wrap the counter
// back onto id 0.
func checkNext(kind Kind, next uint32) error {
	if next == math.MaxUint32 {
		return &ExhaustedError{Kind: kind}
	}
	return nil
}
