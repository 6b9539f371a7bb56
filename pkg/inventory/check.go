package inventory

import (
	"errors"
	"fmt"
)

// Check verifies referential integrity of a whole document: parents and tags
// must exist, back-references must agree with parent ids, ids must be unique
// per kind and below their counter.
func (inv *Inventory) Check() error {
	var errs []error

	tags := make(map[uint32]struct{}, len(inv.Tags))
	for _, t := range inv.Tags {
		if _, dup := tags[t.ID]; dup {
			errs = append(errs, fmt.Errorf("tag %d: duplicate id", t.ID))
		}
		tags[t.ID] = struct{}{}
		if t.ID >= inv.NextTagID {
			errs = append(errs, fmt.Errorf("tag %d: id not below counter %d", t.ID, inv.NextTagID))
		}
	}

	comps := make(map[uint32]Compartment, len(inv.Compartments))
	for _, c := range inv.Compartments {
		if _, dup := comps[c.ID]; dup {
			errs = append(errs, fmt.Errorf("compartment %d: duplicate id", c.ID))
		}
		comps[c.ID] = c
		if c.ID >= inv.NextCompartmentID {
			errs = append(errs, fmt.Errorf("compartment %d: id not below counter %d", c.ID, inv.NextCompartmentID))
		}
	}

	conts := make(map[uint32]Container, len(inv.Containers))
	for _, c := range inv.Containers {
		if _, dup := conts[c.ID]; dup {
			errs = append(errs, fmt.Errorf("container %d: duplicate id", c.ID))
		}
		conts[c.ID] = c
		if c.ID >= inv.NextContainerID {
			errs = append(errs, fmt.Errorf("container %d: id not below counter %d", c.ID, inv.NextContainerID))
		}
		parent, ok := comps[c.CompartmentID]
		if !ok {
			errs = append(errs, fmt.Errorf("container %d: %w", c.ID, notFound(KindCompartment, c.CompartmentID)))
		} else if !contains(parent.ContainerIDs, c.ID) {
			errs = append(errs, fmt.Errorf("container %d: missing from compartment %d", c.ID, parent.ID))
		}
		for _, id := range c.TagIDs {
			if _, ok := tags[id]; !ok {
				errs = append(errs, fmt.Errorf("container %d: %w", c.ID, notFound(KindTag, id)))
			}
		}
	}

	items := make(map[uint32]Item, len(inv.Items))
	for _, it := range inv.Items {
		if _, dup := items[it.ID]; dup {
			errs = append(errs, fmt.Errorf("item %d: duplicate id", it.ID))
		}
		items[it.ID] = it
		if it.ID >= inv.NextItemID {
			errs = append(errs, fmt.Errorf("item %d: id not below counter %d", it.ID, inv.NextItemID))
		}
		parent, ok := conts[it.ContainerID]
		if !ok {
			errs = append(errs, fmt.Errorf("item %d: %w", it.ID, notFound(KindContainer, it.ContainerID)))
		} else if !contains(parent.ItemIDs, it.ID) {
			errs = append(errs, fmt.Errorf("item %d: missing from container %d", it.ID, parent.ID))
		}
		for _, id := range it.TagIDs {
			if _, ok := tags[id]; !ok {
				errs = append(errs, fmt.Errorf("item %d: %w", it.ID, notFound(KindTag, id)))
			}
		}
	}

	for _, c := range inv.Compartments {
		for _, id := range c.ContainerIDs {
			if child, ok := conts[id]; !ok || child.CompartmentID != c.ID {
				errs = append(errs, fmt.Errorf("compartment %d: stray container reference %d", c.ID, id))
			}
		}
	}
	for _, c := range inv.Containers {
		for _, id := range c.ItemIDs {
			if child, ok := items[id]; !ok || child.ContainerID != c.ID {
				errs = append(errs, fmt.Errorf("container %d: stray item reference %d", c.ID, id))
			}
		}
	}

	return errors.Join(errs...)
}

func contains(ids []uint32, id uint32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
