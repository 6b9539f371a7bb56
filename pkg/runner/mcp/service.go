// Package mcp provides the Model Context Protocol server integration for shelf.
package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/store"
)

// Service coordinates persistence-backed operations that are shared by the MCP server.
// Every mutation is a full load, change and save of the document.
type Service struct {
	Persistence store.Persistence

	mu sync.Mutex
}

// AddContainerOptions captures the parameters used to create a container.
type AddContainerOptions struct {
	Name        string
	Compartment uint32
	Tags        []uint32
}

// AddItemOptions captures the parameters used to create an item.
type AddItemOptions struct {
	Name      string
	Container uint32
	Tags      []uint32
}

// TagDTO is a transport-friendly projection of a tag.
type TagDTO struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// ItemDTO is a transport-friendly projection of an item.
type ItemDTO struct {
	ID   uint32   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

// ContainerDTO is a container with its items resolved.
type ContainerDTO struct {
	ID          uint32    `json:"id"`
	Compartment uint32    `json:"compartment"`
	Name        string    `json:"name"`
	Tags        []string  `json:"tags,omitempty"`
	Items       []ItemDTO `json:"items"`
}

// CompartmentDTO is a compartment with its containers resolved.
type CompartmentDTO struct {
	ID         uint32         `json:"id"`
	Name       string         `json:"name"`
	Containers []ContainerDTO `json:"containers"`
}

// Overview is the whole inventory as a tree.
type Overview struct {
	Compartments []CompartmentDTO `json:"compartments"`
	Tags         []TagDTO         `json:"tags"`
	ItemCount    int              `json:"itemCount"`
}

// Created reports the id handed out to a new entity.
type Created struct {
	Kind inventory.Kind `json:"kind"`
	ID   uint32         `json:"id"`
	Name string         `json:"name"`
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{Persistence: p}
}

// Overview returns the full compartment tree and the tag list.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	inv, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := &Overview{
		Compartments: make([]CompartmentDTO, 0, len(inv.Compartments)),
		Tags:         toTagDTOs(inv.Tags),
		ItemCount:    len(inv.Items),
	}
	for _, c := range inv.Compartments {
		out.Compartments = append(out.Compartments, toCompartmentDTO(inv, c))
	}
	return out, nil
}

// ListTags returns every tag in creation order.
func (s *Service) ListTags(ctx context.Context) ([]TagDTO, error) {
	inv, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toTagDTOs(inv.Tags), nil
}

// Compartment returns one compartment with its containers and items.
func (s *Service) Compartment(ctx context.Context, id uint32) (*CompartmentDTO, error) {
	inv, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := inv.Compartment(id)
	if !ok {
		return nil, &inventory.NotFoundError{Kind: inventory.KindCompartment, ID: id}
	}
	dto := toCompartmentDTO(inv, c)
	return &dto, nil
}

// AddTag persists a new tag.
func (s *Service) AddTag(ctx context.Context, name string) (*Created, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	var id uint32
	err := s.mutate(ctx, func(inv *inventory.Inventory) error {
		t, err := inv.AddTag(name)
		id = t.ID
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Created{Kind: inventory.KindTag, ID: id, Name: name}, nil
}

// AddCompartment persists a new compartment.
func (s *Service) AddCompartment(ctx context.Context, name string) (*Created, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	var id uint32
	err := s.mutate(ctx, func(inv *inventory.Inventory) error {
		c, err := inv.AddCompartment(name)
		id = c.ID
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Created{Kind: inventory.KindCompartment, ID: id, Name: name}, nil
}

// AddContainer persists a new container. A missing compartment or tag leaves
// the document unchanged.
func (s *Service) AddContainer(ctx context.Context, opts AddContainerOptions) (*Created, error) {
	if err := requireName(opts.Name); err != nil {
		return nil, err
	}
	var id uint32
	err := s.mutate(ctx, func(inv *inventory.Inventory) error {
		c, err := inv.AddContainer(opts.Name, opts.Compartment, opts.Tags)
		id = c.ID
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Created{Kind: inventory.KindContainer, ID: id, Name: opts.Name}, nil
}

// AddItem persists a new item.
func (s *Service) AddItem(ctx context.Context, opts AddItemOptions) (*Created, error) {
	if err := requireName(opts.Name); err != nil {
		return nil, err
	}
	var id uint32
	err := s.mutate(ctx, func(inv *inventory.Inventory) error {
		it, err := inv.AddItem(opts.Name, opts.Container, opts.Tags...)
		id = it.ID
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Created{Kind: inventory.KindItem, ID: id, Name: opts.Name}, nil
}

func (s *Service) load(ctx context.Context) (*inventory.Inventory, error) {
	if s.Persistence == nil {
		return nil, errors.New("persistence is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Persistence.Load()
}

func (s *Service) mutate(ctx context.Context, fn func(inv *inventory.Inventory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(inv); err != nil {
		return err
	}
	return s.Persistence.Save(inv)
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}

func toTagDTOs(tags []inventory.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{ID: t.ID, Name: t.Name})
	}
	return out
}

func toCompartmentDTO(inv *inventory.Inventory, c inventory.Compartment) CompartmentDTO {
	dto := CompartmentDTO{ID: c.ID, Name: c.Name, Containers: []ContainerDTO{}}
	for _, cont := range inv.ContainersIn(c.ID) {
		cd := ContainerDTO{
			ID:          cont.ID,
			Compartment: c.ID,
			Name:        cont.Name,
			Tags:        inv.TagNames(cont.TagIDs),
			Items:       []ItemDTO{},
		}
		for _, it := range inv.ItemsIn(cont.ID) {
			cd.Items = append(cd.Items, ItemDTO{ID: it.ID, Name: it.Name, Tags: inv.TagNames(it.TagIDs)})
		}
		dto.Containers = append(dto.Containers, cd)
	}
	return dto
}
