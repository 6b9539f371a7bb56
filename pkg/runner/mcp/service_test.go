package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/store"
)

type memoryStore struct {
	inv   *inventory.Inventory
	saves int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{inv: inventory.New()}
}

func (m *memoryStore) Load() (*inventory.Inventory, error) { return m.inv.Clone(), nil }

func (m *memoryStore) Save(inv *inventory.Inventory) error {
	m.saves++
	m.inv = inv.Clone()
	return nil
}

func (m *memoryStore) Watch(ctx context.Context) (<-chan store.Event, error) {
	return nil, errors.New("not supported")
}

func (m *memoryStore) Path() string { return "memory" }

func (m *memoryStore) Close() error { return nil }

func TestServiceAddFlow(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore()
	svc := NewService(st)

	tag, err := svc.AddTag(ctx, "tools")
	if err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	comp, err := svc.AddCompartment(ctx, "Garage")
	if err != nil {
		t.Fatalf("AddCompartment failed: %v", err)
	}
	cont, err := svc.AddContainer(ctx, AddContainerOptions{Name: "North Wall", Compartment: comp.ID, Tags: []uint32{tag.ID}})
	if err != nil {
		t.Fatalf("AddContainer failed: %v", err)
	}
	item, err := svc.AddItem(ctx, AddItemOptions{Name: "Drill", Container: cont.ID})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.Kind != inventory.KindItem || item.ID != 0 {
		t.Fatalf("unexpected item %+v", item)
	}
	if st.saves != 4 {
		t.Fatalf("expected 4 saves, got %d", st.saves)
	}

	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(overview.Compartments) != 1 || overview.ItemCount != 1 {
		t.Fatalf("unexpected overview %+v", overview)
	}
	c := overview.Compartments[0].Containers[0]
	if c.Name != "North Wall" || len(c.Tags) != 1 || c.Tags[0] != "tools" || c.Items[0].Name != "Drill" {
		t.Fatalf("unexpected container %+v", c)
	}
}

func TestServiceMissingParentDoesNotSave(t *testing.T) {
	ctx := context.Background()
	st := newMemoryStore()
	svc := NewService(st)

	_, err := svc.AddContainer(ctx, AddContainerOptions{Name: "Box", Compartment: 3})
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = svc.AddItem(ctx, AddItemOptions{Name: "Drill", Container: 0})
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("expected no saves, got %d", st.saves)
	}
}

func TestServiceRequiresName(t *testing.T) {
	svc := NewService(newMemoryStore())
	if _, err := svc.AddTag(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestServiceCompartment(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryStore())
	if _, err := svc.AddCompartment(ctx, "Attic"); err != nil {
		t.Fatalf("AddCompartment failed: %v", err)
	}
	dto, err := svc.Compartment(ctx, 0)
	if err != nil || dto.Name != "Attic" {
		t.Fatalf("Compartment(0) = %+v, %v", dto, err)
	}
	if _, err := svc.Compartment(ctx, 1); !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func call(t *testing.T, srv *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := srv.GetTool(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return tc.Text
}

func TestTools(t *testing.T) {
	srv := server.NewMCPServer("test", "dev", server.WithToolCapabilities(false))
	registerTools(srv, NewService(newMemoryStore()))

	if res := call(t, srv, "add_compartment", map[string]any{"name": "Garage"}); res.IsError {
		t.Fatalf("add_compartment failed: %s", text(t, res))
	}
	if res := call(t, srv, "add_tag", map[string]any{"name": "tools"}); res.IsError {
		t.Fatalf("add_tag failed: %s", text(t, res))
	}

	res := call(t, srv, "add_container", map[string]any{"name": "Shelf", "compartment": 0, "tags": []any{0}})
	if res.IsError {
		t.Fatalf("add_container failed: %s", text(t, res))
	}
	var created Created
	if err := json.Unmarshal([]byte(text(t, res)), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Kind != inventory.KindContainer || created.Name != "Shelf" {
		t.Fatalf("unexpected result %+v", created)
	}

	cases := []struct {
		name string
		tool string
		args map[string]any
	}{
		{name: "missing compartment", tool: "add_container", args: map[string]any{"name": "Box"}},
		{name: "unknown compartment", tool: "add_container", args: map[string]any{"name": "Box", "compartment": 9}},
		{name: "unknown tag", tool: "add_item", args: map[string]any{"name": "Drill", "container": 0, "tags": []any{4}}},
		{name: "negative id", tool: "add_item", args: map[string]any{"name": "Drill", "container": -1}},
		{name: "missing name", tool: "add_tag", args: map[string]any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if res := call(t, srv, tc.tool, tc.args); !res.IsError {
				t.Fatalf("expected tool error, got %s", text(t, res))
			}
		})
	}

	var overview Overview
	if err := json.Unmarshal([]byte(text(t, call(t, srv, "list_inventory", nil))), &overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(overview.Compartments) != 1 || len(overview.Compartments[0].Containers) != 1 || overview.ItemCount != 0 {
		t.Fatalf("unexpected overview %+v", overview)
	}
}

func TestRunnerHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listening := make(chan net.Addr, 1)
	r := Runner{
		Persistence:     newMemoryStore(),
		Transport:       TransportHTTP,
		HTTPListenAddr:  "127.0.0.1:0",
		OnHTTPListening: func(a net.Addr) { listening <- a },
	}

	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	select {
	case <-listening:
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner never listened")
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerRejectsUnknownTransport(t *testing.T) {
	r := Runner{Persistence: newMemoryStore(), Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
