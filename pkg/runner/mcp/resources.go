package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/shelf/pkg/command"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerInventoryResource(srv, svc)
	registerTagsResource(srv, svc)
	registerCompartmentTemplate(srv, svc)
}

func registerInventoryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"shelf://inventory",
		"Inventory",
		mcp.WithResourceDescription("Every compartment, container and item."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		overview, err := svc.Overview(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, overview)
	})
}

func registerTagsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"shelf://tags",
		"Tags",
		mcp.WithResourceDescription("All tags with their ids."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tags, err := svc.ListTags(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"tags":  tags,
			"count": len(tags),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerCompartmentTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"shelf://compartments/{id}",
		"Compartment",
		mcp.WithTemplateDescription("One compartment with its containers and items."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, err := compartmentID(request.Params.Arguments["id"])
		if err != nil {
			return nil, err
		}

		dto, err := svc.Compartment(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"compartment": dto})
	})
}

// compartmentID accepts the template argument either as a string or as the
// single element slice some uri template matchers produce.
func compartmentID(v any) (uint32, error) {
	switch raw := v.(type) {
	case string:
		return command.ParseID("id", raw)
	case []string:
		if len(raw) == 1 {
			return command.ParseID("id", raw[0])
		}
	}
	return 0, fmt.Errorf("compartment id is required")
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
