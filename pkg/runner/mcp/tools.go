package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListInventoryTool(srv, svc)
	registerAddTagTool(srv, svc)
	registerAddCompartmentTool(srv, svc)
	registerAddContainerTool(srv, svc)
	registerAddItemTool(srv, svc)
}

func registerListInventoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_inventory",
		mcp.WithDescription("List every compartment with its containers and items, plus all tags."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		overview, err := svc.Overview(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(overview)
	})
}

func registerAddTagTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_tag",
		mcp.WithDescription("Create a tag that containers and items can carry."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Tag name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		created, err := svc.AddTag(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(created)
	})
}

func registerAddCompartmentTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_compartment",
		mcp.WithDescription("Create a top level compartment such as a room or a cupboard."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Compartment name."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		created, err := svc.AddCompartment(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(created)
	})
}

func registerAddContainerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_container",
		mcp.WithDescription("Create a container inside an existing compartment."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Container name."),
		),
		mcp.WithNumber("compartment",
			mcp.Required(),
			mcp.Description("Id of the compartment that holds the container."),
			mcp.Min(0),
		),
		mcp.WithArray("tags",
			mcp.Description("Optional tag ids to attach."),
			mcp.WithNumberItems(mcp.Min(0)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name        string   `json:"name"`
			Compartment *uint32  `json:"compartment"`
			Tags        []uint32 `json:"tags"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Compartment == nil {
			return mcp.NewToolResultError("compartment is required"), nil
		}

		created, err := svc.AddContainer(ctx, AddContainerOptions{
			Name:        args.Name,
			Compartment: *args.Compartment,
			Tags:        args.Tags,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(created)
	})
}

func registerAddItemTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_item",
		mcp.WithDescription("Create an item inside an existing container."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Item name."),
		),
		mcp.WithNumber("container",
			mcp.Required(),
			mcp.Description("Id of the container that holds the item."),
			mcp.Min(0),
		),
		mcp.WithArray("tags",
			mcp.Description("Optional tag ids to attach."),
			mcp.WithNumberItems(mcp.Min(0)),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name      string   `json:"name"`
			Container *uint32  `json:"container"`
			Tags      []uint32 `json:"tags"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Container == nil {
			return mcp.NewToolResultError("container is required"), nil
		}

		created, err := svc.AddItem(ctx, AddItemOptions{
			Name:      args.Name,
			Container: *args.Container,
			Tags:      args.Tags,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(created)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
