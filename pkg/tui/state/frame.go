package state

import (
	"tableflip.dev/shelf/pkg/command"
	"tableflip.dev/shelf/pkg/inventory"
)

// Frame is a read-only view of State for one render pass.
type Frame struct {
	Width, Height int
	View          command.View
	Messages      []string
	Line          string
	Caret         int
	Pending       bool
	Path          string
	Inventory     *inventory.Inventory
}
