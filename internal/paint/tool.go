package paint

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTool = errors.New("paint: unknown tool")

// Tool identifies what a pointer gesture does to the active layer.
type Tool int

const (
	Pencil Tool = iota
	Line
	Rect
	Oval
	Eraser
	Bucket
	Eyedropper
)

var toolNames = [...]string{
	Pencil:     "pencil",
	Line:       "line",
	Rect:       "rect",
	Oval:       "oval",
	Eraser:     "eraser",
	Bucket:     "bucket",
	Eyedropper: "eyedropper",
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Pencil, Line, Rect, Oval, Eraser, Bucket, Eyedropper}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Shaped reports whether the tool previews a shape during a drag and commits
// it on release.
func (t Tool) Shaped() bool {
	return t == Line || t == Rect || t == Oval
}

// ParseTool resolves a tool name, ignoring case. "rectangle", "ellipse",
// "fill" and "picker" are accepted as aliases.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "rectangle":
		return Rect, nil
	case "ellipse", "circle":
		return Oval, nil
	case "fill":
		return Bucket, nil
	case "picker", "pick":
		return Eyedropper, nil
	}
	for i, s := range toolNames {
		if s == n {
			return Tool(i), nil
		}
	}
	return Pencil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}
