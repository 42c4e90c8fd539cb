package theme

import (
	"image/color"
)

// Theme defines the colour palette of the paint widget chrome. The canvas
// itself is always drawn with the document's own pixels.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Main text colour

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA // Pressed or selected tool
	ButtonText            color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Layer panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelActive     color.RGBA // Row of the active layer
	PanelHidden     color.RGBA // Text of hidden layers
	DropIndicator   color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA
	StatusError      color.RGBA

	// Canvas surround
	CanvasBorder color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{200, 200, 200, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		PanelBackground:       color.RGBA{235, 235, 235, 255},
		PanelText:             color.RGBA{0, 0, 0, 255},
		PanelActive:           color.RGBA{190, 210, 240, 255},
		PanelHidden:           color.RGBA{130, 130, 130, 255},
		DropIndicator:         color.RGBA{30, 90, 200, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
		StatusError:           color.RGBA{180, 0, 0, 255},
		CanvasBorder:          color.RGBA{90, 90, 90, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
