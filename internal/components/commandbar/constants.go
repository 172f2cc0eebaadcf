package commandbar

import "time"

const (
	// MaxPaletteItems is the maximum number of items shown in the command
	// palette before scrolling is required.
	MaxPaletteItems = 8

	// MaxHistory bounds the command history.
	MaxHistory = 100

	// TipRotationInterval is how long a usage tip stays in the hints line.
	TipRotationInterval = 15 * time.Second
)
