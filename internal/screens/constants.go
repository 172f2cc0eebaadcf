package screens

import "time"

// Screen configuration constants
const (
	// LoadTimeout bounds building the roots of a view or the children of
	// one node. Unreachable clusters take this long to show an error.
	LoadTimeout = 30 * time.Second

	// DetailLines is the space under the rows for the selected node's
	// tooltip.
	DetailLines = 1
)
