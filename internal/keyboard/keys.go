package keyboard

// Keys holds all keyboard shortcut configurations for fluxtree
type Keys struct {
	// Command Bar Activation
	FilterActivate  string // Activate filter mode
	PaletteActivate string // Activate command palette
	ContextPicker   string // Open the context picker

	// Tabs
	NextView string
	PrevView string

	// Tree
	Expand   string
	Collapse string
	Toggle   string

	// Resource Operations
	Describe  string // Describe resource
	YAML      string // View YAML
	Copy      string // Copy kind/namespace/name
	Reconcile string
	Suspend   string
	Resume    string

	// Navigation
	Up         string // Move selection up
	Down       string // Move selection down
	JumpTop    string // Jump to top
	JumpBottom string // Jump to bottom
	PageUp     string // Page up
	PageDown   string // Page down

	// Global
	Quit    string // Quit application
	Refresh string // Force a kubeconfig sync and reload every tree
	Back    string // Back/clear filter
	History string // Show action history
	Help    string
}

// Default returns the default keyboard configuration
func Default() *Keys {
	return &Keys{
		FilterActivate:  "/",
		PaletteActivate: "ctrl+p",
		ContextPicker:   "ctrl+k",

		NextView: "tab",
		PrevView: "shift+tab",

		Expand:   "l",
		Collapse: "h",
		Toggle:   "enter",

		Describe:  "d",
		YAML:      "y",
		Copy:      "c",
		Reconcile: "r",
		Suspend:   "s",
		Resume:    "R",

		Up:         "k",
		Down:       "j",
		JumpTop:    "g",
		JumpBottom: "G",
		PageUp:     "ctrl+b",
		PageDown:   "ctrl+f",

		Quit:    "ctrl+c",
		Refresh: "ctrl+r",
		Back:    "esc",
		History: "H",
		Help:    "?",
	}
}

// GetKeys returns the current keyboard configuration
func GetKeys() *Keys {
	return Default()
}
