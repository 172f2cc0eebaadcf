package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/renato0307/fluxtree/internal/tree"
)

// RenderText writes the loaded part of a tree with box-drawing guides
func RenderText(w io.Writer, roots []*tree.Node, withIcons bool) error {
	for _, r := range roots {
		if err := renderNode(w, r, "", "", withIcons); err != nil {
			return err
		}
	}
	return nil
}

func renderNode(w io.Writer, n *tree.Node, prefix, childPrefix string, withIcons bool) error {
	var line strings.Builder
	line.WriteString(prefix)
	if withIcons {
		if g := n.Icon.Glyph(); g != "" {
			line.WriteString(g + " ")
		}
	}
	line.WriteString(n.Label)
	if n.Description != "" {
		line.WriteString("  " + n.Description)
	}
	if _, err := fmt.Fprintln(w, line.String()); err != nil {
		return err
	}

	children := n.LoadedChildren()
	for i, c := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		if err := renderNode(w, c, childPrefix+branch, childPrefix+next, withIcons); err != nil {
			return err
		}
	}
	return nil
}
