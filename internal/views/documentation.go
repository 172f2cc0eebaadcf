package views

import (
	"context"

	"github.com/renato0307/fluxtree/internal/tree"
)

// DocLink is one entry of the documentation view
type DocLink struct {
	Title string
	URL   string
}

// DefaultDocs are the links shown in the documentation view
var DefaultDocs = []DocLink{
	{Title: "Flux documentation", URL: "https://fluxcd.io/flux/"},
	{Title: "Get started", URL: "https://fluxcd.io/flux/get-started/"},
	{Title: "Sources", URL: "https://fluxcd.io/flux/components/source/"},
	{Title: "Kustomizations", URL: "https://fluxcd.io/flux/components/kustomize/kustomizations/"},
	{Title: "Helm releases", URL: "https://fluxcd.io/flux/components/helm/helmreleases/"},
	{Title: "Flux CLI reference", URL: "https://fluxcd.io/flux/cmd/"},
	{Title: "Troubleshooting", URL: "https://fluxcd.io/flux/cheatsheets/troubleshooting/"},
}

// DocumentationView is a static list of links
type DocumentationView struct {
	*base
	links []DocLink
}

// NewDocumentationView creates the documentation view; nil links means DefaultDocs
func NewDocumentationView(links []DocLink) *DocumentationView {
	if links == nil {
		links = DefaultDocs
	}
	v := &DocumentationView{links: links}
	v.base = newBase(DocumentationID, "Docs", true, v.build)
	return v
}

func (v *DocumentationView) build(context.Context) ([]*tree.Node, error) {
	roots := make([]*tree.Node, 0, len(v.links))
	for _, l := range v.links {
		n := tree.New(tree.KindDocLink, l.Title)
		n.Icon = tree.IconDoc
		n.Link = l.URL
		n.Description = l.URL
		roots = append(roots, n)
	}
	return roots, nil
}
