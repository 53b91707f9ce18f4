package extract

import (
	"github.com/xeptore/itms/itunes/viewml"
)

// Path reads the breadcrumb region. Pages without a Path node yield an
// empty breadcrumb; elements without a display name are kept with an
// empty name so positions stay stable.
func Path(root *viewml.Node) Breadcrumb {
	path := root.FirstChild("Path")
	if nil == path {
		return nil
	}

	elems := path.ChildrenOf("PathElement")
	out := make(Breadcrumb, 0, len(elems))
	for _, e := range elems {
		name, _ := e.Attr("displayName")
		out = append(out, PathSegment{Name: name, URL: e.Text()})
	}
	return out
}
