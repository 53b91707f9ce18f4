package extract

import (
	"strconv"

	"github.com/xeptore/itms/iterutil"
	"github.com/xeptore/itms/itunes/viewml"
)

// Dict is one dictionary of an embedded property-list structure: an
// alternating sequence of key nodes and arbitrary value nodes.
type Dict struct {
	values map[string]*viewml.Node
}

func (d Dict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

func (d Dict) String(key string) string {
	if v, ok := d.values[key]; ok {
		return v.Text()
	}
	return ""
}

func (d Dict) Int(key string) int {
	v, ok := d.values[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v.Text())
	if nil != err {
		return 0
	}
	return n
}

func (d Dict) Bool(key string) bool {
	v, ok := d.values[key]
	if !ok {
		return false
	}
	switch v.Tag {
	case "true":
		return true
	case "false":
		return false
	}
	return v.Text() == "1" || v.Text() == "true"
}

// dicts parses the property-list array found anywhere under region into
// its dictionaries, preserving document order. A key node with no value
// sibling following it is dropped.
func dicts(region *viewml.Node) ([]Dict, error) {
	arr, ok := iterutil.First(region.Descendants("array"))
	if !ok {
		return nil, missing(region.Tag + "/plist/array")
	}

	out := make([]Dict, 0, len(arr.Children))
	for _, d := range arr.ChildrenOf("dict") {
		values := make(map[string]*viewml.Node, len(d.Children)/2)
		for i := 0; i < len(d.Children); i++ {
			c := d.Children[i]
			if c.Tag != "key" {
				continue
			}
			if i+1 >= len(d.Children) {
				break
			}
			values[c.Text()] = d.Children[i+1]
			i++
		}
		out = append(out, Dict{values: values})
	}
	return out, nil
}
