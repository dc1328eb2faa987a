package syntax

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type jsonNode struct {
	Type      string      `json:"type"`
	Pos       string      `json:"pos"`
	Summary   string      `json:"summary"`
	Result    string      `json:"result,omitempty"`
	Children  []*jsonNode `json:"children,omitempty"`
	Instances []*jsonNode `json:"instances,omitempty"`
}

func toJSON(node Node) *jsonNode {
	if isNil(node) {
		return nil
	}
	j := &jsonNode{
		Type:    strings.TrimPrefix(fmt.Sprintf("%T", node), "*syntax."),
		Pos:     node.Pos().String(),
		Summary: describe(node),
	}
	if e, ok := node.(Expr); ok && e.Type() != nil {
		j.Result = e.Type().String()
	}
	for _, c := range node.Children() {
		j.Children = append(j.Children, toJSON(c))
	}
	if c, ok := node.(*Class); ok {
		for _, inst := range c.Instances() {
			j.Instances = append(j.Instances, toJSON(inst))
		}
	}
	return j
}
