package board

import (
	"fmt"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Net is one entry of the board's net table: (net 0 "").
// Net 0 is always the unconnected net with an empty name.
type Net struct {
	ID   int
	Name string
}

func parseNet(node *sexp.Node) (*Net, error) {
	id, err := sexp.IntAt(node, 1)
	if err != nil {
		return nil, err
	}
	name, err := sexp.StringAt(node, 2)
	if err != nil {
		return nil, fmt.Errorf("net %d: %w", id, err)
	}
	return &Net{ID: id, Name: name}, nil
}

// Tree rebuilds the (net id "name") entry. The name has been quoted in
// every supported era.
func (n *Net) Tree() *sexp.Node {
	b := sexp.NewBuilder("net")
	b.AddInt(n.ID)
	b.AddString(n.Name)
	return b.Build()
}
