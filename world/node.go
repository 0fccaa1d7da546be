package world

import (
	"github.com/sarchlab/oppnet/mobility"
	"github.com/sarchlab/oppnet/routing"
)

// A Node is a host in the world.
type Node struct {
	router *routing.Router
	walker *mobility.Walker
	mule   bool
}

// Name returns the name of the router of the node.
func (n *Node) Name() string {
	return n.router.Name()
}

// Router returns the router of the node.
func (n *Node) Router() *routing.Router {
	return n.router
}

// Walker returns the movement of the node.
func (n *Node) Walker() *mobility.Walker {
	return n.walker
}

// Position returns where the node is.
func (n *Node) Position() mobility.Coord {
	return n.walker.Position()
}

// IsMule tells if the node is a data mule.
func (n *Node) IsMule() bool {
	return n.mule
}
