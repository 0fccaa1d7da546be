package sim

import "sync"

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a element that is being simulated.
type Component interface {
	Named
	Handler
	Hookable
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	HookableBase
	sync.Mutex
	name string
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name

	return c
}

// Name returns the name of the ComponentBase
func (c *ComponentBase) Name() string {
	return c.name
}

// NameMustBeValid panics if the name cannot be used to identify a component.
// Names are dot separated tokens, such as "World.Node[3]".
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	for _, token := range splitName(name) {
		if token == "" {
			panic("name " + name + " has an empty token")
		}
	}
}

func splitName(name string) []string {
	tokens := []string{}
	start := 0
	depth := 0

	for i, ch := range name {
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				tokens = append(tokens, name[start:i])
				start = i + 1
			}
		}
	}

	return append(tokens, name[start:])
}
