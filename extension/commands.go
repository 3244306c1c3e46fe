package extension

import (
	"sort"
	"sync"

	"github.com/viant/x"
)

// Command describes one operation exposed by the catalog.
type Command struct {
	Name        string
	Description string
	Type        *x.Type
}

// Commands is a registry of commands keyed by name.
type Commands struct {
	registry *x.Registry
	commands map[string]*Command
	mux      sync.RWMutex
}

// Register adds a command; the last registration for a name wins.
func (c *Commands) Register(command *Command) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if command.Type != nil {
		c.registry.Register(command.Type)
	}
	c.commands[command.Name] = command
}

// Lookup returns a command by name, or nil.
func (c *Commands) Lookup(name string) *Command {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.commands[name]
}

// All returns every registered command sorted by name.
func (c *Commands) All() []*Command {
	c.mux.RLock()
	defer c.mux.RUnlock()
	ret := make([]*Command, 0, len(c.commands))
	for _, command := range c.commands {
		ret = append(ret, command)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// NewCommands creates an empty command catalog.
func NewCommands() *Commands {
	return &Commands{
		registry: x.NewRegistry(),
		commands: make(map[string]*Command),
	}
}
