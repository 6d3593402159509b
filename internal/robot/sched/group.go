package sched

import "github.com/team6458/powerup/internal/robot/core"

// Group runs an ordered sequence of child commands to completion, one at a
// time. Children are tracked by an index plus the currently active handle;
// there are no back-references from child to group.
//
// Interrupting the group interrupts the currently running child and discards
// the rest: partial execution, not rollback.
type Group struct {
	name     string
	children []Command
	next     int     // index of the next child to start
	active   Command // child currently running, nil between children
}

var _ Command = (*Group)(nil)

// NewGroup builds a sequential command group.
func NewGroup(name string, children ...Command) *Group {
	return &Group{name: name, children: children}
}

func (g *Group) Name() string { return g.name }

// Requirements is the union of all children's requirements, so that a
// conflicting claim against any child interrupts the whole sequence.
func (g *Group) Requirements() []core.Resource {
	seen := make(map[core.Resource]bool)
	var out []core.Resource
	for _, c := range g.children {
		for _, res := range c.Requirements() {
			if !seen[res] {
				seen[res] = true
				out = append(out, res)
			}
		}
	}
	return out
}

func (g *Group) Initialize() {
	g.next = 0
	g.active = nil
}

// Execute starts the next pending child if none is running, otherwise
// delegates one step to the current child and retires it normally when its
// finish predicate holds.
func (g *Group) Execute() {
	if g.active == nil {
		if g.next < len(g.children) {
			g.active = g.children[g.next]
			g.next++
			g.active.Initialize()
		}
		return
	}

	g.active.Execute()
	if g.active.IsFinished() {
		g.active.End(false)
		g.active = nil
	}
}

// IsFinished holds exactly when every child has been retired normally.
func (g *Group) IsFinished() bool {
	return g.active == nil && g.next >= len(g.children)
}

func (g *Group) End(interrupted bool) {
	if interrupted && g.active != nil {
		g.active.End(true)
	}
	g.active = nil
	g.next = len(g.children) // never start the remaining children
}
