package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/pprof/profile"
)

// Top returns a flat attribution table in the spirit of the pprof top
// command, sorted by flat gate count. Must be called after Stop.
func (p *Profile) Top() string {
	type node struct {
		name           string
		flat, flatAnds int64
		cum            int64
	}
	byName := make(map[string]*node)
	nodeOf := func(name string) *node {
		n, ok := byName[name]
		if !ok {
			n = &node{name: name}
			byName[name] = n
		}
		return n
	}

	var totalAnds int64
	for _, s := range p.pprof.Sample {
		totalAnds += s.Value[1]
		if len(s.Location) == 0 {
			continue
		}
		// locations are leaf first
		leaf := nodeOf(funcName(s.Location[0]))
		leaf.flat += s.Value[0]
		leaf.flatAnds += s.Value[1]

		seen := make(map[string]struct{}, len(s.Location))
		for _, loc := range s.Location {
			name := funcName(loc)
			if _, ok := seen[name]; ok {
				continue // count recursive frames once
			}
			seen[name] = struct{}{}
			nodeOf(name).cum += s.Value[0]
		}
	}

	nodes := make([]*node, 0, len(byName))
	for _, n := range byName {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].flat != nodes[j].flat {
			return nodes[i].flat > nodes[j].flat
		}
		return nodes[i].name < nodes[j].name
	})

	total := int64(len(p.pprof.Sample))
	pct := func(v int64) float64 {
		if total == 0 {
			return 0
		}
		return 100 * float64(v) / float64(total)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing nodes accounting for %d gates, %d ands\n", total, totalAnds)
	sb.WriteString("      flat  flat%   sum%        cum   cum%       ands   name\n")
	var running int64
	for _, n := range nodes {
		running += n.flat
		fmt.Fprintf(&sb, "%10d %6.2f%% %6.2f%% %10d %6.2f%% %10d   %s\n",
			n.flat, pct(n.flat), pct(running), n.cum, pct(n.cum), n.flatAnds, n.name)
	}
	return sb.String()
}

// Tree returns the weighted call tree of the session: one line per builder
// invocation path, indented by nesting depth, with gate and And counts
// aggregated per path. Must be called after Stop.
func (p *Profile) Tree() string {
	root := &treeNode{children: map[string]*treeNode{}}
	for _, s := range p.pprof.Sample {
		node := root
		// walk the stack outermost first
		for i := len(s.Location) - 1; i >= 0; i-- {
			name := funcName(s.Location[i])
			child, ok := node.children[name]
			if !ok {
				child = &treeNode{name: name, children: map[string]*treeNode{}}
				node.children[name] = child
			}
			child.gates += s.Value[0]
			child.ands += s.Value[1]
			node = child
		}
	}

	var sb strings.Builder
	writeTree(&sb, root, 0)
	return sb.String()
}

type treeNode struct {
	name     string
	gates    int64
	ands     int64
	children map[string]*treeNode
}

func writeTree(sb *strings.Builder, n *treeNode, depth int) {
	children := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].gates != children[j].gates {
			return children[i].gates > children[j].gates
		}
		return children[i].name < children[j].name
	})
	for _, c := range children {
		fmt.Fprintf(sb, "%*s%s %d gates (%d ands)\n", 2*depth, "", c.name, c.gates, c.ands)
		writeTree(sb, c, depth+1)
	}
}

func funcName(loc *profile.Location) string {
	if len(loc.Line) == 0 || loc.Line[0].Function == nil {
		return "??"
	}
	return loc.Line[0].Function.Name
}
