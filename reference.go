package mmd

import "strings"

// reference tracks one named link target together with the nodes that used
// the name before its definition arrived.
type reference struct {
	name    string
	url     string
	defined bool
	pending []*Node
}

// refTable resolves reference names to targets. Names compare
// case-insensitively; the first spelling seen is the one kept.
type refTable struct {
	refs []*reference
}

func (t *refTable) find(name string) *reference {
	for _, ref := range t.refs {
		if strings.EqualFold(ref.name, name) {
			return ref
		}
	}
	return nil
}

// use records that node links through name. If the name is already defined
// the node's URL is filled immediately, otherwise the node waits for the
// definition.
func (t *refTable) use(node *Node, name string) {
	ref := t.find(name)
	if ref == nil {
		ref = &reference{name: name}
		t.refs = append(t.refs, ref)
	}
	if ref.defined {
		node.url = ref.url
		return
	}
	ref.pending = append(ref.pending, node)
}

// define records the target for name and fills every node waiting on it.
// The first definition of a name wins; later ones are ignored.
func (t *refTable) define(name, url string) {
	ref := t.find(name)
	if ref == nil {
		t.refs = append(t.refs, &reference{name: name, url: url, defined: true})
		return
	}
	if ref.defined {
		return
	}
	ref.url = url
	ref.defined = true
	for _, node := range ref.pending {
		node.url = url
	}
	ref.pending = nil
}

// resolve runs at end of parse. Nodes whose definition never arrived fall
// back to the reference name itself as their URL.
func (t *refTable) resolve() {
	for _, ref := range t.refs {
		for _, node := range ref.pending {
			node.url = ref.name
		}
		ref.pending = nil
	}
	t.refs = nil
}
