package mmd

import "strings"

// Node is one element of a parsed document tree. Nodes form a doubly linked
// sibling chain under their parent. The parser owns construction; callers
// navigate with the accessor methods, which all tolerate a nil receiver.
type Node struct {
	typ        NodeType
	whitespace bool
	text       string
	url        string
	parent     *Node
	firstChild *Node
	lastChild  *Node
	prevSib    *Node
	nextSib    *Node
}

// Type returns the node type, or TypeNone for a nil node.
func (n *Node) Type() NodeType {
	if n == nil {
		return TypeNone
	}
	return n.typ
}

// Text returns the text carried by the node, if any.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// URL returns the link target for linked text and images, if any.
func (n *Node) URL() string {
	if n == nil {
		return ""
	}
	return n.url
}

// Whitespace reports whether whitespace preceded the node in the source.
func (n *Node) Whitespace() bool {
	if n == nil {
		return false
	}
	return n.whitespace
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// FirstChild returns the first child, or nil for a leaf.
func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.firstChild
}

// LastChild returns the last child, or nil for a leaf.
func (n *Node) LastChild() *Node {
	if n == nil {
		return nil
	}
	return n.lastChild
}

// PrevSibling returns the previous sibling, or nil at the front.
func (n *Node) PrevSibling() *Node {
	if n == nil {
		return nil
	}
	return n.prevSib
}

// NextSibling returns the next sibling, or nil at the end.
func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	return n.nextSib
}

// IsBlock reports whether the node is a structural block.
func (n *Node) IsBlock() bool {
	return n != nil && n.typ.IsBlock()
}

// append creates a child of the given type at the end of n's child list.
func (n *Node) append(typ NodeType, whitespace bool, text, url string) *Node {
	child := &Node{
		typ:        typ,
		whitespace: whitespace,
		text:       text,
		url:        url,
		parent:     n,
	}
	if n.lastChild != nil {
		child.prevSib = n.lastChild
		n.lastChild.nextSib = child
		n.lastChild = child
	} else {
		n.firstChild = child
		n.lastChild = child
	}
	return child
}

// insertBefore creates a sibling of ref placed immediately before it.
// ref must have a parent.
func insertBefore(ref *Node, typ NodeType, whitespace bool, text, url string) *Node {
	node := &Node{
		typ:        typ,
		whitespace: whitespace,
		text:       text,
		url:        url,
		parent:     ref.parent,
		prevSib:    ref.prevSib,
		nextSib:    ref,
	}
	if ref.prevSib != nil {
		ref.prevSib.nextSib = node
	} else {
		ref.parent.firstChild = node
	}
	ref.prevSib = node
	return node
}

// Remove detaches the node and its subtree from the tree. The node keeps
// its children and can be reattached or freed. Removing the root or a nil
// node is a no-op.
func (n *Node) Remove() {
	if n == nil || n.parent == nil {
		return
	}
	if n.prevSib != nil {
		n.prevSib.nextSib = n.nextSib
	} else {
		n.parent.firstChild = n.nextSib
	}
	if n.nextSib != nil {
		n.nextSib.prevSib = n.prevSib
	} else {
		n.parent.lastChild = n.prevSib
	}
	n.parent = nil
	n.prevSib = nil
	n.nextSib = nil
}

// Free detaches the node and releases its entire subtree. The traversal is
// iterative, so arbitrarily deep trees do not exhaust the stack. Every
// released node has its links and text cleared, which both isolates cycles
// for the garbage collector and invalidates accidental reuse.
func (n *Node) Free() {
	if n == nil {
		return
	}
	n.Remove()
	cur := n.firstChild
	for cur != nil {
		if next := cur.firstChild; next != nil {
			cur.firstChild = nil
			cur = next
			continue
		}
		next := cur.nextSib
		if next == nil {
			if next = cur.parent; next == n {
				next = nil
			}
		}
		cur.clear()
		cur = next
	}
	n.clear()
}

func (n *Node) clear() {
	n.typ = TypeNone
	n.whitespace = false
	n.text = ""
	n.url = ""
	n.parent = nil
	n.firstChild = nil
	n.lastChild = nil
	n.prevSib = nil
	n.nextSib = nil
}

// CollectText concatenates the text of every descendant in depth-first
// order, visiting children before siblings. A single space is written
// before each contributor whose whitespace flag is set, except the very
// first. Collecting from a nil node or a childless node yields "".
func (n *Node) CollectText() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	first := true
	cur := n.firstChild
	for cur != nil {
		if cur.text != "" {
			if cur.whitespace && !first {
				sb.WriteByte(' ')
			}
			sb.WriteString(cur.text)
			first = false
		}
		switch {
		case cur.firstChild != nil:
			cur = cur.firstChild
		case cur.nextSib != nil:
			cur = cur.nextSib
		default:
			p := cur.parent
			for p != nil && p != n && p.nextSib == nil {
				p = p.parent
			}
			if p == nil || p == n {
				cur = nil
			} else {
				cur = p.nextSib
			}
		}
	}
	return sb.String()
}
