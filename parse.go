package mmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineBytes bounds a single line of input. Parse fails with
// ErrLineTooLong when a line exceeds it.
const MaxLineBytes = 64 * 1024

// Option adjusts how Parse reads a document.
type Option func(*parser)

// WithoutMetadata disables recognition of the leading "---" metadata
// block; such lines parse as ordinary content instead.
func WithoutMetadata() Option {
	return func(p *parser) { p.metadata = false }
}

// WithoutTables disables table recognition; pipe-delimited lines parse as
// ordinary paragraphs.
func WithoutTables() Option {
	return func(p *parser) { p.tables = false }
}

// Parse reads a Markdown document from r and returns the root of its node
// tree. The returned tree is fully resolved: reference links are patched
// and names that never received a definition fall back to the name itself.
func Parse(r io.Reader, opts ...Option) (*Node, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	p := newParser(r, opts...)
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.root, nil
}

// ParseString parses a Markdown document held in memory.
func ParseString(s string, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile parses the Markdown document stored at path.
func ParseFile(path string, opts ...Option) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOpen, err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// parser carries all state for one parse: the tree under construction, the
// container and leaf-block cursors, the reference table, and the column
// layout of the table being read.
type parser struct {
	lines      *lineScanner
	root       *Node
	current    *Node // innermost open container
	block      *Node // open leaf block receiving inline content
	refs       refTable
	columns    []NodeType
	numColumns int
	rows       int
	blankCode  bool // blank line seen inside an indented code block
	metadata   bool
	tables     bool
}

func newParser(r io.Reader, opts ...Option) *parser {
	p := &parser{
		lines:    newLineScanner(r),
		root:     &Node{typ: TypeDocument},
		metadata: true,
		tables:   true,
	}
	p.current = p.root
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *parser) run() error {
	for {
		raw, ok := p.lines.next()
		if !ok {
			break
		}
		p.parseLine(raw)
	}
	if err := p.lines.err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: %v", ErrLineTooLong, err)
		}
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	p.refs.resolve()
	return nil
}

// parseLine classifies one line and routes its content into the tree. The
// checks run in priority order; a few of them consume a prefix and fall
// through so later checks see the shortened line.
func (p *parser) parseLine(raw string) {
	rest := raw
	for len(rest) > 0 && isSpace(rest[0]) {
		rest = rest[1:]
	}
	indent := len(raw) - len(rest)

	switch {
	case indent >= 4 && p.block == nil && (p.current == p.root || p.current.typ == TypeCodeBlock):
		// Indented code block.
		if p.current == p.root {
			p.current = p.root.append(TypeCodeBlock, false, "", "")
		}
		if p.blankCode {
			p.current.append(TypeCodeText, false, "\n", "")
		}
		p.current.append(TypeCodeText, false, raw[4:]+"\n", "")
		p.blankCode = false
		return

	case len(rest) > 0 && rest[0] == '`' && (len(rest) == 1 || rest[1] == '`'):
		// Code fence toggle. Anything after the fence is dropped.
		switch {
		case p.block == nil:
			p.block = p.current.append(TypeCodeBlock, false, "", "")
		case p.block.typ == TypeCodeBlock:
			p.block = nil
		case p.block.typ == TypeListItem:
			p.block = p.block.append(TypeCodeBlock, false, "", "")
		case p.block.parent.typ == TypeListItem:
			p.block = p.block.parent.append(TypeCodeBlock, false, "", "")
		default:
			p.block = p.current.append(TypeCodeBlock, false, "", "")
		}
		return

	case p.block != nil && p.block.typ == TypeCodeBlock:
		// Verbatim content between fences.
		p.block.append(TypeCodeText, false, raw+"\n", "")
		return

	case p.metadata && rest == "---" && p.root.firstChild == nil:
		p.metadataBlock()
		return
	}

	// Thematic break: a run of -, * or _ standing alone. A mixed line
	// falls through with the run consumed.
	if p.block == nil && (hasRun3(rest, '-') || hasRun3(rest, '*') || hasRun3(rest, '_')) {
		ch := rest[0]
		i := 3
		for i < len(rest) && (rest[i] == ch || isSpace(rest[i])) {
			i++
		}
		if i == len(rest) {
			p.current.append(TypeThematicBreak, false, "", "")
			p.block = nil
			return
		}
		rest = rest[i:]
	}

	switch {
	case len(rest) > 0 && rest[0] == '>':
		// Block quote. Reuse an enclosing quote if one is open.
		node := p.current
		for node != p.root && node.typ != TypeBlockQuote {
			node = node.parent
		}
		if node == p.root {
			p.current = p.root.append(TypeBlockQuote, false, "", "")
		}
		rest = rest[1:]
		for len(rest) > 0 && isSpace(rest[0]) {
			rest = rest[1:]
		}
	case p.current.typ == TypeBlockQuote:
		p.current = p.current.parent
	case p.current.typ == TypeTable && p.current.parent != nil && p.current.parent.typ == TypeBlockQuote:
		p.current = p.current.parent.parent
	}

	if rest == "" {
		p.blankCode = p.current.typ == TypeCodeBlock
		p.block = nil
		return
	}

	if p.tables && strings.Contains(rest, "|") && (p.current.typ == TypeTable || p.separatorFollows()) {
		p.tableLine(rest)
		return
	}
	if p.current.typ == TypeTable {
		p.current = p.current.parent
		p.block = nil
	}

	if rest == "+" {
		// List item continuation: open a fresh paragraph in the item.
		if p.block != nil {
			switch {
			case p.block.typ == TypeListItem:
				p.block = p.block.append(TypeParagraph, false, "", "")
			case p.block.parent.typ == TypeListItem:
				p.block = p.block.parent.append(TypeParagraph, false, "", "")
			default:
				p.block = nil
			}
		}
		return
	}

	typ := TypeParagraph
	switch {
	case p.block != nil && p.block.typ == TypeParagraph && (hasRun3(rest, '-') || hasRun3(rest, '=')):
		// Setext underline promotes the open paragraph to a heading.
		ch := rest[0]
		i := 3
		for i < len(rest) && rest[i] == ch {
			i++
		}
		for i < len(rest) && isSpace(rest[i]) {
			i++
		}
		if i == len(rest) {
			if ch == '=' {
				p.block.typ = TypeHeading1
			} else {
				p.block.typ = TypeHeading2
			}
			p.block = nil
			return
		}
		rest = rest[i:]

	case len(rest) >= 2 && (rest[0] == '-' || rest[0] == '+' || rest[0] == '*') && isSpace(rest[1]):
		// Bulleted list item.
		rest = rest[2:]
		for len(rest) > 0 && isSpace(rest[0]) {
			rest = rest[1:]
		}
		if p.current == p.root && p.root.lastChild != nil && p.root.lastChild.typ == TypeUnorderedList {
			p.current = p.root.lastChild
		} else if p.current.typ != TypeUnorderedList {
			parent := p.root
			if p.current.typ == TypeBlockQuote {
				parent = p.current
			}
			p.current = parent.append(TypeUnorderedList, false, "", "")
		}
		typ = TypeListItem
		p.block = nil

	case isDigit(rest[0]):
		// Ordered list item, or a paragraph that starts with a number.
		i := 1
		for i < len(rest) && isDigit(rest[i]) {
			i++
		}
		if i+1 < len(rest) && rest[i] == '.' && isSpace(rest[i+1]) {
			rest = rest[i+2:]
			for len(rest) > 0 && isSpace(rest[0]) {
				rest = rest[1:]
			}
			if p.current == p.root && p.root.lastChild != nil && p.root.lastChild.typ == TypeOrderedList {
				p.current = p.root.lastChild
			} else if p.current.typ != TypeOrderedList {
				p.current = p.current.append(TypeOrderedList, false, "", "")
			}
			typ = TypeListItem
			p.block = nil
		} else if p.block != nil {
			typ = p.block.typ
		}

	case rest[0] == '#':
		// ATX heading levels 1-6; more # characters mean plain text.
		i := 1
		for i < len(rest) && rest[i] == '#' {
			i++
		}
		if i <= 6 {
			typ = TypeHeading1 + NodeType(i-1)
			p.block = nil
			rest = rest[i:]
			for len(rest) > 0 && isSpace(rest[0]) {
				rest = rest[1:]
			}
			for len(rest) > 1 && rest[len(rest)-1] == '#' {
				rest = rest[:len(rest)-1]
			}
		}
		if p.current.typ != TypeBlockQuote {
			p.current = p.root
		}

	case p.block == nil:
		if len(rest) == len(raw) {
			p.current = p.root
		}

	default:
		typ = p.block.typ
	}

	if p.block == nil || p.block.typ != typ {
		if p.current.typ == TypeCodeBlock {
			p.current = p.root
		}
		p.block = p.current.append(typ, false, "", "")
	}

	if p.parseInline(p.block, rest) && p.block.firstChild == nil {
		// A standalone reference definition leaves no visible node.
		p.block.Remove()
		p.block = nil
	}
}

// metadataBlock consumes lines up to the closing "---" or "..." marker,
// storing each inner line as a metadata text leaf.
func (p *parser) metadataBlock() {
	block := p.root.append(TypeMetadata, false, "", "")
	for {
		raw, ok := p.lines.next()
		if !ok {
			break
		}
		if strings.HasPrefix(raw, "---") || strings.HasPrefix(raw, "...") {
			break
		}
		text := raw
		for len(text) > 0 && isSpace(text[0]) {
			text = text[1:]
		}
		block.append(TypeMetadataText, false, text, "")
	}
	p.block = nil
}

// separatorFollows peeks at the next line and reports whether it looks
// like a table separator row: only :, -, | and whitespace, plus an
// optional leading >.
func (p *parser) separatorFollows() bool {
	next, ok := p.lines.peek()
	if !ok {
		return false
	}
	for i := 0; i < len(next); i++ {
		switch {
		case next[i] == '>' && i == 0:
		case next[i] == ':' || next[i] == '-' || next[i] == '|' || isSpace(next[i]):
		default:
			return false
		}
	}
	return true
}

// tableLine adds one table row. The first row opens the table and header,
// the separator row sets column alignments, and later rows fill the body,
// padded to the widest row seen.
func (p *parser) tableLine(rest string) {
	if p.current.typ != TypeTable {
		if p.current != p.root && p.current.typ != TypeBlockQuote {
			p.current = p.current.parent
		}
		p.current = p.current.append(TypeTable, false, "", "")
		p.block = p.current.append(TypeTableHeader, false, "", "")
		p.columns = p.columns[:0]
		p.numColumns = 0
		p.rows = -1
	} else if p.rows > 0 {
		if p.rows == 1 {
			p.block = p.current.append(TypeTableBody, false, "", "")
		}
	} else {
		p.block = nil
	}

	var row *Node
	if p.block != nil {
		row = p.block.append(TypeTableRow, false, "", "")
	}

	if rest[0] == '|' {
		rest = rest[1:]
	}
	if len(rest) > 1 && rest[len(rest)-1] == '|' {
		rest = rest[:len(rest)-1]
	}

	col := 0
	for rest != "" {
		cell := rest
		if i := strings.IndexByte(rest[1:], '|'); i >= 0 {
			cell = rest[:i+1]
			rest = rest[i+2:]
		} else {
			rest = ""
		}

		if p.block != nil {
			cellType := p.columnType(col)
			if p.block.typ == TypeTableHeader {
				cellType = TypeTableHeaderCell
			}
			p.parseInline(row.append(cellType, false, "", ""), cell)
		} else {
			p.setAlignment(col, cell)
		}
		col++
	}

	if col > p.numColumns {
		p.numColumns = col
	} else if p.block != nil && p.block.typ != TypeTableHeader {
		for ; col < p.numColumns; col++ {
			row.append(p.columnType(col), false, "", "")
		}
	}
	p.rows++
}

func (p *parser) columnType(col int) NodeType {
	if col < len(p.columns) {
		return p.columns[col]
	}
	return TypeTableBodyCellLeft
}

func (p *parser) setAlignment(col int, cell string) {
	for len(p.columns) <= col {
		p.columns = append(p.columns, TypeTableBodyCellLeft)
	}
	cell = trimSpace(cell)
	if cell == "" {
		return
	}
	switch {
	case cell[0] == ':' && cell[len(cell)-1] == ':':
		p.columns[col] = TypeTableBodyCellCenter
	case cell[len(cell)-1] == ':':
		p.columns[col] = TypeTableBodyCellRight
	}
}

// lineScanner yields terminator-free lines with one line of lookahead for
// the table separator check.
type lineScanner struct {
	s        *bufio.Scanner
	pending  string
	buffered bool
}

func newLineScanner(r io.Reader) *lineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024), MaxLineBytes)
	return &lineScanner{s: s}
}

func (l *lineScanner) next() (string, bool) {
	if l.buffered {
		l.buffered = false
		return l.pending, true
	}
	if !l.s.Scan() {
		return "", false
	}
	return l.s.Text(), true
}

func (l *lineScanner) peek() (string, bool) {
	if !l.buffered {
		if !l.s.Scan() {
			return "", false
		}
		l.pending = l.s.Text()
		l.buffered = true
	}
	return l.pending, true
}

func (l *lineScanner) err() error {
	return l.s.Err()
}

func hasRun3(s string, ch byte) bool {
	return len(s) >= 3 && s[0] == ch && s[1] == ch && s[2] == ch
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func trimSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
