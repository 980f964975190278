package mmd

import "strings"

// parseInline tokenizes one line of inline content into text leaves under
// parent. It reports whether a reference definition absorbed the line.
func (p *parser) parseInline(parent *Node, line string) bool {
	s := inlineScanner{
		parent: parent,
		line:   line,
		refs:   &p.refs,
		ws:     parent.lastChild != nil,
	}
	return s.scan()
}

// inlineScanner walks a line byte by byte, accumulating plain text in run
// and tracking at most one open span. Emphasis, strong and struck spans
// that never close revert to literal text at end of line.
type inlineScanner struct {
	parent *Node
	line   string
	refs   *refTable
	pos    int
	ws     bool
	run    strings.Builder
	span   *openSpan
}

// openSpan records a span whose closing marker has not arrived yet.
type openSpan struct {
	typ    NodeType
	delim  string
	openWS bool  // whitespace state when the span opened
	marker *Node // first node emitted while the span was open
}

func (s *inlineScanner) scan() bool {
	for s.pos < len(s.line) {
		ch := s.line[s.pos]

		// Inside a code span only the closing backtick is special.
		if s.span != nil && s.span.typ == TypeCodeText && ch != '`' {
			s.run.WriteByte(ch)
			s.pos++
			continue
		}

		switch {
		case ch == '`':
			s.toggleCode()
			s.pos++

		case isSpace(ch):
			s.flushRun()
			s.ws = true
			if s.pos+2 == len(s.line) && isSpace(s.line[s.pos+1]) {
				s.emit(TypeHardBreak, false, "", "")
			}
			s.pos++

		case ch == '!' && s.pos+1 < len(s.line) && s.line[s.pos+1] == '[':
			if s.image() {
				return true
			}

		case ch == '[':
			if s.link() {
				return true
			}

		case ch == '<':
			s.autolink()

		case ch == '*' || ch == '_':
			s.marker(ch)

		case ch == '~' && s.pos+1 < len(s.line) && s.line[s.pos+1] == '~':
			s.tilde()

		case ch == '\\' && s.pos+1 < len(s.line):
			s.run.WriteByte(s.line[s.pos+1])
			s.pos += 2

		default:
			s.run.WriteByte(ch)
			s.pos++
		}
	}

	if s.span != nil {
		s.literalizeSpan()
	}
	s.flushRun()
	return false
}

// emit appends a node under the parent, remembering the first node emitted
// while a span is open so the span can be literalized later.
func (s *inlineScanner) emit(typ NodeType, ws bool, text, url string) *Node {
	node := s.parent.append(typ, ws, text, url)
	if s.span != nil && s.span.marker == nil {
		s.span.marker = node
	}
	return node
}

// flushRun emits the accumulated text, typed by the open span if any.
func (s *inlineScanner) flushRun() {
	if s.run.Len() == 0 {
		return
	}
	typ := TypeNormalText
	if s.span != nil {
		typ = s.span.typ
	}
	s.emit(typ, s.ws, s.run.String(), "")
	s.run.Reset()
	s.ws = false
}

func (s *inlineScanner) openSpan(typ NodeType, delim string) {
	s.flushRun()
	s.span = &openSpan{typ: typ, delim: delim, openWS: s.ws}
}

func (s *inlineScanner) closeSpan() {
	s.flushRun()
	s.span = nil
}

// literalizeSpan abandons an unterminated span: nodes emitted while it was
// open revert to plain text and the opening delimiter is restored in front
// of the span's first fragment.
func (s *inlineScanner) literalizeSpan() {
	span := s.span
	s.span = nil

	if span.marker == nil {
		text := span.delim + s.run.String()
		s.run.Reset()
		s.run.WriteString(text)
		return
	}
	for n := span.marker; n != nil; n = n.nextSib {
		if n.typ == span.typ {
			n.typ = TypeNormalText
		}
	}
	if span.marker.typ == TypeNormalText && span.marker.text != "" {
		span.marker.text = span.delim + span.marker.text
	} else {
		insertBefore(span.marker, TypeNormalText, span.openWS, span.delim, "")
	}
}

// toggleCode opens or closes a code span. A backtick arriving inside an
// emphasis, strong or struck span abandons that span as literal text.
func (s *inlineScanner) toggleCode() {
	switch {
	case s.span == nil:
		s.openSpan(TypeCodeText, "`")
	case s.span.typ == TypeCodeText:
		s.closeSpan()
	default:
		s.literalizeSpan()
		s.openSpan(TypeCodeText, "`")
	}
}

// marker handles * and _. Either character closes an open emphasis or
// strong span; outside a span it opens one unless followed by whitespace.
func (s *inlineScanner) marker(ch byte) {
	if s.span != nil {
		if s.span.typ == TypeEmphasizedText || s.span.typ == TypeStrongText {
			s.closeSpan()
			if s.pos+1 < len(s.line) && s.line[s.pos+1] == ch {
				s.pos++
			}
		} else {
			s.run.WriteByte(ch)
		}
		s.pos++
		return
	}
	if s.pos+1 < len(s.line) && s.line[s.pos+1] == ch && !s.spaceAt(s.pos+2) {
		s.openSpan(TypeStrongText, s.line[s.pos:s.pos+2])
		s.pos += 2
		return
	}
	if !s.spaceAt(s.pos + 1) {
		s.openSpan(TypeEmphasizedText, s.line[s.pos:s.pos+1])
		s.pos++
		return
	}
	s.run.WriteByte(ch)
	s.pos++
}

// tilde handles the ~~ strikethrough marker.
func (s *inlineScanner) tilde() {
	switch {
	case s.span != nil && s.span.typ == TypeStruckText:
		s.closeSpan()
	case s.span == nil && !s.spaceAt(s.pos+2):
		s.openSpan(TypeStruckText, "~~")
	default:
		s.run.WriteString("~~")
	}
	s.pos += 2
}

// image handles the ![alt](url) and ![alt][name] forms at pos. It reports
// true when a reference definition consumed the rest of the line.
func (s *inlineScanner) image() bool {
	lp, ok := parseLinkAt(s.line, s.pos+1)
	if !ok {
		s.run.WriteByte('!')
		s.pos++
		return false
	}
	if lp.def {
		s.refs.define(lp.text, lp.url)
		return true
	}
	s.flushRun()
	if lp.hasURL || lp.refname != "" {
		node := s.emit(TypeImage, s.ws, lp.text, lp.url)
		if lp.refname != "" {
			s.refs.use(node, lp.refname)
		}
	}
	s.ws = false
	s.pos = lp.end
	return false
}

// link handles [text](url), [text][name], bare [text] and the definition
// form [name]: url. Link text wrapped in backticks becomes a code leaf.
func (s *inlineScanner) link() bool {
	lp, ok := parseLinkAt(s.line, s.pos)
	if !ok {
		s.run.WriteByte('[')
		s.pos++
		return false
	}
	if lp.def {
		s.refs.define(lp.text, lp.url)
		return true
	}
	s.flushRun()
	var node *Node
	if strings.HasPrefix(lp.text, "`") {
		text := lp.text[1:]
		if len(text) > 0 && text[len(text)-1] == '`' {
			text = text[:len(text)-1]
		}
		node = s.emit(TypeCodeText, s.ws, text, lp.url)
	} else {
		node = s.emit(TypeLinkedText, s.ws, lp.text, lp.url)
	}
	if lp.refname != "" {
		s.refs.use(node, lp.refname)
	}
	s.ws = false
	s.pos = lp.end
	return false
}

// autolink handles <url>. Without a closing > the < is literal.
func (s *inlineScanner) autolink() {
	idx := strings.IndexByte(s.line[s.pos+1:], '>')
	if idx < 0 {
		s.run.WriteByte('<')
		s.pos++
		return
	}
	s.flushRun()
	url := s.line[s.pos+1 : s.pos+1+idx]
	s.emit(TypeLinkedText, s.ws, url, url)
	s.ws = false
	s.pos += idx + 2
}

func (s *inlineScanner) spaceAt(i int) bool {
	return i < len(s.line) && isSpace(s.line[i])
}

// linkParts is the decomposition of one bracketed construct.
type linkParts struct {
	text    string
	url     string
	hasURL  bool
	refname string
	def     bool
	end     int // index just past the construct
}

// parseLinkAt reads the bracketed construct whose [ sits at pos. Double
// quotes protect ] and ) inside the text, URL and name parts. A construct
// left unterminated at end of line reports false so the caller keeps the
// opening bracket literal. For the bare [text] form the reference name
// defaults to the text itself and trailing whitespace is not consumed.
func parseLinkAt(line string, pos int) (linkParts, bool) {
	i := pos + 1
	textStart := i
	for i < len(line) && line[i] != ']' {
		if line[i] == '"' {
			i++
			for i < len(line) && line[i] != '"' {
				i++
			}
			if i == len(line) {
				return linkParts{}, false
			}
		}
		i++
	}
	if i == len(line) {
		return linkParts{}, false
	}
	text := line[textStart:i]
	i++

	j := i
	for j < len(line) && isSpace(line[j]) {
		j++
	}

	switch {
	case j < len(line) && line[j] == '(':
		j++
		urlStart := j
		urlEnd := -1
		for j < len(line) && line[j] != ')' {
			if isSpace(line[j]) {
				if urlEnd < 0 {
					urlEnd = j
				}
			} else if line[j] == '"' {
				j++
				for j < len(line) && line[j] != '"' {
					j++
				}
				if j == len(line) {
					return linkParts{}, false
				}
			}
			j++
		}
		if j == len(line) {
			return linkParts{}, false
		}
		url := line[urlStart:j]
		if urlEnd >= 0 {
			url = line[urlStart:urlEnd]
		}
		return linkParts{text: text, url: url, hasURL: true, end: j + 1}, true

	case j < len(line) && line[j] == '[':
		j++
		nameStart := j
		nameEnd := -1
		for j < len(line) && line[j] != ']' {
			if isSpace(line[j]) {
				if nameEnd < 0 {
					nameEnd = j
				}
			} else if line[j] == '"' {
				j++
				for j < len(line) && line[j] != '"' {
					j++
				}
				if j == len(line) {
					return linkParts{}, false
				}
			}
			j++
		}
		if j == len(line) {
			return linkParts{}, false
		}
		name := line[nameStart:j]
		if nameEnd >= 0 {
			name = line[nameStart:nameEnd]
		}
		if name == "" {
			name = text
		}
		return linkParts{text: text, refname: name, end: j + 1}, true

	case j < len(line) && line[j] == ':':
		j++
		for j < len(line) && isSpace(line[j]) {
			j++
		}
		urlStart := j
		for j < len(line) && !isSpace(line[j]) {
			j++
		}
		return linkParts{text: text, url: line[urlStart:j], def: true, end: j}, true

	default:
		return linkParts{text: text, refname: text, end: i}, true
	}
}
