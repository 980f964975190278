package mmd

// NodeType identifies the kind of a document tree node. Block types order
// before inline types, so whether a type is structural is an ordinal test.
type NodeType int

// Node types. TypeDocument through the table cell types are blocks;
// TypeNormalText and later are inline leaves.
const (
	TypeNone NodeType = iota - 1
	TypeDocument
	TypeMetadata
	TypeBlockQuote
	TypeOrderedList
	TypeUnorderedList
	TypeListItem
	TypeTable
	TypeTableHeader
	TypeTableBody
	TypeTableRow
	TypeHeading1
	TypeHeading2
	TypeHeading3
	TypeHeading4
	TypeHeading5
	TypeHeading6
	TypeParagraph
	TypeCodeBlock
	TypeThematicBreak
	TypeTableHeaderCell
	TypeTableBodyCellLeft
	TypeTableBodyCellCenter
	TypeTableBodyCellRight
	TypeNormalText
	TypeEmphasizedText
	TypeStrongText
	TypeStruckText
	TypeLinkedText
	TypeCodeText
	TypeImage
	TypeHardBreak
	TypeSoftBreak
	TypeMetadataText
)

var typeNames = [...]string{
	"none",
	"document",
	"metadata",
	"block-quote",
	"ordered-list",
	"unordered-list",
	"list-item",
	"table",
	"table-header",
	"table-body",
	"table-row",
	"heading-1",
	"heading-2",
	"heading-3",
	"heading-4",
	"heading-5",
	"heading-6",
	"paragraph",
	"code-block",
	"thematic-break",
	"table-header-cell",
	"table-body-cell-left",
	"table-body-cell-center",
	"table-body-cell-right",
	"normal-text",
	"emphasized-text",
	"strong-text",
	"struck-text",
	"linked-text",
	"code-text",
	"image",
	"hard-break",
	"soft-break",
	"metadata-text",
}

// String returns a short name for the node type.
func (t NodeType) String() string {
	i := int(t) + 1
	if i < 0 || i >= len(typeNames) {
		return "unknown"
	}
	return typeNames[i]
}

// IsBlock reports whether t is a structural block type.
func (t NodeType) IsBlock() bool {
	return t >= TypeDocument && t < TypeNormalText
}

// HeadingLevel returns the level 1 through 6 for heading types, 0 otherwise.
func (t NodeType) HeadingLevel() int {
	if t < TypeHeading1 || t > TypeHeading6 {
		return 0
	}
	return int(t-TypeHeading1) + 1
}
