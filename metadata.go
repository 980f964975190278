package mmd

import (
	"fmt"
	"strings"

	"github.com/brvtalcake/mmd/internal/yamlutil"
)

// Metadata looks up keyword in the document's leading metadata block and
// returns its value with surrounding whitespace trimmed. The second result
// is false when the document has no metadata block or the keyword is
// absent.
func Metadata(doc *Node, keyword string) (string, bool) {
	meta := doc.FirstChild()
	if meta.Type() != TypeMetadata {
		return "", false
	}
	prefix := keyword + ":"
	for cur := meta.FirstChild(); cur != nil; cur = cur.NextSibling() {
		if !strings.HasPrefix(cur.Text(), prefix) {
			continue
		}
		value := cur.Text()[len(prefix):]
		for len(value) > 0 && isSpace(value[0]) {
			value = value[1:]
		}
		return value, true
	}
	return "", false
}

// DecodeMetadata unmarshals the document's metadata block into dst as
// YAML. An empty metadata block leaves dst untouched; a document without
// a metadata block fails with ErrNoMetadata.
func DecodeMetadata(doc *Node, dst any) error {
	meta := doc.FirstChild()
	if meta.Type() != TypeMetadata {
		return ErrNoMetadata
	}
	var sb strings.Builder
	for cur := meta.FirstChild(); cur != nil; cur = cur.NextSibling() {
		sb.WriteString(cur.Text())
		sb.WriteByte('\n')
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil
	}
	if err := yamlutil.Unmarshal([]byte(sb.String()), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataDecode, err)
	}
	return nil
}
