package structural

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// nameKeywordRe recognizes a name annotation line attached to the block
// that follows it.
var nameKeywordRe = regexp.MustCompile(`(?i)^\s*#\+name:\s+(\S+)\s*$`)

// Markdown is a goldmark-backed Query. Headings carrying an explicit
// {#id} attribute become named "heading" nodes; fenced code blocks
// become nodes typed by the first word of their info string, named by a
// #+name: annotation on the line above the opening fence.
type Markdown struct {
	nodes []Node
}

// ParseMarkdown parses content and collects its typed structural nodes.
// The parse is done once per call; the returned query is immutable.
func ParseMarkdown(content []byte) *Markdown {
	md := goldmark.New(
		goldmark.WithParserOptions(parser.WithHeadingAttribute()),
		goldmark.WithExtensions(extension.Table),
	)
	doc := md.Parser().Parse(text.NewReader(content))

	var nodes []Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			node := Node{Kind: "heading"}
			if id, ok := v.AttributeString("id"); ok {
				if b, ok := id.([]byte); ok {
					node.Name = string(b)
				}
			}
			if lines := v.Lines(); lines.Len() > 0 {
				node.Start = lines.At(0).Start
				node.End = lines.At(lines.Len() - 1).Stop
			}
			nodes = append(nodes, node)
		case *ast.FencedCodeBlock:
			node := fencedNode(v, content)
			if node.Kind != "" {
				nodes = append(nodes, node)
			}
		}
		return ast.WalkContinue, nil
	})
	return &Markdown{nodes: nodes}
}

// fencedNode builds a node for a fenced code block. The block's kind is
// the language word of its info string; anonymous fences without one
// carry no type information and are skipped by the caller.
func fencedNode(v *ast.FencedCodeBlock, content []byte) Node {
	var node Node
	if v.Info != nil {
		info := string(v.Info.Segment.Value(content))
		if fields := strings.Fields(info); len(fields) > 0 {
			node.Kind = fields[0]
		}
		node.Start = lineStartBefore(content, v.Info.Segment.Start)
	}
	if lines := v.Lines(); lines.Len() > 0 {
		if node.Start == 0 && v.Info == nil {
			node.Start = lineStartBefore(content, lines.At(0).Start)
		}
		node.End = lines.At(lines.Len() - 1).Stop
	} else if v.Info != nil {
		node.End = v.Info.Segment.Stop
	}
	node.Name = precedingName(content, node.Start)
	return node
}

// precedingName returns the identifier from a #+name: annotation on the
// line immediately above offset, if there is one.
func precedingName(content []byte, offset int) string {
	lineStart := lineStartBefore(content, offset)
	if lineStart == 0 {
		return ""
	}
	prevStart := lineStartBefore(content, lineStart-1)
	prevLine := string(content[prevStart : lineStart-1])
	if m := nameKeywordRe.FindStringSubmatch(prevLine); m != nil {
		return m[1]
	}
	return ""
}

// lineStartBefore returns the offset of the start of the line containing
// offset.
func lineStartBefore(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	for i := offset - 1; i >= 0; i-- {
		if content[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// Nodes returns all typed nodes in document order.
func (m *Markdown) Nodes() []Node {
	out := make([]Node, len(m.nodes))
	copy(out, m.nodes)
	return out
}

// NamedNode returns the kind of the node named name, compared
// case-insensitively.
func (m *Markdown) NamedNode(name string) (string, bool) {
	for _, n := range m.nodes {
		if n.Name != "" && strings.EqualFold(n.Name, name) {
			return n.Kind, true
		}
	}
	return "", false
}

// NodeAt returns the innermost (smallest) node containing offset.
func (m *Markdown) NodeAt(offset int) (Node, bool) {
	var best Node
	found := false
	for _, n := range m.nodes {
		if offset < n.Start || offset >= n.End {
			continue
		}
		if !found || n.End-n.Start < best.End-best.Start {
			best = n
			found = true
		}
	}
	return best, found
}
