package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser parses TypeScript declaration files using tree-sitter.
// A Parser is not safe for concurrent use.
type Parser struct {
	tsParser  *sitter.Parser
	tsxParser *sitter.Parser
}

// NewParser creates a new parser with TypeScript and TSX support
func NewParser() *Parser {
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())

	tsxParser := sitter.NewParser()
	tsxParser.SetLanguage(tsx.GetLanguage())

	return &Parser{
		tsParser:  tsParser,
		tsxParser: tsxParser,
	}
}

// ParseFile parses a single file
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*Declarations, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	dialect := DetectDialect(filePath)
	if dialect == DialectUnknown {
		return nil, fmt.Errorf("unsupported source file: %s", filePath)
	}

	return p.ParseContent(ctx, filePath, content, dialect)
}

// ParseContent parses source code content
func (p *Parser) ParseContent(ctx context.Context, filePath string, content []byte, dialect Dialect) (*Declarations, error) {
	var parser *sitter.Parser
	switch dialect {
	case DialectTypeScript:
		parser = p.tsParser
	case DialectTSX:
		parser = p.tsxParser
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	decls := &Declarations{
		Path:    filePath,
		Dialect: dialect,
		Classes: make([]Class, 0),
	}

	cursor := sitter.NewTreeCursor(tree.RootNode())
	defer cursor.Close()

	walkTree(cursor, func(n *sitter.Node) {
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration":
			if class := parseClass(n, content); class != nil {
				decls.Classes = append(decls.Classes, *class)
			}
		}
	})

	return decls, nil
}

func parseClass(node *sitter.Node, source []byte) *Class {
	class := &Class{
		StartLine:      int(node.StartPoint().Row) + 1,
		EndLine:        int(node.EndPoint().Row) + 1,
		TypeParameters: make([]string, 0),
		Doc:            leadingDoc(node, source),
		Abstract:       node.Type() == "abstract_class_declaration",
	}

	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier", "identifier":
			if class.Name == "" {
				class.Name = child.Content(source)
			}
		case "type_parameters":
			class.TypeParameters = parseTypeParameters(child, source)
		case "class_heritage":
			class.Extends, class.Implements = parseHeritage(child, source)
		case "class_body":
			body = child
		}
	}

	if class.Name == "" {
		return nil
	}

	if body != nil {
		parseClassBody(body, source, class)
	}

	return class
}

func parseTypeParameters(node *sitter.Node, source []byte) []string {
	params := make([]string, 0)

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "type_parameter" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			params = append(params, name.Content(source))
		} else {
			params = append(params, child.Content(source))
		}
	}

	return params
}

func parseHeritage(node *sitter.Node, source []byte) (extends string, implements []string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "extends_clause":
			extends = strings.TrimSpace(strings.TrimPrefix(child.Content(source), "extends"))
		case "implements_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				implements = append(implements, child.NamedChild(j).Content(source))
			}
		}
	}
	return extends, implements
}

func parseClassBody(body *sitter.Node, source []byte, class *Class) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "method_definition", "method_signature", "abstract_method_signature":
			m := parseMember(child, source)
			if m == nil {
				continue
			}
			switch m.Kind {
			case KindConstructor:
				class.Constructors = append(class.Constructors, *m)
			case KindGetAccessor:
				class.Accessors = append(class.Accessors, *m)
			case KindMethod:
				class.Methods = append(class.Methods, *m)
			}
		case "public_field_definition":
			if m := parseMember(child, source); m != nil {
				m.Kind = KindProperty
				class.Properties = append(class.Properties, *m)
			}
		}
	}
}

// parseMember reads the modifiers, name and type text shared by fields and methods
func parseMember(node *sitter.Node, source []byte) *Member {
	m := &Member{
		Kind: KindMethod,
		Doc:  leadingDoc(node, source),
		Line: int(node.StartPoint().Row) + 1,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "accessibility_modifier":
			m.Scope = Scope(child.Content(source))
		case "static":
			if !child.IsNamed() {
				m.Static = true
			}
		case "get":
			if !child.IsNamed() {
				m.Kind = KindGetAccessor
			}
		case "set":
			if !child.IsNamed() {
				m.Kind = KindSetAccessor
			}
		case "type_annotation":
			m.Type = typeText(child, source)
		}
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	m.Name = nameNode.Content(source)
	if nameNode.Type() == "private_property_identifier" {
		m.Scope = ScopePrivate
	}
	if m.Kind == KindMethod && m.Name == "constructor" {
		m.Kind = KindConstructor
	}

	if m.Type == "" {
		if rt := node.ChildByFieldName("return_type"); rt != nil {
			m.Type = typeText(rt, source)
		} else if t := node.ChildByFieldName("type"); t != nil {
			m.Type = typeText(t, source)
		}
	}

	m.Signature = signature(node, source)

	return m
}

// typeText strips the leading colon of a type annotation
func typeText(node *sitter.Node, source []byte) string {
	return strings.TrimSpace(strings.TrimPrefix(node.Content(source), ":"))
}

// signature returns the member declaration text without decorators or body,
// collapsed onto a single line
func signature(node *sitter.Node, source []byte) string {
	start := node.StartByte()
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "decorator" {
			start = child.StartByte()
			break
		}
	}

	end := node.EndByte()
	if body := node.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}

	text := string(source[start:end])
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimRight(text, ";, ")
}

// leadingDoc returns the description of the first JSDoc block directly above node.
// Decorators between the comment and the node are skipped, and for exported or
// ambient declarations the wrapping statement's comments are used.
func leadingDoc(node *sitter.Node, source []byte) *string {
	for n := node; n != nil; n = n.Parent() {
		var first *sitter.Node
		prev := n.PrevSibling()
		for prev != nil && prev.Type() == "decorator" {
			prev = prev.PrevSibling()
		}
		for prev != nil && prev.Type() == "comment" {
			if strings.HasPrefix(prev.Content(source), "/**") {
				first = prev
			}
			prev = prev.PrevSibling()
		}
		if first != nil {
			doc := cleanJSDoc(first.Content(source))
			return &doc
		}

		parent := n.Parent()
		if parent == nil {
			return nil
		}
		switch parent.Type() {
		case "export_statement", "ambient_declaration":
		default:
			return nil
		}
	}
	return nil
}

// cleanJSDoc extracts the free-text description from a JSDoc block,
// dropping the comment delimiters and everything from the first block tag on.
func cleanJSDoc(raw string) string {
	body := strings.TrimPrefix(raw, "/**")
	body = strings.TrimSuffix(body, "*/")

	lines := make([]string, 0)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			break
		}
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// walkTree visits every node below the cursor in document order
func walkTree(cursor *sitter.TreeCursor, fn func(*sitter.Node)) {
	for {
		fn(cursor.CurrentNode())

		if cursor.GoToFirstChild() {
			continue
		}

		for {
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return
			}
		}
	}
}

// DetectDialect detects the grammar from the file extension
func DetectDialect(path string) Dialect {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	case ".tsx":
		return DialectTSX
	default:
		return DialectUnknown
	}
}
