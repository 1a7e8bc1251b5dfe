package parser

import (
	"context"
)

// FileSource parses a declaration file from disk each time its classes are requested.
// Callers that need caching wrap it (the extractor loads a source at most once).
type FileSource struct {
	Path   string
	parser *Parser
}

// NewFileSource creates a source backed by the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, parser: NewParser()}
}

// Classes parses the file and returns its class declarations
func (s *FileSource) Classes(ctx context.Context) ([]Class, error) {
	decls, err := s.parser.ParseFile(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	return decls.Classes, nil
}

// ContentSource parses in-memory source text
type ContentSource struct {
	Path    string
	Content []byte
	Dialect Dialect
	parser  *Parser
}

// NewContentSource creates a source from text; the dialect is detected from path
func NewContentSource(path string, content []byte) *ContentSource {
	dialect := DetectDialect(path)
	if dialect == DialectUnknown {
		dialect = DialectTypeScript
	}
	return &ContentSource{Path: path, Content: content, Dialect: dialect, parser: NewParser()}
}

// Classes parses the content and returns its class declarations
func (s *ContentSource) Classes(ctx context.Context) ([]Class, error) {
	decls, err := s.parser.ParseContent(ctx, s.Path, s.Content, s.Dialect)
	if err != nil {
		return nil, err
	}
	return decls.Classes, nil
}
