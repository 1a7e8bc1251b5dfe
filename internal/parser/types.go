package parser

// Dialect selects the tree-sitter grammar used for a file
type Dialect string

const (
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
	DialectUnknown    Dialect = "unknown"
)

// Scope is the declared accessibility of a class member
type Scope string

const (
	ScopeUnspecified Scope = ""
	ScopePublic      Scope = "public"
	ScopeProtected   Scope = "protected"
	ScopePrivate     Scope = "private"
)

// IsPublic reports whether a member with this scope is part of the public API
func (s Scope) IsPublic() bool {
	return s == ScopePublic || s == ScopeUnspecified
}

// MemberKind distinguishes the class body entries the extractor cares about
type MemberKind string

const (
	KindConstructor MemberKind = "constructor"
	KindProperty    MemberKind = "property"
	KindGetAccessor MemberKind = "get_accessor"
	KindSetAccessor MemberKind = "set_accessor"
	KindMethod      MemberKind = "method"
)

// Declarations is the parsed form of one declaration file
type Declarations struct {
	Path    string
	Dialect Dialect
	Classes []Class
}

// Class represents a parsed class declaration
type Class struct {
	Name           string
	StartLine      int
	EndLine        int
	TypeParameters []string
	Extends        string  // Base class reference as written, e.g. "Base<T>"
	Implements     []string
	Doc            *string // First leading JSDoc description, nil when there is none
	Abstract       bool
	Constructors   []Member
	Properties     []Member
	Accessors      []Member // Get accessors only
	Methods        []Member
}

// Member represents a constructor, property, accessor or method of a class
type Member struct {
	Name      string
	Kind      MemberKind
	Signature string // Declaration text up to the body, on one line
	Type      string // Declared type for properties, return type otherwise
	Scope     Scope
	Static    bool
	Doc       *string
	Line      int
}

// BaseName returns the base class name without generic arguments
func (c *Class) BaseName() string {
	name := c.Extends
	for i, r := range name {
		if r == '<' || r == '(' || r == ' ' {
			return name[:i]
		}
	}
	return name
}
