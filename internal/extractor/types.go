package extractor

// UnknownType is recorded when a member has no declared type text
const UnknownType = "unknown"

// MemberRecord is the documentation entry for one public property, accessor or method
type MemberRecord struct {
	Title         string  `json:"title" yaml:"title"`
	SecondaryType string  `json:"secondary_type" yaml:"secondary_type"`
	IsStatic      bool    `json:"is_static" yaml:"is_static"`
	Description   *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ConstructorSummary describes the first declared constructor.
// Both fields are empty when the class declares no constructor.
type ConstructorSummary struct {
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ClassDescription is the extracted documentation model for one class,
// including public members inherited from its ancestors.
type ClassDescription struct {
	Name        string                  `json:"name" yaml:"name"`
	Title       string                  `json:"title" yaml:"title"`
	Description *string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Constructor ConstructorSummary      `json:"constructor" yaml:"constructor"`
	Properties  map[string]MemberRecord `json:"properties" yaml:"properties"`
	Accessors   map[string]MemberRecord `json:"accessors" yaml:"accessors"`
	Methods     map[string]MemberRecord `json:"methods" yaml:"methods"`
}
