// Package extractor builds documentation models for TypeScript classes,
// merging the public members each class inherits from its ancestors.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/QTest-hq/classdoc/internal/parser"
	"github.com/rs/zerolog/log"
)

// ErrClassNotFound is returned when no class with the requested name is declared
var ErrClassNotFound = errors.New("class not found")

// Source provides the parsed class declarations of one source input
type Source interface {
	Classes(ctx context.Context) ([]parser.Class, error)
}

// Extractor resolves class descriptions from a single source.
// The source is loaded at most once; descriptions are memoized in the registry.
type Extractor struct {
	source   Source
	registry *Registry

	mu      sync.Mutex
	loaded  bool
	order   []string
	classes map[string]*parser.Class
}

// New creates an extractor with its own registry
func New(source Source) *Extractor {
	return NewWithRegistry(source, NewRegistry())
}

// NewWithRegistry creates an extractor that memoizes into registry
func NewWithRegistry(source Source, registry *Registry) *Extractor {
	return &Extractor{
		source:   source,
		registry: registry,
	}
}

// Registry returns the registry owned by this extractor
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// ClassDescription returns the description of the named class.
// The returned value is shared with the registry and must not be modified.
func (e *Extractor) ClassDescription(ctx context.Context, name string) (*ClassDescription, error) {
	if desc, ok := e.registry.Get(name); ok {
		return desc, nil
	}

	if err := e.load(ctx); err != nil {
		return nil, err
	}

	class, ok := e.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}

	desc := e.describe(class)

	log.Debug().
		Str("class", name).
		Int("properties", len(desc.Properties)).
		Int("accessors", len(desc.Accessors)).
		Int("methods", len(desc.Methods)).
		Msg("resolved class description")

	return e.registry.Put(name, desc), nil
}

// ClassNames returns the declared class names in source order
func (e *Extractor) ClassNames(ctx context.Context) ([]string, error) {
	if err := e.load(ctx); err != nil {
		return nil, err
	}

	names := make([]string, len(e.order))
	copy(names, e.order)
	return names, nil
}

// load indexes the source classes by name on first use.
// A failed load is not remembered so the next call tries again.
func (e *Extractor) load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loaded {
		return nil
	}

	classes, err := e.source.Classes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load declarations: %w", err)
	}

	e.classes = make(map[string]*parser.Class, len(classes))
	e.order = make([]string, 0, len(classes))
	for i := range classes {
		class := &classes[i]
		// Exact name match, first declaration wins
		if _, dup := e.classes[class.Name]; dup {
			continue
		}
		e.classes[class.Name] = class
		e.order = append(e.order, class.Name)
	}
	e.loaded = true

	log.Debug().Int("classes", len(e.order)).Msg("loaded declarations")

	return nil
}

func (e *Extractor) describe(class *parser.Class) *ClassDescription {
	desc := &ClassDescription{
		Name:        class.Name,
		Title:       classTitle(class),
		Description: class.Doc,
		Properties:  make(map[string]MemberRecord),
		Accessors:   make(map[string]MemberRecord),
		Methods:     make(map[string]MemberRecord),
	}

	if len(class.Constructors) > 0 {
		ctor := class.Constructors[0]
		desc.Constructor = ConstructorSummary{
			Title:       ctor.Signature,
			Description: ctor.Doc,
		}
	}

	visited := make(map[string]bool)
	for current := class; current != nil; {
		// Each class is visited once, which bounds cyclic hierarchies
		if visited[current.Name] {
			log.Warn().Str("class", class.Name).Str("ancestor", current.Name).Msg("inheritance cycle detected")
			break
		}
		visited[current.Name] = true

		collect(desc.Properties, current.Properties)
		collect(desc.Accessors, current.Accessors)
		collect(desc.Methods, current.Methods)

		base := current.BaseName()
		if base == "" {
			break
		}
		next, ok := e.classes[base]
		if !ok {
			log.Debug().Str("class", current.Name).Str("base", base).Msg("base class not declared in source")
			break
		}
		current = next
	}

	return desc
}

// collect adds the public members not already present in dst
func collect(dst map[string]MemberRecord, members []parser.Member) {
	for _, m := range members {
		if !m.Scope.IsPublic() {
			continue
		}
		if _, exists := dst[m.Name]; exists {
			continue
		}
		dst[m.Name] = memberRecord(m)
	}
}

func memberRecord(m parser.Member) MemberRecord {
	typ := m.Type
	if typ == "" {
		typ = UnknownType
	}
	return MemberRecord{
		Title:         m.Signature,
		SecondaryType: typ,
		IsStatic:      m.Static,
		Description:   m.Doc,
	}
}

func classTitle(class *parser.Class) string {
	if len(class.TypeParameters) == 0 {
		return class.Name
	}
	return class.Name + "<" + strings.Join(class.TypeParameters, ", ") + ">"
}
