package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	p := NewParser()
	assert.NotNil(t, p)
	assert.NotNil(t, p.tsParser)
	assert.NotNil(t, p.tsxParser)
}

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		path     string
		expected Dialect
	}{
		{"index.ts", DialectTypeScript},
		{"index.d.ts", DialectTypeScript},
		{"mod.mts", DialectTypeScript},
		{"component.tsx", DialectTSX},
		{"/path/to/FILE.TS", DialectTypeScript}, // Case insensitive
		{"index.js", DialectUnknown},
		{"README.md", DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDialect(tt.path))
		})
	}
}

func parse(t *testing.T, content string) *Declarations {
	t.Helper()
	decls, err := NewParser().ParseContent(context.Background(), "test.ts", []byte(content), DialectTypeScript)
	require.NoError(t, err)
	return decls
}

func TestParser_ParseContent_ClassWithTypeParameters(t *testing.T) {
	decls := parse(t, `class Foo<T, U extends string = "a"> {
	/** c */
	constructor(){}
	/** p */
	x: T;
}
`)
	require.Len(t, decls.Classes, 1)

	class := decls.Classes[0]
	assert.Equal(t, "Foo", class.Name)
	assert.Equal(t, []string{"T", "U"}, class.TypeParameters)
	assert.Nil(t, class.Doc)
	assert.Empty(t, class.Extends)

	require.Len(t, class.Constructors, 1)
	assert.Equal(t, "constructor()", class.Constructors[0].Signature)
	require.NotNil(t, class.Constructors[0].Doc)
	assert.Equal(t, "c", *class.Constructors[0].Doc)

	require.Len(t, class.Properties, 1)
	prop := class.Properties[0]
	assert.Equal(t, "x", prop.Name)
	assert.Equal(t, "x: T", prop.Signature)
	assert.Equal(t, "T", prop.Type)
	assert.Equal(t, ScopeUnspecified, prop.Scope)
	require.NotNil(t, prop.Doc)
	assert.Equal(t, "p", *prop.Doc)
}

func TestParser_ParseContent_Members(t *testing.T) {
	decls := parse(t, `export declare class Store<K> extends Base<K> implements Disposable {
	static readonly version: string;
	private secret: number;
	protected hook(): void;
	/**
	 * Number of entries.
	 * @returns the size
	 */
	get size(): number;
	set size(v: number);
	public fetch(key: K): string | undefined;
	#hidden: boolean;
}
`)
	require.Len(t, decls.Classes, 1)
	class := decls.Classes[0]

	assert.Equal(t, "Store", class.Name)
	assert.Equal(t, "Base<K>", class.Extends)
	assert.Equal(t, "Base", class.BaseName())
	assert.Equal(t, []string{"Disposable"}, class.Implements)
	assert.Empty(t, class.Constructors)

	require.Len(t, class.Properties, 3)
	assert.Equal(t, "version", class.Properties[0].Name)
	assert.True(t, class.Properties[0].Static)
	assert.Equal(t, "string", class.Properties[0].Type)
	assert.Equal(t, ScopePrivate, class.Properties[1].Scope)
	assert.Equal(t, "#hidden", class.Properties[2].Name)
	assert.Equal(t, ScopePrivate, class.Properties[2].Scope)

	require.Len(t, class.Accessors, 1)
	acc := class.Accessors[0]
	assert.Equal(t, "size", acc.Name)
	assert.Equal(t, "number", acc.Type)
	assert.Equal(t, "get size(): number", acc.Signature)
	require.NotNil(t, acc.Doc)
	assert.Equal(t, "Number of entries.", *acc.Doc)

	require.Len(t, class.Methods, 2)
	assert.Equal(t, "hook", class.Methods[0].Name)
	assert.Equal(t, ScopeProtected, class.Methods[0].Scope)
	assert.Equal(t, "fetch", class.Methods[1].Name)
	assert.Equal(t, KindMethod, class.Methods[1].Kind)
	assert.Equal(t, ScopePublic, class.Methods[1].Scope)
	assert.Equal(t, "string | undefined", class.Methods[1].Type)
}

func TestParser_ParseContent_ClassDocThroughExport(t *testing.T) {
	decls := parse(t, `/** Not this one */
const x = 1;

/** First block */
/** Second block */
export class Widget {
	render() {
		return 1;
	}
}
`)
	require.Len(t, decls.Classes, 1)
	class := decls.Classes[0]
	require.NotNil(t, class.Doc)
	assert.Equal(t, "First block", *class.Doc)

	require.Len(t, class.Methods, 1)
	assert.Equal(t, "render()", class.Methods[0].Signature)
	assert.Empty(t, class.Methods[0].Type)
	assert.Nil(t, class.Methods[0].Doc)
}

func TestParser_ParseContent_EmptyDocIsPresent(t *testing.T) {
	decls := parse(t, `class A {
	/** */
	a: string;
}
`)
	require.Len(t, decls.Classes, 1)
	require.Len(t, decls.Classes[0].Properties, 1)
	doc := decls.Classes[0].Properties[0].Doc
	require.NotNil(t, doc)
	assert.Equal(t, "", *doc)
}

func TestParser_ParseContent_UnsupportedDialect(t *testing.T) {
	_, err := NewParser().ParseContent(context.Background(), "x.js", []byte("class A {}"), DialectUnknown)
	assert.Error(t, err)
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.d.ts")
	require.NoError(t, os.WriteFile(path, []byte("declare class A {}\ndeclare class B extends A {}\n"), 0644))

	decls, err := NewParser().ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, decls.Classes, 2)
	assert.Equal(t, "A", decls.Classes[0].Name)
	assert.Equal(t, "B", decls.Classes[1].Name)
	assert.Equal(t, "A", decls.Classes[1].BaseName())

	_, err = NewParser().ParseFile(context.Background(), filepath.Join(dir, "missing.ts"))
	assert.Error(t, err)
}

func TestCleanJSDoc(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single line", "/** hello */", "hello"},
		{"empty", "/** */", ""},
		{"multi line", "/**\n * First.\n * Second.\n */", "First.\nSecond."},
		{"stops at tag", "/**\n * Text.\n * @param a thing\n */", "Text."},
		{"only tags", "/** @deprecated */", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSDoc(tt.raw))
		})
	}
}

func TestScope_IsPublic(t *testing.T) {
	assert.True(t, ScopeUnspecified.IsPublic())
	assert.True(t, ScopePublic.IsPublic())
	assert.False(t, ScopeProtected.IsPublic())
	assert.False(t, ScopePrivate.IsPublic())
}
