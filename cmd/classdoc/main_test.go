package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/QTest-hq/classdoc/internal/extractor"
	"github.com/QTest-hq/classdoc/internal/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `/** A client. */
export declare class Client<T> extends Base {
	/** Creates a client */
	constructor(url: string);
	/** Request timeout */
	timeout: number;
	get ready(): boolean;
	send(body: T): Promise<void>;
}

declare class Base {
	/** Closes everything */
	close(): void;
	private token: string;
}
`

const testDoc = `# My lib

<!-- START CLASS API: Client -->
<!-- END CLASS API: Client -->

<!-- START CLASS API: Base -->
stale
<!-- END CLASS API: Base -->
`

type fixture struct {
	dir    string
	source string
	doc    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("CLASSDOC_LOG_LEVEL", "error")

	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		source: filepath.Join(dir, "index.d.ts"),
		doc:    filepath.Join(dir, "README.md"),
	}
	require.NoError(t, os.WriteFile(f.source, []byte(testSource), 0644))
	require.NoError(t, os.WriteFile(f.doc, []byte(testDoc), 0644))
	return f
}

func (f fixture) args(cmd string, extra ...string) []string {
	return append([]string{cmd, "-C", f.dir, "-s", f.source, "-d", f.doc}, extra...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUpdateCmd(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, f.args("update")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 section(s)")

	doc := readFile(t, f.doc)
	assert.Contains(t, doc, "<!-- START CLASS API: Client -->\n### Client<T>\nA client.\n#### Constructor\n- `constructor(url: string)`: Creates a client\n")
	assert.Contains(t, doc, "#### Methods\n- `close(): void`: Closes everything\n- `send(body: T): Promise<void>`:\n")
	assert.Contains(t, doc, "#### Accessors\n- `get ready(): boolean`:\n")
	assert.NotContains(t, doc, "stale")
	assert.NotContains(t, doc, "token")
	assert.Contains(t, doc, "# My lib\n")

	// A second run is a no-op on content
	_, err = execute(t, f.args("update")...)
	require.NoError(t, err)
	assert.Equal(t, doc, readFile(t, f.doc))
}

func TestUpdateCmd_SelectedClassWithoutMarkers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.doc, []byte("no markers\n"), 0644))

	out, err := execute(t, f.args("update", "-c", "Client")...)
	require.NoError(t, err)
	assert.Contains(t, out, string(updater.StatusMarkersNotFound))
	assert.Equal(t, "no markers\n", readFile(t, f.doc))
}

func TestUpdateCmd_UnknownClass(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, f.args("update", "-c", "Nope")...)
	require.Error(t, err)
	assert.ErrorIs(t, err, extractor.ErrClassNotFound)
	assert.Equal(t, testDoc, readFile(t, f.doc))
}

func TestCheckCmd(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, f.args("check")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 section(s) out of date")
	assert.Equal(t, testDoc, readFile(t, f.doc))

	_, err = execute(t, f.args("update")...)
	require.NoError(t, err)

	out, err := execute(t, f.args("check")...)
	require.NoError(t, err)
	assert.Contains(t, out, "2 section(s) up to date")
}

func TestInspectCmd(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, f.args("inspect", "Client", "--format", "json")...)
	require.NoError(t, err)

	var desc extractor.ClassDescription
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "Client<T>", desc.Title)
	assert.Contains(t, desc.Methods, "close")
	assert.Equal(t, "number", desc.Properties["timeout"].SecondaryType)

	out, err = execute(t, f.args("inspect", "--all", "--format", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Client<T>")
	assert.Contains(t, out, "title: Base")

	out, err = execute(t, f.args("inspect", "Base")...)
	require.NoError(t, err)
	assert.Contains(t, out, "### Base\n")

	_, err = execute(t, f.args("inspect", "Base", "--format", "xml")...)
	assert.Error(t, err)

	_, err = execute(t, f.args("inspect")...)
	assert.Error(t, err)
}

func TestListCmd(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, f.args("list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Classes: 2")
	assert.Contains(t, out, "1. Client")
	assert.Contains(t, out, "Extends: Base")
	assert.Contains(t, out, "2. Base")
}

func TestInitCmd_ThenUpdateFromConfig(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "init", "-C", f.dir, "-s", "index.d.ts", "-d", "README.md")
	require.NoError(t, err)
	assert.Contains(t, out, ".classdoc.yaml")
	assert.FileExists(t, filepath.Join(f.dir, ".classdoc.yaml"))

	_, err = execute(t, "init", "-C", f.dir)
	assert.Error(t, err)

	// Paths come from the config, relative to the project root
	_, err = execute(t, "update", "-C", f.dir)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, f.doc), "### Client<T>")
}
