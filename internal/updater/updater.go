// Package updater splices rendered class documentation into Markdown documents
// between START/END CLASS API marker comments.
package updater

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/QTest-hq/classdoc/internal/extractor"
	"github.com/QTest-hq/classdoc/internal/render"
	"github.com/rs/zerolog/log"
)

// Status is the result of processing one class section
type Status string

const (
	StatusUpdated         Status = "updated"
	StatusMarkersNotFound Status = "markers_not_found"
	StatusCurrent         Status = "current"
	StatusStale           Status = "stale"
)

// Outcome reports what happened to one class section of a document
type Outcome struct {
	Class  string
	Path   string
	Status Status
}

// OK reports whether the section was found (and, for checks, is current)
func (o Outcome) OK() bool {
	return o.Status == StatusUpdated || o.Status == StatusCurrent
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s (%s): %s", o.Class, o.Path, o.Status)
}

// ClassDescriber resolves class descriptions by name
type ClassDescriber interface {
	ClassDescription(ctx context.Context, name string) (*extractor.ClassDescription, error)
}

// Updater rewrites class sections of documents.
// Calls targeting the same document must not run concurrently: each call
// reads the current file and writes it back whole.
type Updater struct {
	classes ClassDescriber
}

// New creates an updater that pulls descriptions from classes
func New(classes ClassDescriber) *Updater {
	return &Updater{classes: classes}
}

// StartMarker returns the comment opening the section of className
func StartMarker(className string) string {
	return "<!-- START CLASS API: " + className + " -->"
}

// EndMarker returns the comment closing the section of className
func EndMarker(className string) string {
	return "<!-- END CLASS API: " + className + " -->"
}

// Splice replaces the text between the first start marker of className and the
// first end marker after it with a newline followed by fragment.
// It reports false, and returns doc unchanged, when either marker is missing.
func Splice(doc, className, fragment string) (string, bool) {
	start := StartMarker(className)
	end := EndMarker(className)

	startIdx := strings.Index(doc, start)
	if startIdx < 0 {
		return doc, false
	}
	contentStart := startIdx + len(start)

	endOffset := strings.Index(doc[contentStart:], end)
	if endOffset < 0 {
		return doc, false
	}
	contentEnd := contentStart + endOffset

	return doc[:contentStart] + "\n" + fragment + doc[contentEnd:], true
}

var startMarkerPattern = regexp.MustCompile(`<!-- START CLASS API: (.+?) -->`)

// DiscoverClasses returns the class names of all complete marker pairs in doc,
// in the order their start markers appear
func DiscoverClasses(doc string) []string {
	names := make([]string, 0)
	seen := make(map[string]bool)

	for _, m := range startMarkerPattern.FindAllStringSubmatch(doc, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := Splice(doc, name, ""); ok {
			names = append(names, name)
		}
	}

	return names
}

// UpdateClassSection renders className and writes it between its markers in the
// document at path. The class is resolved before the document is read, so an
// unknown class leaves the document untouched.
func (u *Updater) UpdateClassSection(ctx context.Context, path, className string) (Outcome, error) {
	outcome := Outcome{Class: className, Path: path}

	sec, err := u.prepare(ctx, path, className)
	if err != nil {
		return outcome, err
	}
	if !sec.found {
		outcome.Status = StatusMarkersNotFound
		log.Warn().Str("class", className).Str("document", path).Msg("markers not found")
		return outcome, nil
	}

	if err := os.WriteFile(path, []byte(sec.updated), sec.mode); err != nil {
		return outcome, fmt.Errorf("failed to write document: %w", err)
	}

	outcome.Status = StatusUpdated
	log.Info().Str("class", className).Str("document", path).Msg("updated class section")
	return outcome, nil
}

// Check reports whether the class section in the document at path matches what
// UpdateClassSection would write, without modifying the file
func (u *Updater) Check(ctx context.Context, path, className string) (Outcome, error) {
	outcome := Outcome{Class: className, Path: path}

	sec, err := u.prepare(ctx, path, className)
	if err != nil {
		return outcome, err
	}

	switch {
	case !sec.found:
		outcome.Status = StatusMarkersNotFound
	case sec.updated != sec.original:
		outcome.Status = StatusStale
	default:
		outcome.Status = StatusCurrent
	}

	log.Debug().
		Str("class", className).
		Str("document", path).
		Str("status", string(outcome.Status)).
		Msg("checked class section")
	return outcome, nil
}

// section is a document read once, with the class section re-rendered in memory
type section struct {
	original string
	updated  string
	found    bool
	mode     os.FileMode
}

func (u *Updater) prepare(ctx context.Context, path, className string) (*section, error) {
	desc, err := u.classes.ClassDescription(ctx, className)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	sec := &section{
		original: string(data),
		mode:     info.Mode().Perm(),
	}
	sec.updated, sec.found = Splice(sec.original, className, render.Class(desc))
	return sec, nil
}

// UpdateDocument updates each class section of the document in turn.
// With no class names, the classes are discovered from the document's markers.
// Missing markers are reported in the outcomes; any error stops the batch.
func (u *Updater) UpdateDocument(ctx context.Context, path string, classNames []string) ([]Outcome, error) {
	return u.each(ctx, path, classNames, u.UpdateClassSection)
}

// CheckDocument checks each class section of the document in turn
func (u *Updater) CheckDocument(ctx context.Context, path string, classNames []string) ([]Outcome, error) {
	return u.each(ctx, path, classNames, u.Check)
}

func (u *Updater) each(ctx context.Context, path string, classNames []string, fn func(context.Context, string, string) (Outcome, error)) ([]Outcome, error) {
	if len(classNames) == 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		classNames = DiscoverClasses(string(data))
		log.Debug().Str("document", path).Strs("classes", classNames).Msg("discovered class sections")
	}

	outcomes := make([]Outcome, 0, len(classNames))
	for _, name := range classNames {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcome, err := fn(ctx, path, name)
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
