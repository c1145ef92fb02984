// Package inidoc edits INI files in place. Every raw line of the source file
// is preserved; only the value portion of a known key=value line is ever
// rewritten. Comments, blank lines and unrecognized lines survive a
// load/save round trip byte for byte.
package inidoc

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	sectionRe = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)
	keyValRe  = regexp.MustCompile(`^(\s*)([^=;\r\n]+?)\s*=\s*(.*?)(\s*)$`)
)

type valueRef struct {
	section   string
	key       string
	value     string
	lineIndex int
	prefix    string
	suffix    string
}

// Document is a loaded INI file. One key per line is assumed; when a key is
// duplicated within a section the last occurrence wins and is the one
// edited.
type Document struct {
	path         string
	lines        []string
	refs         map[[2]string]*valueRef
	sectionOrder []string
}

// Load reads and indexes the INI file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ini file: %w", err)
	}

	doc := &Document{
		path: path,
		refs: make(map[[2]string]*valueRef),
	}
	doc.lines = splitKeepingNewlines(string(data))

	currentSection := ""
	seenSections := make(map[string]bool)

	for idx, raw := range doc.lines {
		if m := sectionRe.FindStringSubmatch(raw); m != nil {
			currentSection = strings.TrimSpace(m[1])
			if !seenSections[currentSection] {
				doc.sectionOrder = append(doc.sectionOrder, currentSection)
				seenSections[currentSection] = true
			}
			continue
		}

		m := keyValRe.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
		if m == nil {
			continue
		}

		key := strings.TrimSpace(m[2])
		doc.refs[refKey(currentSection, key)] = &valueRef{
			section:   currentSection,
			key:       key,
			value:     m[3],
			lineIndex: idx,
			prefix:    m[1],
			suffix:    m[4],
		}
	}

	return doc, nil
}

func refKey(section, key string) [2]string {
	return [2]string{strings.TrimSpace(section), strings.TrimSpace(key)}
}

// Sections returns the section names in file order.
func (d *Document) Sections() []string {
	out := make([]string, len(d.sectionOrder))
	copy(out, d.sectionOrder)
	return out
}

// Get returns the value for section/key and whether it exists.
func (d *Document) Get(section, key string) (string, bool) {
	ref, ok := d.refs[refKey(section, key)]
	if !ok {
		return "", false
	}
	return ref.value, true
}

// Set rewrites an existing key's line in place, or appends the key at the
// end of its section (at end of file when the section is missing).
func (d *Document) Set(section, key, value string) {
	k := refKey(section, key)
	if ref, ok := d.refs[k]; ok {
		ref.value = value
		newline := ""
		if strings.HasSuffix(d.lines[ref.lineIndex], "\n") {
			newline = "\n"
		}
		d.lines[ref.lineIndex] = fmt.Sprintf("%s%s=%s%s%s", ref.prefix, ref.key, value, ref.suffix, newline)
		return
	}

	insertAt := len(d.lines)
	if idx, ok := d.sectionLineIndex(k[0]); ok {
		insertAt = d.sectionEndIndex(idx + 1)
	}

	line := fmt.Sprintf("%s=%s\n", k[1], value)
	d.lines = append(d.lines[:insertAt], append([]string{line}, d.lines[insertAt:]...)...)
	for _, ref := range d.refs {
		if ref.lineIndex >= insertAt {
			ref.lineIndex++
		}
	}
	d.refs[k] = &valueRef{section: k[0], key: k[1], value: value, lineIndex: insertAt}

	if k[0] != "" && !contains(d.sectionOrder, k[0]) {
		d.sectionOrder = append(d.sectionOrder, k[0])
	}
}

// VisitValues calls fn for every key=value line in file order and rewrites
// the line whenever fn returns a different value. Returns the number of
// lines changed.
func (d *Document) VisitValues(fn func(section, key, value string) string) int {
	changed := 0
	for idx, raw := range d.lines {
		ref := d.refAtLine(idx)
		if ref == nil {
			continue
		}
		next := fn(ref.section, ref.key, ref.value)
		if next == ref.value {
			continue
		}
		ref.value = next
		newline := ""
		if strings.HasSuffix(raw, "\n") {
			newline = "\n"
		}
		d.lines[idx] = fmt.Sprintf("%s%s=%s%s%s", ref.prefix, ref.key, next, ref.suffix, newline)
		changed++
	}
	return changed
}

// Save writes the document back to its source path.
func (d *Document) Save() error {
	return d.SaveTo(d.path)
}

// SaveTo writes the document to path.
func (d *Document) SaveTo(path string) error {
	if err := os.WriteFile(path, []byte(strings.Join(d.lines, "")), 0644); err != nil {
		return fmt.Errorf("failed to write ini file: %w", err)
	}
	return nil
}

func (d *Document) refAtLine(idx int) *valueRef {
	for _, ref := range d.refs {
		if ref.lineIndex == idx {
			return ref
		}
	}
	return nil
}

func (d *Document) sectionLineIndex(section string) (int, bool) {
	for idx, raw := range d.lines {
		if m := sectionRe.FindStringSubmatch(raw); m != nil && strings.TrimSpace(m[1]) == section {
			return idx, true
		}
	}
	return 0, false
}

// sectionEndIndex returns the index just past the last non-blank line of the
// section starting at from.
func (d *Document) sectionEndIndex(from int) int {
	end := from
	for idx := from; idx < len(d.lines); idx++ {
		if sectionRe.MatchString(d.lines[idx]) {
			break
		}
		if strings.TrimSpace(d.lines[idx]) != "" {
			end = idx + 1
		}
	}
	return end
}

func splitKeepingNewlines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:idx+1])
		s = s[idx+1:]
		if s == "" {
			break
		}
	}
	return lines
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
