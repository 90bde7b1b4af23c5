package cxxast

import (
	"path/filepath"
	"strings"
)

// FileID identifies one parsed source file within a SourceManager.
type FileID int

// SourceLocation is a single point inside a parsed file.
type SourceLocation struct {
	File   FileID
	Line   int // 1-based
	Column int // 1-based
}

// SourceRange is a half-open [Begin, End) span used for the walker's stable
// sort, mirroring clang::SourceRange's role in the original importer.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

// Less orders ranges by begin, then by end — the comparator the
// Translation-Unit Walker uses before falling back to local order.
func (r SourceRange) Less(o SourceRange) bool {
	if r.Begin != o.Begin {
		return r.Begin.less(o.Begin)
	}
	return r.End.less(o.End)
}

func (l SourceLocation) less(o SourceLocation) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

// fileInfo records one parsed file and the single #include that pulled it
// into the current translation unit (empty for entry-point headers).
type fileInfo struct {
	Path        string
	IncludedBy  FileID
	HasIncluder bool
}

// SourceManager tracks every file that contributed declarations to a
// translation unit, plus the include-stack edges between them, so the Owner
// Resolver can walk from a declaration's file back up to an entry header.
type SourceManager struct {
	files []fileInfo
	index map[string]FileID
}

func NewSourceManager() *SourceManager {
	return &SourceManager{index: make(map[string]FileID)}
}

// AddEntryFile registers one of the public headers passed on the command
// line. It has no includer.
func (sm *SourceManager) AddEntryFile(path string) FileID {
	return sm.addFile(path, 0, false)
}

// AddIncludedFile registers a file pulled in via #include from includer.
func (sm *SourceManager) AddIncludedFile(path string, includer FileID) FileID {
	return sm.addFile(path, includer, true)
}

func (sm *SourceManager) addFile(path string, includer FileID, hasIncluder bool) FileID {
	path = normalizePath(path)
	if id, ok := sm.index[path]; ok {
		return id
	}
	id := FileID(len(sm.files))
	sm.files = append(sm.files, fileInfo{Path: path, IncludedBy: includer, HasIncluder: hasIncluder})
	sm.index[path] = id
	return id
}

func (sm *SourceManager) Path(id FileID) string {
	if int(id) < 0 || int(id) >= len(sm.files) {
		return ""
	}
	return sm.files[id].Path
}

// IncludeStack returns the chain of files from id up to (and including) the
// first entry file with no includer, outermost last.
func (sm *SourceManager) IncludeStack(id FileID) []FileID {
	var stack []FileID
	seen := make(map[FileID]bool)
	for {
		if seen[id] {
			break // defensive: malformed cyclic include data, stop rather than loop forever
		}
		seen[id] = true
		stack = append(stack, id)
		info := sm.files[id]
		if !info.HasIncluder {
			break
		}
		id = info.IncludedBy
	}
	return stack
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
