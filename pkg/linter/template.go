package linter

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ProjectFolderKey is the placeholder replaced by the project folder.
const ProjectFolderKey = "project_folder"

// placeholderRE matches "$$" with the name it escapes, "${name}",
// "$name" and bare identifiers.
var placeholderRE = regexp.MustCompile(
	`\$\$(?:\{[_A-Za-z][_A-Za-z0-9]*\}|[_A-Za-z][_A-Za-z0-9]*)?|\$\{([_A-Za-z][_A-Za-z0-9]*)\}|\$([_A-Za-z][_A-Za-z0-9]*)|\b([_A-Za-z][_A-Za-z0-9]*)\b`)

// Expand substitutes vars into s. A known name is replaced when written as
// ${name}, $name or as a bare word. "$$" becomes "$" and the identifier
// right after it is kept literally, so "$$project_folder" yields
// "$project_folder". Unknown names are left as written.
func Expand(s string, vars map[string]string) string {
	if len(vars) == 0 {
		return s
	}
	return placeholderRE.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, "$$") {
			return match[1:]
		}
		sub := placeholderRE.FindStringSubmatch(match)
		for _, name := range sub[1:] {
			if name == "" {
				continue
			}
			if v, ok := vars[name]; ok {
				return v
			}
		}
		return match
	})
}

// ProjectVars returns the template variables for a project folder.
func ProjectVars(projectFolder string) map[string]string {
	return map[string]string{ProjectFolderKey: projectFolder}
}

// ResolveProjectFolder returns the directory of the project file when one
// is open, otherwise the directory of the active file, otherwise ".".
func ResolveProjectFolder(projectFile, activeFile string) string {
	if projectFile != "" {
		return filepath.Dir(projectFile)
	}
	if activeFile != "" {
		return filepath.Dir(activeFile)
	}
	return "."
}
