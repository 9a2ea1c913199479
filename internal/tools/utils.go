package tools

import (
	"path/filepath"
	"strings"
)

// pathToURI converts a file path to a file URI, resolving relative
// paths against the workspace root.
func pathToURI(filePath, workspaceRoot string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(workspaceRoot, filePath)
	}
	return "file://" + filePath
}

// uriToPath converts a file URI to a local file path
func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
