package resolve

import "path/filepath"

// Paths joins the theme static subpaths, then the extra source paths, onto
// themeRoot. Order is kept and duplicates are not removed: the bundler searches
// the list front to back. An absolute entry is used as-is. Existence is not checked.
func Paths(themeRoot string, staticSubpaths, extraPaths []string) []string {
	out := make([]string, 0, len(staticSubpaths)+len(extraPaths))
	for _, group := range [][]string{staticSubpaths, extraPaths} {
		for _, p := range group {
			out = append(out, join(themeRoot, p))
		}
	}
	return out
}

func join(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
