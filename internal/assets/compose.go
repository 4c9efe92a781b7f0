package assets

import "strings"

// RelativeSiteURL is the SITEURL of a page depth directories below the output
// root when relative URLs are on: ".", "..", "../.." and so on.
func RelativeSiteURL(depth int) string {
	if depth <= 0 {
		return CurrentDir
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

// ComposeURL joins a site URL and an asset URL with a single slash. A leading
// "./" on assetURL is dropped first. An empty siteURL yields assetURL unchanged.
func ComposeURL(siteURL, assetURL string) string {
	if siteURL == "" {
		return assetURL
	}
	asset := strings.TrimLeft(strings.TrimPrefix(assetURL, "./"), "/")
	return strings.TrimRight(siteURL, "/") + "/" + asset
}
