package config

import "fmt"

// KeyPair names one deprecated setting and the setting that replaced it.
type KeyPair struct {
	Legacy  string
	Current string
}

// Setting pairs recognized by the asset environment. The ASSET_* names predate
// the WEBASSETS_* names and are still honored with a deprecation notice.
var (
	ConfigKeys     = KeyPair{Legacy: "ASSET_CONFIG", Current: "WEBASSETS_CONFIG"}
	BundleKeys     = KeyPair{Legacy: "ASSET_BUNDLES", Current: "WEBASSETS_BUNDLES"}
	DebugKeys      = KeyPair{Legacy: "ASSET_DEBUG", Current: "WEBASSETS_DEBUG"}
	SourcePathKeys = KeyPair{Legacy: "ASSET_SOURCE_PATHS", Current: "WEBASSETS_SOURCE_PATHS"}
)

// KeyPairs returns every recognized pair in resolution order.
func KeyPairs() []KeyPair {
	return []KeyPair{ConfigKeys, BundleKeys, DebugKeys, SourcePathKeys}
}

// DeprecationMessage is the notice logged when the legacy name of p is used.
func (p KeyPair) DeprecationMessage() string {
	return fmt.Sprintf("%s has been deprecated in favor for %s. Please update your config file.", p.Legacy, p.Current)
}

func (p KeyPair) String() string {
	return p.Legacy + "->" + p.Current
}
