package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeAssets prepares static assets for the generated site.
	PluginTypeAssets PluginType = "assets"

	// PluginTypeTemplate only extends the template renderer.
	PluginTypeTemplate PluginType = "template"
)

func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeAssets, PluginTypeTemplate:
		return true
	default:
		return false
	}
}

func (t PluginType) String() string {
	return string(t)
}

// PluginCapability describes optional features a plugin may provide.
type PluginCapability string

const (
	// CapabilityTemplateFuncs marks plugins implementing TemplatePlugin.
	CapabilityTemplateFuncs PluginCapability = "template-funcs"

	// CapabilityBundling marks plugins that write bundled assets.
	CapabilityBundling PluginCapability = "bundling"
)

func (c PluginCapability) String() string {
	return string(c)
}

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	PluginName string
	// Operation is the hook that failed ("init", "execute", ...).
	Operation string
	Err       error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
