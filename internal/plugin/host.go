package plugin

import (
	"html/template"
	"maps"

	"git.home.luguber.info/inful/webassets/internal/logfields"
)

// InitAll runs Init on every lifecycle plugin in r. Init failures are returned
// as PluginError; plugins that disable themselves are logged and left in place.
func InitAll(r *Registry, pc *PluginContext) error {
	for _, p := range r.List() {
		name := p.Metadata().Name
		if lc, ok := p.(PluginLifecycle); ok {
			if err := lc.Init(); err != nil {
				return NewPluginError(name, "init", err)
			}
		}
		if !enabled(p) {
			pc.Logger.Info("Plugin disabled", logfields.Plugin(name))
		}
	}
	return nil
}

// ExecuteAll runs every enabled plugin in r.
func ExecuteAll(r *Registry, pc *PluginContext) error {
	for _, p := range r.List() {
		if !enabled(p) {
			continue
		}
		name := p.Metadata().Name
		pc.Logger.Debug("Executing plugin", logfields.Plugin(name))
		if err := p.Execute(pc.Context, pc); err != nil {
			return NewPluginError(name, "execute", err)
		}
	}
	return nil
}

// FuncMap merges the template functions of every enabled TemplatePlugin. On a
// name clash the plugin listed later wins.
func FuncMap(r *Registry, pc *PluginContext) template.FuncMap {
	funcs := template.FuncMap{}
	for _, p := range r.List() {
		tp, ok := p.(TemplatePlugin)
		if !ok || !enabled(p) {
			continue
		}
		maps.Copy(funcs, tp.TemplateFuncs(pc))
	}
	return funcs
}

// CleanupAll runs Cleanup on every lifecycle plugin and returns the first error.
func CleanupAll(r *Registry) error {
	var first error
	for _, p := range r.List() {
		if lc, ok := p.(PluginLifecycle); ok {
			if err := lc.Cleanup(); err != nil && first == nil {
				first = NewPluginError(p.Metadata().Name, "cleanup", err)
			}
		}
	}
	return first
}

func enabled(p Plugin) bool {
	t, ok := p.(Toggle)
	return !ok || t.Enabled()
}
