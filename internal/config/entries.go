package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConfigEntry is one key/value pair forwarded to the bundler configuration.
// In settings files it is written either as `[key, value]` or as `{key: ..., value: ...}`.
type ConfigEntry struct {
	Key   string
	Value any
}

// BundleEntry declares a named bundle. Contents and Options are opaque to the
// environment and handed to the bundler as-is.
// Accepted forms: `[name, [contents...], {options}]` or `{name:, contents:, options:}`.
type BundleEntry struct {
	Name     string
	Contents []any
	Options  map[string]any
}

func (e *ConfigEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: config entry must be a [key, value] pair, got %d items", node.Line, len(node.Content))
		}
		if err := node.Content[0].Decode(&e.Key); err != nil {
			return fmt.Errorf("line %d: config key: %w", node.Line, err)
		}
		if err := node.Content[1].Decode(&e.Value); err != nil {
			return fmt.Errorf("line %d: config value: %w", node.Line, err)
		}
	case yaml.MappingNode:
		var raw struct {
			Key   string `yaml:"key"`
			Value any    `yaml:"value"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		e.Key, e.Value = raw.Key, raw.Value
	default:
		return fmt.Errorf("line %d: config entry must be a sequence or mapping", node.Line)
	}
	if e.Key == "" {
		return fmt.Errorf("line %d: config entry has an empty key", node.Line)
	}
	return nil
}

func (e ConfigEntry) MarshalYAML() (any, error) {
	n := &yaml.Node{}
	if err := n.Encode([]any{e.Key, e.Value}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

func (e *BundleEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 3 {
			return fmt.Errorf("line %d: bundle entry must be [name, contents, options], got %d items", node.Line, len(node.Content))
		}
		if err := node.Content[0].Decode(&e.Name); err != nil {
			return fmt.Errorf("line %d: bundle name: %w", node.Line, err)
		}
		if len(node.Content) > 1 {
			if err := decodeContents(node.Content[1], &e.Contents); err != nil {
				return err
			}
		}
		if len(node.Content) > 2 {
			if err := node.Content[2].Decode(&e.Options); err != nil {
				return fmt.Errorf("line %d: bundle %q options: %w", node.Line, e.Name, err)
			}
		}
	case yaml.MappingNode:
		var raw struct {
			Name     string         `yaml:"name"`
			Contents yaml.Node      `yaml:"contents"`
			Options  map[string]any `yaml:"options"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		e.Name, e.Options = raw.Name, raw.Options
		if raw.Contents.Kind != 0 {
			if err := decodeContents(&raw.Contents, &e.Contents); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("line %d: bundle entry must be a sequence or mapping", node.Line)
	}
	if e.Name == "" {
		return fmt.Errorf("line %d: bundle entry has an empty name", node.Line)
	}
	return nil
}

// decodeContents accepts a single scalar as shorthand for a one-item list.
func decodeContents(node *yaml.Node, out *[]any) error {
	if node.Kind == yaml.ScalarNode {
		var single any
		if err := node.Decode(&single); err != nil {
			return err
		}
		*out = []any{single}
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("line %d: bundle contents: %w", node.Line, err)
	}
	return nil
}

func (e BundleEntry) MarshalYAML() (any, error) {
	return struct {
		Name     string         `yaml:"name"`
		Contents []any          `yaml:"contents,flow"`
		Options  map[string]any `yaml:"options,omitempty"`
	}{e.Name, e.Contents, e.Options}, nil
}
