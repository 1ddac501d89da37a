// Package config decodes semver plugin options from host configuration
// documents.
//
// A document may hold the options directly:
//
//	strict: false
//	fallback: error
//
// or nest them under one of the plugin's configuration keys, optionally
// inside a pluginConfig section:
//
//	pluginConfig:
//	  git-json-resolver-semver:
//	    preferValid: false
//
// JSON documents decode the same way since JSON is valid YAML.
// Unknown options are ignored so hosts can share one document across plugins.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	semvermerge "github.com/albertocavalcante/go-semver-merge"
)

// pluginConfigKey is the host section that groups per-plugin options.
const pluginConfigKey = "pluginConfig"

// ErrAmbiguous indicates a document that configures the plugin under
// more than one of its keys.
var ErrAmbiguous = errors.New("plugin configured under more than one key")

// Decode reads a partial configuration from a YAML or JSON document.
// An empty document yields an empty PartialConfig.
func Decode(data []byte) (semvermerge.PartialConfig, error) {
	var partial semvermerge.PartialConfig
	if strings.TrimSpace(string(data)) == "" {
		return partial, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return partial, fmt.Errorf("parse plugin config: %w", err)
	}

	node := documentBody(&root)
	if node == nil || node.Kind != yaml.MappingNode {
		return partial, errors.New("parse plugin config: top level must be a mapping")
	}

	if section := lookup(node, pluginConfigKey); section != nil {
		node = section
	}

	block, err := pluginBlock(node)
	if err != nil {
		return partial, err
	}
	if block != nil {
		node = block
	}

	if err := node.Decode(&partial); err != nil {
		return partial, fmt.Errorf("decode plugin config: %w", err)
	}
	return partial, nil
}

// LoadFile reads and decodes the configuration file at path.
func LoadFile(path string) (semvermerge.PartialConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return semvermerge.PartialConfig{}, fmt.Errorf("read plugin config: %w", err)
	}
	partial, err := Decode(data)
	if err != nil {
		return partial, fmt.Errorf("%s: %w", path, err)
	}
	return partial, nil
}

// pluginBlock returns the mapping stored under one of the plugin's
// configuration keys, or nil when none is present.
func pluginBlock(node *yaml.Node) (*yaml.Node, error) {
	var found *yaml.Node
	var foundKey string
	for _, key := range semvermerge.ConfigKeys {
		v := lookup(node, key)
		if v == nil {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s and %s", ErrAmbiguous, foundKey, key)
		}
		found, foundKey = v, key
	}
	return found, nil
}

func documentBody(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

// lookup returns the value node for key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
