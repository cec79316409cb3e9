package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderDefaultYAML renders a commented YAML config holding every default.
func RenderDefaultYAML() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, o := range GetConfigOptions() {
		parts := strings.Split(o.Key, ".")
		parent := root
		for _, section := range parts[:len(parts)-1] {
			parent = childMapping(parent, section)
		}
		value := &yaml.Node{}
		if err := value.Encode(o.Default); err != nil {
			return "", fmt.Errorf("config: encode %s: %w", o.Key, err)
		}
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       parts[len(parts)-1],
			HeadComment: o.Comment,
		}
		parent.Content = append(parent.Content, key, value)
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "formpreview configuration",
		Content:     []*yaml.Node{root},
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("config: render: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("config: render: %w", err)
	}
	return buf.String(), nil
}

func childMapping(parent *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == key {
			return parent.Content[i+1]
		}
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		child,
	)
	return child
}
