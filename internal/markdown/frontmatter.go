package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata block at the top of a dataset README.
type FrontMatter struct {
	Title      string         `json:"title,omitempty"`
	PrettyName string         `json:"pretty_name,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	Custom     map[string]any `json:"custom,omitempty"`
}

// DisplayTitle returns the title, falling back to pretty_name.
func (f FrontMatter) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.PrettyName
}

type frontMatterEnvelope struct {
	Title      string         `yaml:"title" toml:"title" json:"title"`
	PrettyName string         `yaml:"pretty_name" toml:"pretty_name" json:"pretty_name"`
	Tags       []string       `yaml:"tags" toml:"tags" json:"tags"`
	Custom     map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits YAML/TOML/JSON front matter from the markdown body.
// A document without front matter returns an empty FrontMatter and the source unchanged.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var env frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return FrontMatter{}, source, fmt.Errorf("parse frontmatter: %w", err)
	}

	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = normalizeValue(value)
	}

	return FrontMatter{
		Title:      env.Title,
		PrettyName: env.PrettyName,
		Tags:       append([]string(nil), env.Tags...),
		Custom:     custom,
	}, body, nil
}

// normalizeValue converts the map[interface{}]interface{} values produced by
// the YAML decoder into map[string]any so the metadata can be JSON encoded.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}
