package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is a decoded configuration document.
type Document = map[string]any

var lineRe = regexp.MustCompile(`line (\d+)`)

// DecodeYAML parses one YAML document whose top level is a mapping.
// An empty document (or a bare null) decodes to an empty Document.
// Mapping keys are strings at every depth; non-string keys are formatted
// with fmt. Tags outside the YAML core schema (for example "!include")
// are rejected.
// Parse failures are CodeMalformedConfig with the parser message under
// "diagnostic" and, when reported, the line under "line".
func DecodeYAML(ctx context.Context, r io.Reader) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapMalformedConfig(err, "context cancelled before decoding yaml", nil)
	}

	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return nil, malformed(err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return Document{}, nil
	case node.Kind != yaml.MappingNode:
		return nil, wrapMalformedConfig(
			errors.New("top-level value is not a mapping"),
			"configuration document must be a mapping",
			makeContext("diagnostic", "top-level value is not a mapping", "line", node.Line),
		)
	}

	if err := checkTags(node); err != nil {
		return nil, err
	}

	doc := Document{}
	if err := node.Decode(&doc); err != nil {
		return nil, malformed(err)
	}
	for k, v := range doc {
		doc[k] = normalize(v)
	}
	return doc, nil
}

var coreTags = map[string]bool{
	"!!null":      true,
	"!!bool":      true,
	"!!int":       true,
	"!!float":     true,
	"!!str":       true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!map":       true,
	"!!seq":       true,
	"!!merge":     true,
}

// checkTags rejects nodes carrying an application-specific tag.
func checkTags(node *yaml.Node) error {
	if node.Kind != yaml.AliasNode && node.Tag != "" && !coreTags[node.ShortTag()] {
		msg := fmt.Sprintf("unsupported tag %s", node.Tag)
		return wrapMalformedConfig(errors.New(msg), "failed to parse yaml",
			makeContext("diagnostic", msg, "line", node.Line))
	}
	for _, child := range node.Content {
		if err := checkTags(child); err != nil {
			return err
		}
	}
	return nil
}

// normalize converts nested mappings to map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

// EncodeYAML writes doc in block style with two-space indentation.
// Mapping keys are emitted in sorted order. Values yaml cannot represent,
// such as channels and functions, fail with CodeCodecFailed.
func EncodeYAML(ctx context.Context, doc Document, w io.Writer) (err error) {
	if err := ctx.Err(); err != nil {
		return wrapCodecError(err, "context cancelled before encoding yaml")
	}
	if doc == nil {
		doc = Document{}
	}

	// yaml.v3 panics on unsupported kinds instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = newCodecError(fmt.Sprintf("failed to encode yaml: %v", r), makeContext("format", "yaml"))
		}
	}()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		_ = enc.Close()
		return wrapCodecErrorWithContext(err, "failed to encode yaml", makeContext("format", "yaml"))
	}
	if err := enc.Close(); err != nil {
		return wrapCodecErrorWithContext(err, "failed to flush yaml", makeContext("format", "yaml"))
	}
	return nil
}

func malformed(err error) error {
	ctx := makeContext("diagnostic", err.Error())
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			ctx["line"] = line
		}
	}
	return wrapMalformedConfig(err, "failed to parse yaml", ctx)
}
