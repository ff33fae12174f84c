package codec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jmgilman/go/filehandler/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAML_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "scalars",
			doc:  Document{"test1": 1, "test2": "2"},
		},
		{
			name: "nested",
			doc: Document{
				"db":    map[string]any{"host": "localhost", "port": 5432},
				"tags":  []any{"a", "b"},
				"ratio": 0.5,
				"on":    true,
				"none":  nil,
			},
		},
		{
			name: "empty",
			doc:  Document{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeYAML(ctx, tt.doc, &buf))

			got, err := DecodeYAML(ctx, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, got)
		})
	}
}

func TestEncodeYAML_BlockStyleSorted(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeYAML(context.Background(), Document{
		"b": []any{1, 2},
		"a": map[string]any{"y": "2", "x": "1"},
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "a:\n  x: \"1\"\n  y: \"2\"\nb:\n  - 1\n  - 2\n", buf.String())
}

func TestDecodeYAML_Empty(t *testing.T) {
	for _, input := range []string{"", "~\n", "null\n"} {
		doc, err := DecodeYAML(context.Background(), strings.NewReader(input))
		require.NoError(t, err, "input %q", input)
		assert.Empty(t, doc)
		assert.NotNil(t, doc)
	}
}

func TestDecodeYAML_Malformed(t *testing.T) {
	t.Run("syntax error reports line", func(t *testing.T) {
		_, err := DecodeYAML(context.Background(), strings.NewReader("key: value\n  bad: indent\n"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeMalformedConfig, errors.GetCode(err))

		var pe errors.PlatformError
		require.True(t, errors.As(err, &pe))
		assert.NotEmpty(t, pe.Context()["diagnostic"])
		assert.Contains(t, pe.Context(), "line")
	})

	t.Run("top level sequence", func(t *testing.T) {
		_, err := DecodeYAML(context.Background(), strings.NewReader("- a\n- b\n"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeMalformedConfig, errors.GetCode(err))
	})

	t.Run("top level scalar", func(t *testing.T) {
		_, err := DecodeYAML(context.Background(), strings.NewReader("just a string\n"))
		assert.Equal(t, errors.CodeMalformedConfig, errors.GetCode(err))
	})
}

func TestDecodeYAML_NestedKeysAreStrings(t *testing.T) {
	input := "1: a\nnested:\n  2: b\n  list:\n    - 3: c\n"
	doc, err := DecodeYAML(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Document{
		"1": "a",
		"nested": map[string]any{
			"2":    "b",
			"list": []any{map[string]any{"3": "c"}},
		},
	}, doc)
}

func TestDecodeYAML_RejectsCustomTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{name: "local tag", input: "a: 1\nb: !include other.yaml\n", line: 2},
		{name: "nested tag", input: "a:\n  b: !!python/object foo\n", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, errors.CodeMalformedConfig, errors.GetCode(err))

			var pe errors.PlatformError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Context()["line"])
		})
	}

	doc, err := DecodeYAML(context.Background(), strings.NewReader("a: !!str 1\n"))
	require.NoError(t, err)
	assert.Equal(t, Document{"a": "1"}, doc)
}

func TestEncodeYAML_UnsupportedValue(t *testing.T) {
	var buf bytes.Buffer
	var err error
	require.NotPanics(t, func() {
		err = EncodeYAML(context.Background(), Document{"ch": make(chan int)}, &buf)
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeCodecFailed, errors.GetCode(err))
}
