package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr redirects formatted errors into a buffer for the test
func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prevNoColor := color.NoColor
	prevOut := SetErrorOutput(buf)
	color.NoColor = true
	t.Cleanup(func() {
		SetErrorOutput(prevOut)
		color.NoColor = prevNoColor
	})
	return buf
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		buf := captureStderr(t)
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Equal(t, "Test Error\n\nThis is a test error\n", buf.String())
	})

	t.Run("prints a single suggestion verbatim", func(t *testing.T) {
		buf := captureStderr(t)
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, buf.String(), "\nTry this fix\n")
		assert.NotContains(t, buf.String(), "Either:")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		buf := captureStderr(t)
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, buf.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestErrorWithContext(t *testing.T) {
	buf := captureStderr(t)
	context := map[string]string{
		"File":      "main.go",
		"Directory": "/path/to/repo",
	}
	err := ErrorWithContext("Test Error", "Explanation", context, nil)
	require.Error(t, err)
	require.Equal(t, "Test Error", err.Error())
	assert.Contains(t, buf.String(), "  Directory: /path/to/repo\n  File: main.go\n")
}

func TestJSON(t *testing.T) {
	v := map[int]map[string]int{1: {"alias": 2}}

	var compact bytes.Buffer
	require.NoError(t, JSON(&compact, v, false))
	assert.Equal(t, "{\"1\":{\"alias\":2}}\n", compact.String())

	var indented bytes.Buffer
	require.NoError(t, JSON(&indented, v, true))
	assert.Equal(t, "{\n  \"1\": {\n    \"alias\": 2\n  }\n}\n", indented.String())
}

func TestJSON_MarshalError(t *testing.T) {
	err := JSON(new(bytes.Buffer), map[string]any{"bad": make(chan int)}, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal JSON output")
}
