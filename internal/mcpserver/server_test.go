package mcpserver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error returns empty string",
			err:  nil,
			want: "",
		},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("flattener: reading /home/user/secret/events.json: no such file"),
			want: "flattener: reading <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("json parse error at offset 5"),
			want: "json parse error at offset 5",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("output /tmp/a.json would overwrite /tmp/a.json"),
			want: "output <path> would overwrite <path>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("reading /root/doc.json failed"))
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "reading <path> failed", text.Text)
}
