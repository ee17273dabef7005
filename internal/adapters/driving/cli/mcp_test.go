package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_HTTPFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestMCPServeCmd_ProgressOnStderr(t *testing.T) {
	assert.Equal(t, "true", mcpServeCmd.Annotations[annotationStderrProgress])
}

func TestMCPServeCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	queryService = nil

	_, _, err := execute("mcp", "serve")

	assert.EqualError(t, err, "query service not configured")
}
