package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCommand("test", "abc", "today")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"routes"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "PATTERN")
	assert.Contains(t, out.String(), "/hello/{name}")
	assert.Contains(t, out.String(), "site.Greeting")
	assert.Contains(t, out.String(), "site.AdminOnly")
}

func TestServeRejectsBadConfig(t *testing.T) {
	t.Setenv("TINYWEB_LOG_FORMAT", "xml")

	cmd := newRootCommand("test", "abc", "today")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})

	require.Error(t, cmd.Execute())
}
