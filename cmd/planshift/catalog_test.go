package main

import (
	"bytes"
	"testing"

	"github.com/smallbiznis/planshift/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCatalog(t *testing.T) {
	catalogs, err := config.DefaultCatalogConfig().Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printCatalog(&buf, "defaults", catalogs))
	out := buf.String()

	assert.Contains(t, out, "catalog 2025-10 (defaults)")
	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "$89.00")
	assert.Contains(t, out, "$1,068.00")
	assert.Contains(t, out, "53,400")
	assert.Contains(t, out, "$0.0200")
	assert.Contains(t, out, "scale")
	assert.Contains(t, out, "llama-3-3-70b-instruct")
	assert.Contains(t, out, "0.5")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("IN_HOUSE")), bytes.Index(buf.Bytes(), []byte("AGENCY")))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["catalog"])
	assert.True(t, names["import"])
}
