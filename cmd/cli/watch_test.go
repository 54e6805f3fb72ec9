package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:8080":      "ws://localhost:8080/ws",
		"https://shop.example.com/x": "wss://shop.example.com/ws",
	}
	for in, want := range tests {
		got, err := websocketURL(in, "/ws")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestTokenFile(t *testing.T) {
	path := t.TempDir() + "/nested/token.json"
	require.Error(t, saveToken(path, tokenData{}))
	require.NoError(t, saveToken(path, tokenData{Token: " abc "}))

	got, err := readToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}
