package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRedaction(t *testing.T) {
	secret := NewSecret("sk-abc123xyz")

	tests := []struct {
		format string
		want   string
	}{
		{"%v", "[REDACTED]"},
		{"%s", "[REDACTED]"},
		{"%+v", "[REDACTED]"},
		{"%#v", "core.Secret{[REDACTED]}"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := fmt.Sprintf(tt.format, secret)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "sk-abc123xyz")
		})
	}
}

func TestSecretInStruct(t *testing.T) {
	cfg := struct {
		Host  string `json:"host"`
		Token Secret `json:"token"`
	}{Host: "api.openai.com", Token: NewSecret("sk-super-secret")}

	for _, format := range []string{"%v", "%+v", "%#v"} {
		got := fmt.Sprintf(format, cfg)
		assert.NotContains(t, got, "sk-super-secret", format)
		assert.Contains(t, got, "REDACTED", format)
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"api.openai.com","token":"[REDACTED]"}`, string(data))

	text, err := cfg.Token.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[REDACTED]", string(text))
}

func TestSecretExpose(t *testing.T) {
	secret := NewSecret("key\nwith \"quotes\"")

	assert.Equal(t, "key\nwith \"quotes\"", secret.Expose())
	assert.False(t, secret.IsEmpty())
	assert.Equal(t, "Bearer key\nwith \"quotes\"", secret.Bearer())
}

func TestSecretEmpty(t *testing.T) {
	var zero Secret

	assert.True(t, zero.IsEmpty())
	assert.True(t, NewSecret("").IsEmpty())
	assert.Equal(t, "[REDACTED]", zero.String())
	assert.Equal(t, "", zero.Expose())
}
