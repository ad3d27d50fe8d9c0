package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64) // hex, 2 chars per byte

	other, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestGenerateReferenceCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	for i := 0; i < 20; i++ {
		code, err := GenerateReferenceCode(8)
		require.NoError(t, err)
		assert.True(t, re.MatchString(code), "unexpected code %q", code)
	}

	_, err := GenerateReferenceCode(-1)
	assert.Error(t, err)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j**n@x***.com", MaskEmail("john@xyzw.com"))
	assert.Equal(t, "j*@x.com", MaskEmail("jo@x.com"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("LIMO_TEST_KEY", "value")
	assert.Equal(t, "value", EnvOrDefault("LIMO_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("LIMO_TEST_MISSING", "fallback"))

	t.Setenv("LIMO_TEST_BLANK", "   ")
	assert.Equal(t, "fallback", EnvOrDefault("LIMO_TEST_BLANK", "fallback"))
}

func TestBuildFrontendLink(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://luxride.example.com/")
	assert.Equal(t, "https://luxride.example.com/reset?token=x", BuildFrontendLink("reset?token=x"))
	assert.Equal(t, "https://luxride.example.com/book", BuildFrontendLink("/book"))
}
