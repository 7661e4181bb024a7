package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("interview.json", "refine-questions")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "screening questions")
}

func TestGet_CachedReadIsStable(t *testing.T) {
	first, err := Get("interview.json", "interview-system")
	require.NoError(t, err)

	second, err := Get("interview.json", "interview-system")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("interview.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("interview.json", "nonexistent-key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Role: {{.Title}} at {{.Company}}", map[string]string{
		"Title":   "Senior Backend Engineer",
		"Company": "Acme",
	})
	assert.Equal(t, "Role: Senior Backend Engineer at Acme", result)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	result := Format("Hint: {{.Hint}}", map[string]string{})
	assert.Equal(t, "Hint: {{.Hint}}", result)
}
