package linktoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	s := NewSigner("test-secret")

	token, err := s.Generate(PurposeEnquiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	purpose, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, PurposeEnquiry, purpose)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	s := NewSigner("test-secret")
	token, err := s.Generate(PurposeEnquiry)
	require.NoError(t, err)

	_, err = s.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewSigner("secret-a").Generate(PurposeEnquiry)
	require.NoError(t, err)

	_, err = NewSigner("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewSigner("test-secret").Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnconfiguredSecret(t *testing.T) {
	s := NewSigner("")
	_, err := s.Generate(PurposeEnquiry)
	assert.Error(t, err)
	_, err = s.Verify("anything")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
