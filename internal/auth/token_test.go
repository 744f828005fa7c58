package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "un-secreto-solo-para-pruebas"

func TestIssueTokenAndParseSubject(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.IssueToken()
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	sub, err := issuer.ParseSubject(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.True(t, issuer.ValidateSubject(sub))
}

func TestValidateSubjectRejectsOthers(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	assert.False(t, issuer.ValidateSubject("otro"))
	assert.False(t, issuer.ValidateSubject(""))
}

func TestParseSubjectRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.IssueToken()
	require.NoError(t, err)

	_, err = issuer.ParseSubject(token.AccessToken)
	assert.Error(t, err)
}

func TestParseSubjectRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("otro-secreto-distinto", time.Hour)

	token, err := issuer.IssueToken()
	require.NoError(t, err)

	_, err = other.ParseSubject(token.AccessToken)
	assert.Error(t, err)
}

func TestParseSubjectRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	_, err := issuer.ParseSubject("no-es-un-jwt")
	assert.Error(t, err)
}
