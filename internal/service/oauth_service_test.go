package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoginURLEmbedsFreshState(t *testing.T) {
	svc := NewOAuthService(nil, nil)

	url, state, err := svc.GetLoginURL("google")
	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Contains(t, url, "state="+state)

	// Every login attempt gets its own state.
	_, state2, err := svc.GetLoginURL("google")
	require.NoError(t, err)
	assert.NotEqual(t, state, state2)
}

func TestGetLoginURLRejectsUnknownProvider(t *testing.T) {
	svc := NewOAuthService(nil, nil)

	_, _, err := svc.GetLoginURL("github")
	assert.Error(t, err)
}
