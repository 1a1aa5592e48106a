package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbafinance/directory-api/internal/model"
)

func strp(s string) *string { return &s }

func TestRequireCompletion(t *testing.T) {
	empty := model.Account{BusinessName: "Acme Co", Email: "a@acme.test"}

	err := RequireCompletion(empty, 100)
	require.Error(t, err)
	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Zero(t, cerr.Have)
	assert.Contains(t, err.Error(), "100% completion required")

	// A zero threshold always passes.
	assert.NoError(t, RequireCompletion(empty, 0))

	partial := empty
	partial.Industry = strp("Logistics")
	partial.City = strp("Rotterdam")
	assert.NoError(t, RequireCompletion(partial, 10))
	assert.Error(t, RequireCompletion(partial, 50))
}
