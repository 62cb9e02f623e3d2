package main

import (
	"testing"

	"github.com/hqslab/blackbox/pkg/blackbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAskRequiresQuery(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runAsk(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestRunAskUnknownModel(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runAsk([]string{"-model", "NOPE", "hello"})
	require.Error(t, err)

	var notFound *blackbox.ModelNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
