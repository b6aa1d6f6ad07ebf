package simulated

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{8}\.\.\.[0-9a-f]{4}$`)

func TestRequester_Address(t *testing.T) {
	accounts, err := New(0).RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Regexp(t, addressPattern, accounts[0])
}

func TestRequester_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(time.Hour).RequestAccounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
