package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/dox-arbitrage/business/wallet/domain"
	"github.com/fd1az/dox-arbitrage/internal/apperror"
	"github.com/fd1az/dox-arbitrage/internal/catalog"
	"github.com/fd1az/dox-arbitrage/internal/logger"
)

type fakeRequester struct {
	accounts []string
	err      error
	started  chan struct{}
	release  chan struct{}
	calls    int
}

func (f *fakeRequester) RequestAccounts(ctx context.Context) ([]string, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.accounts, f.err
}

func newConnector(injected, simulated AccountRequester) *Connector {
	return NewConnector(catalog.DefaultRegistry(), injected, simulated, logger.NewNop())
}

func TestConnector_InjectedSuccess(t *testing.T) {
	injected := &fakeRequester{accounts: []string{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"}}
	simulated := &fakeRequester{}
	c := newConnector(injected, simulated)

	st, err := c.Connect(context.Background(), catalog.WalletMetaMask)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConnected, st.Status)
	assert.Equal(t, "Connected to MetaMask", st.Message)
	assert.Equal(t, "0x5aAe...eAed", st.DisplayAddress())
	assert.Equal(t, 1, injected.calls)
	assert.Equal(t, 0, simulated.calls)
	assert.Equal(t, st, c.State())
}

func TestConnector_SimulatedWallets(t *testing.T) {
	simulated := &fakeRequester{accounts: []string{"0x1a2b3c4d...9f8e"}}
	c := newConnector(&fakeRequester{}, simulated)

	st, err := c.Connect(context.Background(), catalog.WalletCoinbase)
	require.NoError(t, err)
	assert.Equal(t, "Connected to Coinbase Wallet", st.Message)
	assert.Equal(t, "0x1a2b3c4d...9f8e", st.DisplayAddress())
	assert.Equal(t, 1, simulated.calls)
}

func TestConnector_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		accounts []string
		wantCode apperror.Code
		wantMsg  string
	}{
		{
			name:     "provider_not_found",
			err:      domain.ErrProviderNotFound,
			wantCode: apperror.CodeWalletProviderNotFound,
			wantMsg:  "MetaMask not found. Please install the extension.",
		},
		{
			name:     "user_rejected",
			err:      domain.ErrUserRejected,
			wantCode: apperror.CodeWalletConnectionFailed,
			wantMsg:  "Failed to connect to MetaMask: User rejected connection.",
		},
		{
			name:     "no_accounts",
			accounts: []string{},
			wantCode: apperror.CodeWalletNoAccounts,
			wantMsg:  "Failed to connect to MetaMask: wallet returned no accounts",
		},
		{
			name:     "other_error",
			err:      errors.New("dial refused"),
			wantCode: apperror.CodeWalletConnectionFailed,
			wantMsg:  "Failed to connect to MetaMask: dial refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConnector(&fakeRequester{accounts: tt.accounts, err: tt.err}, &fakeRequester{})
			st, err := c.Connect(context.Background(), catalog.WalletMetaMask)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.GetCode(err))
			assert.Equal(t, apperror.KindWallet, apperror.GetKind(err))
			assert.Equal(t, domain.StatusError, st.Status)
			assert.Equal(t, tt.wantMsg, st.Message)
			assert.False(t, c.State().Connected())
		})
	}
}

func TestConnector_UnknownWallet(t *testing.T) {
	c := newConnector(&fakeRequester{}, &fakeRequester{})
	_, err := c.Connect(context.Background(), "phantom")
	assert.Equal(t, apperror.CodeWalletUnknown, apperror.GetCode(err))
}

func TestConnector_SingleInFlight(t *testing.T) {
	injected := &fakeRequester{
		accounts: []string{"0xabc"},
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	c := newConnector(injected, &fakeRequester{})

	done := make(chan error, 1)
	go func() {
		_, err := c.Connect(context.Background(), catalog.WalletMetaMask)
		done <- err
	}()
	<-injected.started
	assert.Equal(t, domain.StatusConnecting, c.State().Status)
	assert.Equal(t, "Connecting to MetaMask...", c.State().Message)

	_, err := c.Connect(context.Background(), catalog.WalletMetaMask)
	assert.Equal(t, apperror.CodeWalletConnectionInFlight, apperror.GetCode(err))

	close(injected.release)
	require.NoError(t, <-done)
	assert.True(t, c.State().Connected())
}

func TestConnector_Disconnect(t *testing.T) {
	c := newConnector(&fakeRequester{accounts: []string{"0xabc"}}, &fakeRequester{})
	_, err := c.Connect(context.Background(), catalog.WalletMetaMask)
	require.NoError(t, err)

	c.Disconnect()
	assert.Equal(t, domain.State{}, c.State())
}
