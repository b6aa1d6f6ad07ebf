package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToast_Expiry(t *testing.T) {
	now := time.Now()
	toast := NewToast("Form Reset", "Ready for new arbitrage configuration.", false, now)

	assert.False(t, toast.Expired(now))
	assert.True(t, toast.Expired(now.Add(ToastDuration)))
	assert.Contains(t, toast.View(), "Form Reset")
	assert.Contains(t, toast.View(), "Ready for new arbitrage configuration.")

	var none *Toast
	assert.True(t, none.Expired(now))
	assert.Empty(t, none.View())
}

func TestSuggestionCard_States(t *testing.T) {
	assert.True(t, SuggestionCard{}.Empty())
	assert.Empty(t, SuggestionCard{}.View())

	loading := SuggestionCard{Loading: true, Spinner: "*"}
	assert.Contains(t, loading.View(), "Generating Smart Suggestion...")

	failed := SuggestionCard{Error: "Failed to get smart suggestion. Please try again."}
	assert.Contains(t, failed.View(), "Failed to get smart suggestion. Please try again.")

	ok := SuggestionCard{
		Amount:      "2000",
		Coin:        "USDT",
		Profit:      "$80.00",
		Profitable:  true,
		Explanation: "Route through the deeper pool.",
	}
	view := ok.View()
	assert.Contains(t, view, "Smart Arbitrage Suggestion")
	assert.Contains(t, view, "2000 USDT")
	assert.Contains(t, view, "$80.00")
	assert.Contains(t, view, "Route through the deeper pool.")
}

func TestStatusLine(t *testing.T) {
	assert.Empty(t, StatusLine{}.View())
	assert.Contains(t, StatusLine{Level: StatusPending, Spinner: "◐", Message: "Connecting to MetaMask..."}.View(), "◐ Connecting to MetaMask...")
	assert.Contains(t, StatusLine{Level: StatusFailed, Message: "MetaMask not found. Please install the extension."}.View(), "not found")
}
