package myconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, []string{"application"}, cfg.Lock.Tables)
		assert.Equal(t, 30*time.Minute, cfg.Lock.Timeout())
		assert.Equal(t, time.Minute, cfg.Lock.LeaseMinHold)
		assert.Equal(t, 5*time.Second, cfg.HTTPClient.ConnectTimeout)
		assert.Equal(t, "AwaitingPayment", cfg.Cart.AwaitingPaymentStatus)
		assert.Equal(t, "INFO", cfg.Log.Level)
		assert.False(t, cfg.Payment.UseFakePlatform)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte(`
lock:
  timeoutMinutes: 10
  sweepCron: "0 * * * *"
payment:
  platformUrl: https://pay.example.com/
  searchableColumns: [TransactionID, PaidBy]
httpclient:
  readTimeout: 2s
`), 0o600)
		require.NoError(t, err)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, cfg.Lock.Timeout())
		assert.Equal(t, "0 * * * *", cfg.Lock.SweepCron)
		assert.Equal(t, "https://pay.example.com/", cfg.Payment.PlatformURL)
		assert.Equal(t, []string{"TransactionID", "PaidBy"}, cfg.Payment.SearchableColumns)
		assert.Equal(t, 2*time.Second, cfg.HTTPClient.ReadTimeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("USERAREA_SERVER_PORT", "9999")
		t.Setenv("USERAREA_CART_AWAITINGPAYMENTSTATUS", "Awaiting payment")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, "Awaiting payment", cfg.Cart.AwaitingPaymentStatus)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid lease holds", func(t *testing.T) {
		t.Setenv("USERAREA_LOCK_LEASEMINHOLD", "10m")
		t.Setenv("USERAREA_LOCK_LEASEMAXHOLD", "1m")

		_, err := Load("")
		assert.Error(t, err)
	})
}
