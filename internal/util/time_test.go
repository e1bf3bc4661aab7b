package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeProvider(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone Asia/Shanghai", timezone: "Asia/Shanghai"},
		{name: "empty timezone defaults to Local", timezone: ""},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
				assert.Nil(t, provider)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, provider.Location())
		})
	}
}

func TestInitializeTimeProviderKeepsPreviousOnError(t *testing.T) {
	require.NoError(t, InitializeTimeProvider("UTC"))
	before := GetTimeProvider()

	err := InitializeTimeProvider("Invalid/Zone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone 'Invalid/Zone'")
	assert.Contains(t, err.Error(), "Valid examples:")

	assert.Same(t, before, GetTimeProvider())
	assert.Equal(t, "UTC", GetTimeProvider().Location().String())
}

func TestGetTimeProviderDefaultsToLocal(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	provider := GetTimeProvider()
	require.NotNil(t, provider)
	assert.Equal(t, time.Local, provider.Location())
	assert.Same(t, provider, GetTimeProvider())
}

func TestTimeProviderFormatMillis(t *testing.T) {
	tests := []struct {
		timezone string
		expected string
	}{
		{"UTC", "2023-11-14 22:13:20"},
		{"Asia/Shanghai", "2023-11-15 06:13:20"},
		{"America/New_York", "2023-11-14 17:13:20"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			provider, err := NewTimeProvider(tt.timezone)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, provider.FormatMillis(1700000000000, "2006-01-02 15:04:05"))
		})
	}
}

func TestTimeProviderIn(t *testing.T) {
	provider, err := NewTimeProvider("Asia/Shanghai")
	require.NoError(t, err)

	utcTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	shanghaiTime := provider.In(utcTime)

	assert.True(t, utcTime.Equal(shanghaiTime))
	assert.Equal(t, "Asia/Shanghai", shanghaiTime.Location().String())
	assert.Equal(t, 20, shanghaiTime.Hour())
}

func TestTimeProviderZeroValueUsesLocal(t *testing.T) {
	provider := &TimeProvider{}
	assert.Equal(t, time.Local, provider.Location())
}

func TestTimeProviderConcurrency(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = provider.FormatMillis(time.Now().UnixMilli(), time.RFC3339)
		}()
	}

	timezones := []string{"UTC", "Asia/Shanghai", "America/New_York", "Europe/London"}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := provider.SetTimezone(timezones[idx%len(timezones)]); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Concurrent operation error: %v", err)
	}
}
