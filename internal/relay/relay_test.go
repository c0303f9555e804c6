package relay

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/osa911/uplink/internal/config"
	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"emailjs", config.Config{RelayProvider: config.RelayEmailJS, EmailJSServiceID: "s"}, false},
		{"telegram", config.Config{RelayProvider: config.RelayTelegram}, false},
		{"log", config.Config{RelayProvider: config.RelayLog}, false},
		{"unknown", config.Config{RelayProvider: "fax"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(&tt.cfg, logging.Discard())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}

func TestLogRelay(t *testing.T) {
	var buf bytes.Buffer
	r := NewLog(logging.NewWriterLogger(&buf, logging.LevelInfo))

	require.NoError(t, r.Send(context.Background(), sampleForm))
	assert.Contains(t, buf.String(), `"A" <a@b.com>`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Send(ctx, sampleForm), contact.ErrRelayFailed)
}

func TestTracedPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	r := Traced("test", contact.RelayFunc(func(ctx context.Context, f contact.Form) error {
		calls++
		assert.Equal(t, sampleForm, f)
		return boom
	}))

	err := r.Send(context.Background(), sampleForm)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
