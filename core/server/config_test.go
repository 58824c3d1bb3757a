package server_test

import (
	"testing"
	"time"

	"feedme/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Configured", 10, 10 * time.Second},
		{"Zero", 0, time.Second},
		{"Negative", -5, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ShutdownTimeoutSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.ShutdownTimeout())
		})
	}
}
