package config_test

import (
	"testing"
	"time"

	"shopsample/internal/config"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
}

func TestLoadEnv(t *testing.T) {
	testCases := []struct {
		desc    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			desc: "Defaults",
			check: func(t *testing.T, cfg *config.Config) {
				require.Equal(t, "local", cfg.Env)
				require.Equal(t, "5432", cfg.Postgres.Port)
				require.Equal(t, 10, cfg.Paging.DefaultPageSize)
				require.Equal(t, 100, cfg.Paging.MaxPageSize)
				require.False(t, cfg.Kafka.Enabled)
				require.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
				require.Equal(t, 2*time.Second, cfg.HTTP.RequestTimeout)
			},
		},
		{
			desc: "Overrides",
			env: map[string]string{
				"ENV":                      "prod",
				"PAGING_DEFAULT_PAGE_SIZE": "25",
				"KAFKA_ENABLED":            "true",
				"KAFKA_BROKERS":            "kafka-1:9092,kafka-2:9092",
			},
			check: func(t *testing.T, cfg *config.Config) {
				require.Equal(t, "prod", cfg.Env)
				require.Equal(t, 25, cfg.Paging.DefaultPageSize)
				require.True(t, cfg.Kafka.Enabled)
				require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
			},
		},
		{
			desc:    "DefaultPageSizeAboveMax",
			env:     map[string]string{"PAGING_DEFAULT_PAGE_SIZE": "500"},
			wantErr: true,
		},
		{
			desc:    "UnknownEnv",
			env:     map[string]string{"ENV": "qa"},
			wantErr: true,
		},
		{
			desc:    "UnknownLogLevel",
			env:     map[string]string{"LOGGER_LEVEL": "trace"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := config.LoadEnv()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadPath_Missing(t *testing.T) {
	_, err := config.LoadPath("")
	require.ErrorIs(t, err, config.ErrConfigPathNotSet)

	_, err = config.LoadPath("/nonexistent/config.yaml")
	require.Error(t, err)
}
