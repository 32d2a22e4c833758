package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing port",
			config:  Config{JWTSecret: "secret"},
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			config:  Config{Port: "8480"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "development defaults pass",
			config: Config{
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
		},
		{
			name: "production rejects default secret",
			config: Config{
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name: "production rejects short secret",
			config: Config{
				Port:      "8480",
				JWTSecret: "short",
				Env:       "production",
			},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name: "production rejects weak db password",
			config: Config{
				Port:       "8480",
				JWTSecret:  "a-very-long-secret-key-for-production-use",
				Env:        "production",
				DBPassword: "password",
			},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "production accepts strong settings",
			config: Config{
				Port:       "8480",
				JWTSecret:  "a-very-long-secret-key-for-production-use",
				Env:        "production",
				DBPassword: "s3cure-db-pass",
				DBSSLMode:  "require",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
