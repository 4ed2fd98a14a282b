package subscribers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:  "plain address",
			email: "user@example.com",
		},
		{
			name:  "tagged address",
			email: "first.last+waitlist@sub.example.co",
		},
		{
			name:    "empty",
			email:   "",
			wantErr: true,
		},
		{
			name:    "missing at sign",
			email:   "userexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain segment",
			email:   "user@example",
			wantErr: true,
		},
		{
			name:    "empty domain before dot",
			email:   "user@.com",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "contains whitespace",
			email:   "user name@example.com",
			wantErr: true,
		},
		{
			name:    "exceeds length ceiling",
			email:   strings.Repeat("a", 250) + "@e.co",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    string
		wantErr bool
	}{
		{
			name:   "bare national number",
			raw:    "2125550123",
			region: "US",
			want:   "+12125550123",
		},
		{
			name:   "already e164",
			raw:    "+12125550123",
			region: "US",
			want:   "+12125550123",
		},
		{
			name:   "formatted national number",
			raw:    "(212) 555-0123",
			region: "US",
			want:   "+12125550123",
		},
		{
			name:   "foreign number with country code",
			raw:    "+44 20 7946 0958",
			region: "US",
			want:   "+442079460958",
		},
		{
			name:   "surrounding whitespace",
			raw:    "  2125550123  ",
			region: "US",
			want:   "+12125550123",
		},
		{
			name:    "too short",
			raw:     "123",
			region:  "US",
			wantErr: true,
		},
		{
			name:    "too long",
			raw:     "21255501234567",
			region:  "US",
			wantErr: true,
		},
		{
			name:    "not a number",
			raw:     "call-me-maybe",
			region:  "US",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			region:  "US",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
