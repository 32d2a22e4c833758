package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ngPassword!", false},
		{"too short", "Sh0rt!", true},
		{"too long", strings.Repeat("Aa1!", 33), true},
		{"no uppercase", "weakpassword1!", true},
		{"no lowercase", "WEAKPASSWORD1!", true},
		{"no digit", "WeakPassword!!", true},
		{"no special", "WeakPassword11", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "inky_writer", false},
		{"valid with hyphen", "inky-writer", false},
		{"minimum length", "abc", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"invalid characters", "inky writer", true},
		{"leading underscore", "_inky", true},
		{"trailing hyphen", "inky-", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid subdomain", "user@mail.example.co.uk", false},
		{"valid plus tag", "user+tag@example.com", false},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePostTitle(t *testing.T) {
	assert.NoError(t, ValidatePostTitle("A reasonable title"))
	assert.Error(t, ValidatePostTitle(""))
	assert.Error(t, ValidatePostTitle(strings.Repeat("x", maxTitleLen+1)))
	assert.NoError(t, ValidatePostTitle(strings.Repeat("x", maxTitleLen)))
}

func TestValidatePostContent(t *testing.T) {
	assert.NoError(t, ValidatePostContent("body"))
	assert.Error(t, ValidatePostContent(""))
	assert.Error(t, ValidatePostContent(strings.Repeat("x", maxContentLen+1)))
}

func TestValidateCommentBody(t *testing.T) {
	assert.NoError(t, ValidateCommentBody("nice post"))
	assert.Error(t, ValidateCommentBody(""))
	assert.Error(t, ValidateCommentBody(strings.Repeat("x", maxCommentLen+1)))
}
