package validators

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/anonto42/quillpost/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CategoryTag(t *testing.T) {
	v := NewValidator()

	ok := models.CreatePostRequest{Title: "Hello", Category: "Technology", Content: "body"}
	assert.NoError(t, v.Validate(&ok))

	bad := models.CreatePostRequest{Title: "Hello", Category: "gardening", Content: "body"}
	err := v.Validate(&bad)
	require.Error(t, err)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Unknown category", he.Message)
}

func TestValidate_UpdateAllowsEmptyCategory(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&models.UpdatePostRequest{Title: "New title"}))
}

func TestValidate_SignUp(t *testing.T) {
	v := NewValidator()

	req := models.SignUpRequest{Email: "not-an-email", Password: "short", Username: "ab", FullName: ""}
	assert.Error(t, v.Validate(&req))

	req = models.SignUpRequest{Email: "ada@example.com", Password: "correct-horse", Username: "ada", FullName: "Ada Lovelace"}
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_Messages(t *testing.T) {
	v := NewValidator()
	avatar := "not a url"

	tests := []struct {
		name string
		req  interface{}
		want string
	}{
		{"missing title", &models.CreatePostRequest{Category: "art", Content: "body"}, "Title is required"},
		{"bad email", &models.SignInRequest{Email: "nope", Password: "x"}, "Please enter a valid email"},
		{"short password", &models.SignUpRequest{Email: "ada@example.com", Password: "short", Username: "ada", FullName: "Ada"}, "Password must be at least 8 characters"},
		{"long username", &models.UpdateProfileRequest{Username: strings.Repeat("a", 51)}, "Username must be at most 50 characters"},
		{"symbols in username", &models.UpdateProfileRequest{Username: "ada!"}, "Username may only contain letters and numbers"},
		{"bad avatar", &models.UpdateProfileRequest{AvatarURL: &avatar}, "Avatar url must be a valid URL"},
		{"missing confirmation", &models.ChangePasswordRequest{NewPassword: "newpassword1"}, "Confirm password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Equal(t, tt.want, he.Message)
			assert.NotContains(t, he.Message, "Key:")
		})
	}
}
