package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupAlwaysExists(string) (bool, error) { return true, nil }
func groupNeverExists(string) (bool, error)  { return false, nil }

func TestValidatePostForm(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		fields, err := ValidatePostForm(PostForm{Text: "hello", GroupSlug: "go"}, groupAlwaysExists)
		require.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("Empty Text", func(t *testing.T) {
		fields, err := ValidatePostForm(PostForm{Text: "   "}, groupAlwaysExists)
		require.NoError(t, err)
		assert.Contains(t, fields, "text")
	})

	t.Run("Unknown Group", func(t *testing.T) {
		fields, err := ValidatePostForm(PostForm{Text: "hello", GroupSlug: "nope"}, groupNeverExists)
		require.NoError(t, err)
		assert.Contains(t, fields, "group")
	})

	t.Run("No Group Lookup Without Slug", func(t *testing.T) {
		called := false
		fields, err := ValidatePostForm(PostForm{Text: "hello"}, func(string) (bool, error) {
			called = true
			return false, nil
		})
		require.NoError(t, err)
		assert.Nil(t, fields)
		assert.False(t, called)
	})
}

func TestValidateCommentText(t *testing.T) {
	assert.Nil(t, ValidateCommentText("nice post"))
	assert.Contains(t, ValidateCommentText(""), "text")
	assert.Contains(t, ValidateCommentText("  \n"), "text")
}

func TestValidateImageContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		wantErr     bool
	}{
		{"GIF", "image/gif", false},
		{"JPEG", "image/jpeg", false},
		{"PNG", "image/png", false},
		{"With Parameters", "image/png; charset=binary", false},
		{"Mixed Case", "Image/PNG", false},
		{"Text", "text/plain", true},
		{"Empty", "", true},
		{"WebP Not Accepted", "image/webp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, fields := ValidateImageContentType(tt.contentType)
			if tt.wantErr {
				assert.Contains(t, fields, "image")
				assert.Empty(t, ct)
			} else {
				assert.Nil(t, fields)
				assert.True(t, strings.HasPrefix(ct, "image/"))
			}
		})
	}
}

func TestValidateGroupForm(t *testing.T) {
	assert.Nil(t, ValidateGroupForm("Go Developers", "go-dev"))
	assert.Contains(t, ValidateGroupForm("", "go-dev"), "title")
	assert.Contains(t, ValidateGroupForm("Go", "Go Dev"), "slug")
	assert.Contains(t, ValidateGroupForm("Go", "-go"), "slug")
	assert.Contains(t, ValidateGroupForm("Go", ""), "slug")
}
