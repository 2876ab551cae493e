package validation

import "strings"

// allowedImageTypes are the content types accepted for post attachments.
// The bytes themselves are never inspected or transformed.
var allowedImageTypes = map[string]struct{}{
	"image/gif":  {},
	"image/jpeg": {},
	"image/png":  {},
}

const maxPostTextLen = 50000

// PostForm carries the submitted fields of a post create/edit form.
type PostForm struct {
	Text      string
	GroupSlug string
}

// ValidatePostForm validates a post form and returns a field-keyed error
// set. groupExists resolves whether the referenced group slug is known; it
// is only consulted when a slug was submitted.
func ValidatePostForm(form PostForm, groupExists func(slug string) (bool, error)) (map[string]string, error) {
	fields := map[string]string{}

	if strings.TrimSpace(form.Text) == "" {
		fields["text"] = "Text is required"
	} else if len(form.Text) > maxPostTextLen {
		fields["text"] = "Text too long"
	}

	if form.GroupSlug != "" {
		ok, err := groupExists(form.GroupSlug)
		if err != nil {
			return nil, err
		}
		if !ok {
			fields["group"] = "Unknown group"
		}
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

// ValidateCommentText validates a comment body.
func ValidateCommentText(text string) map[string]string {
	if strings.TrimSpace(text) == "" {
		return map[string]string{"text": "Text is required"}
	}
	return nil
}

// ValidateImageContentType checks that an uploaded attachment declares an
// accepted image content type and returns the normalized type.
func ValidateImageContentType(contentType string) (string, map[string]string) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if _, ok := allowedImageTypes[ct]; !ok {
		return "", map[string]string{"image": "Unsupported image type"}
	}
	return ct, nil
}

// ValidateGroupForm validates a group create form.
func ValidateGroupForm(title, slug string) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "Title is required"
	}
	if !isURLSafeSlug(slug) {
		fields["slug"] = "Slug must be non-empty, lowercase letters, digits and hyphens"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func isURLSafeSlug(slug string) bool {
	if slug == "" || len(slug) > 50 {
		return false
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return slug[0] != '-' && slug[len(slug)-1] != '-'
}
