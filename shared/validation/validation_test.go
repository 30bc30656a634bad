package validation

import (
	"testing"

	sharederrors "github.com/itchan-dev/chatkit/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaURL(t *testing.T) {
	testCases := []struct {
		url   string
		valid bool
	}{
		{"attachment://image.png", true},
		{"attachment://SPOILER_report.final.pdf", true},
		{"https://cdn.example.com/a.png", true},
		{"http://example.com/a", true},
		{"", false},
		{"attachment://image", false},
		{"attachment://dir/image.png", false},
		{"attachment://.png", false},
		{"ftp://example.com/a.png", false},
		{"https://", false},
		{"image.png", false},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			err := MediaURL(tc.url)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidMediaURL)
			}
		})
	}
}

func TestAttachmentURLRejectsRemote(t *testing.T) {
	assert.NoError(t, AttachmentURL("attachment://a.txt"))
	assert.ErrorIs(t, AttachmentURL("https://cdn.example.com/a.txt"), ErrInvalidMediaURL)
}

func TestRow(t *testing.T) {
	row := func(i int) *int { return &i }

	assert.NoError(t, Row(nil))
	assert.NoError(t, Row(row(0)))
	assert.NoError(t, Row(row(9)))
	assert.ErrorIs(t, Row(row(-1)), ErrInvalidRow)
	assert.ErrorIs(t, Row(row(10)), ErrInvalidRow)
}

type media struct {
	URL string `json:"url" validate:"required,media_url"`
}

type payload struct {
	Media   *media `json:"file" validate:"required"`
	Comment string `json:"comment" validate:"max=5"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&payload{Media: &media{URL: "attachment://a.png"}}))
	})

	t.Run("nested custom tag uses wire names", func(t *testing.T) {
		err := Struct(&payload{Media: &media{URL: "nope"}})
		verr, ok := sharederrors.As[*sharederrors.ValidationError](err)
		require.True(t, ok)
		assert.Equal(t, "file.url", verr.Field)
		assert.Contains(t, verr.Message, "attachment://")
	})

	t.Run("required pointer", func(t *testing.T) {
		err := Struct(&payload{})
		verr, ok := sharederrors.As[*sharederrors.ValidationError](err)
		require.True(t, ok)
		assert.Equal(t, "file", verr.Field)
		assert.Equal(t, "is required", verr.Message)
	})

	t.Run("max length", func(t *testing.T) {
		err := Struct(&payload{Media: &media{URL: "attachment://a.png"}, Comment: "too long"})
		verr, ok := sharederrors.As[*sharederrors.ValidationError](err)
		require.True(t, ok)
		assert.Equal(t, "comment", verr.Field)
		assert.Equal(t, "must be at most 5", verr.Message)
	})
}

func TestStructOnlyKnowsMediaURLTag(t *testing.T) {
	type localOnly struct {
		URL string `validate:"attachment_url"`
	}
	assert.Panics(t, func() { _ = Struct(&localOnly{URL: "attachment://a.png"}) })
}
