package validation

import (
	"strings"
	"testing"

	"reminders-server/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogin(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"username":"admin","password":"certamen123"}`},
		{name: "extra fields ignored", body: `{"username":"admin","password":"x","remember":true}`},
		{name: "numeric username", body: `{"username":123,"password":false}`, wantErr: true},
		{name: "boolean password", body: `{"username":"admin","password":false}`, wantErr: true},
		{name: "empty username", body: `{"username":"","password":"x"}`, wantErr: true},
		{name: "empty password", body: `{"username":"admin","password":""}`, wantErr: true},
		{name: "missing password", body: `{"username":"admin"}`, wantErr: true},
		{name: "null username", body: `{"username":null,"password":"x"}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "array body", body: `[]`, wantErr: true},
		{name: "null body", body: `null`, wantErr: true},
		{name: "malformed json", body: `{"username":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeLogin(strings.NewReader(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", req.Username)
		})
	}
}

func TestDecodeCreateReminder(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantErr       bool
		wantContent   string
		wantImportant bool
	}{
		{name: "content and important", body: `{"content":"Item 1","important":true}`, wantContent: "Item 1", wantImportant: true},
		{name: "important defaults to false", body: `{"content":"Item 2"}`, wantContent: "Item 2"},
		{name: "max length", body: `{"content":"` + strings.Repeat("a", 120) + `"}`, wantContent: strings.Repeat("a", 120)},
		{name: "multibyte counted as characters", body: `{"content":"` + strings.Repeat("ñ", 120) + `"}`, wantContent: strings.Repeat("ñ", 120)},
		{name: "too long", body: `{"content":"` + strings.Repeat("a", 121) + `"}`, wantErr: true},
		{name: "empty content", body: `{"content":""}`, wantErr: true},
		{name: "missing content", body: `{"important":true}`, wantErr: true},
		{name: "non-string content", body: `{"content":false,"important":true}`, wantErr: true},
		{name: "numeric important", body: `{"content":"Item 4","important":26}`, wantErr: true},
		{name: "string important", body: `{"content":"Item 4","important":"true"}`, wantErr: true},
		{name: "null important", body: `{"content":"Item 4","important":null}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeCreateReminder(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, req.Content)
			assert.Equal(t, tt.wantImportant, req.Important)
		})
	}
}

func TestDecodeUpdateReminder(t *testing.T) {
	t.Run("content only", func(t *testing.T) {
		req, err := DecodeUpdateReminder(strings.NewReader(`{"content":"Item 6 UPDATED"}`))
		require.NoError(t, err)
		require.NotNil(t, req.Content)
		assert.Equal(t, "Item 6 UPDATED", *req.Content)
		assert.Nil(t, req.Important)
	})

	t.Run("important only", func(t *testing.T) {
		req, err := DecodeUpdateReminder(strings.NewReader(`{"important":false}`))
		require.NoError(t, err)
		assert.Nil(t, req.Content)
		require.NotNil(t, req.Important)
		assert.False(t, *req.Important)
	})

	t.Run("empty object", func(t *testing.T) {
		req, err := DecodeUpdateReminder(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.True(t, req.IsEmpty())
	})

	for name, body := range map[string]string{
		"numeric content":  `{"content":123}`,
		"string important": `{"important":"HELLO WORLD!"}`,
		"empty content":    `{"content":""}`,
		"too long content": `{"content":"` + strings.Repeat("x", 121) + `"}`,
		"null content":     `{"content":null}`,
		"not an object":    `"content"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeUpdateReminder(strings.NewReader(body))
			assert.ErrorIs(t, err, common.ErrBadRequest)
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "content must be a string", (&Error{Field: "content", Message: "must be a string"}).Error())
	assert.Equal(t, "request body must be a JSON object", (&Error{Message: "request body must be a JSON object"}).Error())
}
