package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
)

func TestTweetContentLimitCountsRunes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "at the limit", content: strings.Repeat("a", maxTweetLength)},
		{name: "over the limit", content: strings.Repeat("a", maxTweetLength+1), wantErr: true},
		// Multibyte text counts by character, not by encoded byte.
		{name: "multibyte at the limit", content: strings.Repeat("ñ", maxTweetLength)},
		{name: "multibyte over the limit", content: strings.Repeat("ñ", maxTweetLength+1), wantErr: true},
		{name: "blank", content: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateTweetContent(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}
