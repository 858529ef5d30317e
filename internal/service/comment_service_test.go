package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
)

func TestCommentContentLimitCountsRunes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "at the limit", content: strings.Repeat("a", maxCommentLength)},
		{name: "over the limit", content: strings.Repeat("a", maxCommentLength+1), wantErr: true},
		{name: "multibyte at the limit", content: strings.Repeat("界", maxCommentLength)},
		{name: "multibyte over the limit", content: strings.Repeat("界", maxCommentLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateContent(tt.content)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}
