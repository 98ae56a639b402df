package entity_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"mascot-backend/internal/domain/entity"
)

func TestCommandError_IsKindAndCause(t *testing.T) {
	err := entity.NewError(entity.ErrNetwork, "fetch rss", io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, entity.ErrNetwork)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, entity.ErrParseFailed)
	assert.Equal(t, "fetch rss: network error: unexpected EOF", err.Error())
}

func TestNewStatusError(t *testing.T) {
	err := entity.NewStatusError("qiita", 404, "Not Found")

	assert.ErrorIs(t, err, entity.ErrHTTPStatus)
	assert.Equal(t, 404, err.StatusCode)
	assert.Equal(t, "qiita: unexpected http status 404: Not Found", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"parse", entity.NewError(entity.ErrParseFailed, "rss", nil), entity.ErrParseFailed},
		{"wrapped cancel", errors.Join(errors.New("ctx"), entity.NewError(entity.ErrUserCancelled, "dialog", nil)), entity.ErrUserCancelled},
		{"unclassified", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.KindOf(tt.err))
		})
	}
}
