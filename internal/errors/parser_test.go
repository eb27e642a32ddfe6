package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		context    string
		wantCode   string
		wantStatus int
	}{
		{
			name:       "record not found",
			err:        fmt.Errorf("load: %w", gorm.ErrRecordNotFound),
			context:    "get product",
			wantCode:   ResourceNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "sqlite duplicate email",
			err:        errors.New("UNIQUE constraint failed: users.email"),
			context:    "create user",
			wantCode:   AuthEmailAlreadyExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "postgres duplicate title",
			err:        errors.New(`ERROR: duplicate key value violates unique constraint "idx_blog_posts_title" (SQLSTATE 23505)`),
			context:    "create post",
			wantCode:   PostTitleExists,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "open cart race",
			err:        errors.New("UNIQUE constraint failed: purchases.user_id"),
			context:    "add to cart",
			wantCode:   ResourceConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "foreign key",
			err:        errors.New("FOREIGN KEY constraint failed"),
			context:    "delete user",
			wantCode:   ResourceConflict,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "not null",
			err:        errors.New("NOT NULL constraint failed: products.name"),
			context:    "create product",
			wantCode:   ValidationRequired,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			context:    "delete product",
			wantCode:   InternalServerError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestParseError_ContextMessages(t *testing.T) {
	assert.Equal(t, "Product not found.", ParseError(gorm.ErrRecordNotFound, "edit product").Message)
	assert.Equal(t, "Could not delete, please try again later.", ParseError(errors.New("x"), "delete post").Message)
}
