package domain_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/abdidvp/flooring/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestReferenceErrorsWrapReferenceNotFound(t *testing.T) {
	assert.ErrorIs(t, domain.ErrInvalidProductType, domain.ErrReferenceNotFound)
	assert.ErrorIs(t, domain.ErrInvalidState, domain.ErrReferenceNotFound)
	assert.NotErrorIs(t, domain.ErrInvalidState, domain.ErrInvalidProductType)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("adding order: %w", &domain.ValidationError{Field: "area", Reason: "too small"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid area: too small")
}

func TestOrderNotFoundError(t *testing.T) {
	err := &domain.OrderNotFoundError{Number: 999}
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, "order 999 not found", err.Error())
}

func TestPersistenceError_UnwrapsBoth(t *testing.T) {
	err := &domain.PersistenceError{Op: "write", Path: "/x/Taxes.txt", Err: fs.ErrPermission}
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "write /x/Taxes.txt")
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, domain.IsClientError(domain.ErrInvalidState))
	assert.True(t, domain.IsClientError(domain.ErrDuplicateKey))
	assert.False(t, domain.IsClientError(domain.ErrPersistence))
	assert.False(t, domain.IsClientError(errors.New("boom")))

	assert.True(t, domain.IsNotFound(&domain.OrderNotFoundError{Number: 1}))
	assert.True(t, domain.IsNotFound(domain.ErrInvalidProductType))
	assert.False(t, domain.IsNotFound(domain.ErrInvalidInput))
}
