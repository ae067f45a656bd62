package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Parallel()

	categoryID := int64(3)
	zero := 0
	negative := -1
	badCategory := int64(0)

	tests := []struct {
		name       string
		prodName   string
		price      decimal.Decimal
		stock      *int
		categoryID *int64
		wantErr    error
		wantStock  int
	}{
		{
			name:       "defaults stock when omitted",
			prodName:   "Plain T-Shirt",
			price:      decimal.RequireFromString("14.99"),
			categoryID: &categoryID,
			wantStock:  DefaultStock,
		},
		{
			name:      "keeps explicit zero stock",
			prodName:  "Running Sneakers",
			price:     decimal.RequireFromString("90"),
			stock:     &zero,
			wantStock: 0,
		},
		{
			name:     "rejects blank name",
			prodName: "   ",
			price:    decimal.NewFromInt(1),
			wantErr:  ErrEmptyName,
		},
		{
			name:     "rejects negative price",
			prodName: "Branded Baseball Hat",
			price:    decimal.RequireFromString("-0.01"),
			wantErr:  ErrNegativePrice,
		},
		{
			name:     "rejects negative stock",
			prodName: "Top 40 Music Compilation Vinyl Record",
			price:    decimal.NewFromInt(12),
			stock:    &negative,
			wantErr:  ErrNegativeStock,
		},
		{
			name:       "rejects non-positive category id",
			prodName:   "Cargo Shorts",
			price:      decimal.NewFromInt(30),
			categoryID: &badCategory,
			wantErr:    ErrInvalidID,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewProduct(tc.prodName, tc.price, tc.stock, tc.categoryID)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrValidation, "every validation failure should match ErrValidation")
				assert.Nil(t, p)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantStock, p.Stock)
			assert.True(t, tc.price.Equal(p.Price))
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	t.Parallel()

	err := (&Product{Name: "x", Price: decimal.NewFromInt(-5)}).Validate()

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "price", vErr.Field)
	assert.Contains(t, vErr.Error(), "price must be zero or greater")
}

func TestCategoryAndTagValidation(t *testing.T) {
	t.Parallel()

	_, err := NewCategory("")
	assert.ErrorIs(t, err, ErrEmptyName)

	c, err := NewCategory("  Shirts ")
	require.NoError(t, err)
	assert.Equal(t, "Shirts", c.Name)

	_, err = NewTag("\t")
	assert.ErrorIs(t, err, ErrValidation)

	tag, err := NewTag("rock music")
	require.NoError(t, err)
	assert.Equal(t, "rock music", tag.Name)
}

func TestValidateTagIDs(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTagIDs(nil))
	assert.NoError(t, ValidateTagIDs([]int64{1, 1, 2}))
	assert.ErrorIs(t, ValidateTagIDs([]int64{4, 0}), ErrInvalidID)
	assert.ErrorIs(t, ValidateTagIDs([]int64{-2}), ErrValidation)
}
