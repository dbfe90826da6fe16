package repository

import (
	"errors"
	"testing"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascade_RemovesChildrenBeforeParent(t *testing.T) {
	children := func(o Ownership, parentID int64) ([]int64, error) {
		switch {
		case o.Child == entity.KindProductVariant && parentID == 1:
			return []int64{10}, nil
		case o.Child == entity.KindVariantAttribute && parentID == 10:
			return []int64{100, 101}, nil
		}
		return nil, nil
	}

	var order []entity.Ref
	remove := func(ref entity.Ref) error {
		order = append(order, ref)
		return nil
	}

	removed, err := Cascade(Ownerships, entity.Ref{Kind: entity.KindProduct, ID: 1}, children, remove)

	require.NoError(t, err)
	assert.Equal(t, []entity.Ref{
		{Kind: entity.KindVariantAttribute, ID: 100},
		{Kind: entity.KindVariantAttribute, ID: 101},
		{Kind: entity.KindProductVariant, ID: 10},
		{Kind: entity.KindProduct, ID: 1},
	}, removed)
	assert.Equal(t, removed, order)
}

func TestCascade_NoOwnershipForCategory(t *testing.T) {
	called := false
	children := func(o Ownership, parentID int64) ([]int64, error) {
		called = true
		return nil, nil
	}

	removed, err := Cascade(Ownerships, entity.Ref{Kind: entity.KindCategory, ID: 3}, children, func(entity.Ref) error { return nil })

	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, []entity.Ref{{Kind: entity.KindCategory, ID: 3}}, removed)
}

func TestCascade_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	children := func(o Ownership, parentID int64) ([]int64, error) {
		return nil, boom
	}

	removed, err := Cascade(Ownerships, entity.Ref{Kind: entity.KindReview, ID: 1}, children, func(entity.Ref) error { return nil })

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, removed)
}

func TestNotFound_WrapsSentinel(t *testing.T) {
	err := NotFound(entity.KindCoupon)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrCouponNotFound)
	assert.Equal(t, "coupon not found", err.Error())
}

func TestDuplicateKey_WrapsSentinel(t *testing.T) {
	err := DuplicateKey(entity.KindCoupon, "code", "SUMMER2025")

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "SUMMER2025")
}
