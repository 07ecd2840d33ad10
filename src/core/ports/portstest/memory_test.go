package portstest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightbnb/src/core/domain"
)

func TestStore_LimitMatchesRepositories(t *testing.T) {
	s := NewStore()
	for i := 0; i < domain.DefaultListLimit+2; i++ {
		s.AddProperty(domain.Property{OwnerID: 1, City: "Austin", CostPerNight: int64(i)})
	}
	ctx := context.Background()

	got, err := s.SearchProperties(ctx, domain.PropertyFilter{}, 0)
	require.NoError(t, err)
	assert.Len(t, got, domain.DefaultListLimit)

	_, err = s.SearchProperties(ctx, domain.PropertyFilter{}, -1)
	assert.True(t, domain.IsValidationError(err))

	_, err = s.ListReservationsForGuest(ctx, 1, domain.MaxListLimit+1)
	assert.True(t, domain.IsValidationError(err))
}
