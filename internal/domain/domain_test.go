package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomIDGenerator(t *testing.T) {
	gen := RandomIDGenerator{}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		assert.Len(t, id, LoanIDLength)
		assert.NotContains(t, id, "-")
		seen[id] = true
	}
	// 100 draws from a 16^8 space should never repeat.
	assert.Len(t, seen, 100)
}

func TestSystemClock_Today(t *testing.T) {
	today := SystemClock{}.Today()
	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
}

func TestAddItemRequest_Validate(t *testing.T) {
	req := AddItemRequest{ID: "B001", Title: "Wings of Fire"}
	require.NoError(t, req.Validate())

	var validation *ValidationError
	assert.ErrorAs(t, (&AddItemRequest{Title: "no id"}).Validate(), &validation)
	assert.ErrorAs(t, (&AddItemRequest{ID: "no title"}).Validate(), &validation)
}

func TestRegisterPrincipalRequest_Validate(t *testing.T) {
	req := RegisterPrincipalRequest{ID: "S001", Name: "John", Secret: "pw"}
	require.NoError(t, req.Validate())
	assert.Equal(t, RoleStudent, req.Role)

	admin := RegisterPrincipalRequest{ID: "A001", Name: "Admin", Secret: "pw", Role: RoleAdmin}
	require.NoError(t, admin.Validate())
	assert.Equal(t, RoleAdmin, admin.Role)

	var validation *ValidationError
	assert.ErrorAs(t, (&RegisterPrincipalRequest{Name: "x", Secret: "y"}).Validate(), &validation)
	assert.ErrorAs(t, (&RegisterPrincipalRequest{ID: "x", Secret: "y"}).Validate(), &validation)
	assert.ErrorAs(t, (&RegisterPrincipalRequest{ID: "x", Name: "y"}).Validate(), &validation)
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	_, ok := PrincipalFromContext(ctx)
	assert.False(t, ok)

	ctx = WithPrincipal(ctx, ContextPrincipal{ID: "S001", Name: "John Doe", Role: RoleStudent})
	p, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "S001", p.ID)
}
