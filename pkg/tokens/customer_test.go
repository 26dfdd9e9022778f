package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCustomerToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, exp, err := IssueCustomerToken(secret, 42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := CustomerClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, claims.Role)

	id, err := claims.CustomerID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestCustomerClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	token, _, err := IssueCustomerToken([]byte("secret-a"), 1, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "wrong secret", token: token, secret: []byte("secret-b")},
		{name: "garbage", token: "not-a-jwt", secret: []byte("secret-a")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := CustomerClaimsFromToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestCustomerClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, _, err := IssueCustomerToken(secret, 1, -time.Minute)
	require.NoError(t, err)

	_, err = CustomerClaimsFromToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
