package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suagrafica/portal/pkg/tokens"
)

type staticResolver map[string]uint

var errUnknown = errors.New("unknown session")

func (r staticResolver) ResolveAdmin(_ context.Context, token string) (uint, error) {
	if id, ok := r[token]; ok {
		return id, nil
	}
	return 0, errUnknown
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBearerToken(t *testing.T) {
	t.Parallel()
	for header, want := range map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"abc":          "",
		"":             "",
	} {
		c, _ := newContext(header)
		assert.Equal(t, want, BearerToken(c), header)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()
	mw := RequireAdmin(staticResolver{"good": 4})
	ok := func(c echo.Context) error {
		_, found := AdminID(c)
		require.True(t, found)
		return c.String(http.StatusOK, "ok")
	}

	c, rec := newContext("Bearer good")
	require.NoError(t, mw(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	id, _ := AdminID(c)
	assert.EqualValues(t, 4, id)

	c, _ = newContext("Bearer bad")
	assert.ErrorIs(t, mw(ok)(c), errUnknown)

	c, _ = newContext("")
	err := mw(ok)(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireCustomer(t *testing.T) {
	t.Parallel()
	secret := []byte("customer-secret")
	mw := RequireCustomer(secret)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	token, _, err := tokens.IssueCustomerToken(secret, 12, time.Minute)
	require.NoError(t, err)

	c, rec := newContext("Bearer " + token)
	require.NoError(t, mw(ok)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	id, found := CustomerID(c)
	require.True(t, found)
	assert.EqualValues(t, 12, id)

	forged, _, err := tokens.IssueCustomerToken([]byte("other"), 12, time.Minute)
	require.NoError(t, err)
	for _, h := range []string{"Bearer " + forged, "Bearer anything", ""} {
		c, _ := newContext(h)
		err := mw(ok)(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, h)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}
