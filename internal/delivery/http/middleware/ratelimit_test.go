package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Limit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler(rr, req)
		return rr.Code
	}

	// Burst of 2 from one IP, then throttled.
	require.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}
