// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func TestRouterRejectsDuplicateRoute(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	require.NoError(r.AddRouter("/ext/changeback", "", okHandler))
	require.NoError(r.AddRouter("/ext/changeback", "/ws", okHandler))
	require.ErrorIs(r.AddRouter("/ext/changeback", "", okHandler), errRouteExists)

	_, ok := r.GetHandler("/ext/changeback", "/ws")
	require.True(ok)
	_, ok = r.GetHandler("/ext/metrics", "")
	require.False(ok)
}

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		host     string
		expected int
	}{
		{
			name:     "ip",
			allowed:  []string{"localhost"},
			host:     "127.0.0.1:9650",
			expected: http.StatusOK,
		},
		{
			name:     "allowed host",
			allowed:  []string{"localhost"},
			host:     "LOCALHOST:9650",
			expected: http.StatusOK,
		},
		{
			name:     "unknown host",
			allowed:  []string{"localhost"},
			host:     "example.com",
			expected: http.StatusForbidden,
		},
		{
			name:     "wildcard",
			allowed:  []string{"localhost", wildcard},
			host:     "example.com",
			expected: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			w := httptest.NewRecorder()
			filterInvalidHosts(okHandler, tt.allowed).ServeHTTP(w, req)
			require.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestServerDispatch(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := New(
		logging.NoLog{},
		listener,
		NewDefaultHTTPConfig(),
		[]string{"*"},
		[]string{"localhost"},
		time.Second,
	)
	require.NoError(s.AddRoute(okHandler, "changeback", ""))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s%s/changeback", s.Addr(), BaseURL))
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusOK, resp.StatusCode)
	require.Equal("ok", string(body))

	resp, err = http.Get(fmt.Sprintf("http://%s%s/missing", s.Addr(), BaseURL))
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal(http.StatusNotFound, resp.StatusCode)

	require.NoError(s.Shutdown())
	require.True(errors.Is(<-done, http.ErrServerClosed))
}
