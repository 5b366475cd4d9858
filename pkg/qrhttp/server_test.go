package qrhttp_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/qrhttp"
)

func TestServer_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context ends", func(t *testing.T) {
		t.Parallel()
		srv := qrhttp.NewServer(qrhttp.Config{Addr: "127.0.0.1:0"}, http.NotFoundHandler(), nil)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		require.NoError(t, srv.Run(ctx))
		assert.NoError(t, srv.Shutdown(context.Background()))
	})

	t.Run("reports listen errors", func(t *testing.T) {
		t.Parallel()
		srv := qrhttp.NewServer(qrhttp.Config{Addr: "bad-address"}, http.NotFoundHandler(), nil)
		err := srv.Run(context.Background())
		assert.ErrorIs(t, err, qrhttp.ErrStart)
	})
}
