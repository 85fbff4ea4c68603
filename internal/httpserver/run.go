package httpserver

import (
	"context"
	"fmt"
)

// Run maps all routes and starts listening. Blocks until the server stops.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("failed to map handlers: %w", err)
	}

	srv.l.Infof(context.Background(), "HTTP server listening on :%d (mode=%s)", srv.port, srv.mode)
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
