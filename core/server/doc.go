// Package server wraps http.Server with graceful shutdown and
// environment-driven configuration.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// A Server is single-use: once stopped it cannot be started again.
// TLS is served from a certificate and key file when Config sets both.
package server
