// Package server provides the optional admin HTTP server of the worker.
//
// The IPC channel is stdin/stdout; this server only exposes read-only
// introspection next to it. It is started when a non-zero HTTP port is
// configured.
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                      Admin HTTP Server                        │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging, "http" logger)         │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery)                │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /metrics    promhttp handler over the given gatherer         │
//	│  /api/v1     handlers registered via callback                 │
//	└───────────────────────────────────────────────────────────────┘
//
// Server mode "prod" runs gin in release mode, "dev" in debug mode.
//
// # Lifecycle
//
//	srv, err := server.NewServer(cfg, reg, func(router *gin.RouterGroup) {
//	    handler.RegisterRoutes(router)
//	})
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("admin server failed", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(context.Background())
//
// Stop waits up to five seconds for in-flight requests.
package server
