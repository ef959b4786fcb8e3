// Package bootstrap runs the service lifecycle: config validation, logger
// setup, ordered component start, lifecycle hooks, the startup summary and
// graceful shutdown on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.OnStop(shutdownTracer)
//	err = app.Run(ctx)
package bootstrap
