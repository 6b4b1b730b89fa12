package app

import "context"

type contextKey struct{}

var appContextKey = contextKey{}

// FromContext retrieves the App stored by WithApp, or nil
func FromContext(ctx context.Context) *App {
	app, ok := ctx.Value(appContextKey).(*App)
	if !ok {
		return nil
	}
	return app
}

// WithApp stores the App in ctx
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appContextKey, app)
}
