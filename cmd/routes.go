package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	apiMiddleware := standardMiddleware.Append(makeResponseJSON)
	contactMiddleware := apiMiddleware.Append(app.rateLimit)
	pageMiddleware := standardMiddleware.Append(app.routeGuard)

	mux := pat.New()

	// Listings
	mux.Post("/api/search", apiMiddleware.ThenFunc(app.searchHandler.Search))
	mux.Post("/api/property-detail", apiMiddleware.ThenFunc(app.propertyHandler.Detail))
	mux.Post("/api/contact", contactMiddleware.ThenFunc(app.contactHandler.Submit))

	// Auth
	mux.Post("/api/auth/login", apiMiddleware.ThenFunc(app.authHandler.Login))
	mux.Post("/api/auth/register", apiMiddleware.ThenFunc(app.authHandler.Register))
	mux.Post("/api/auth/logout", apiMiddleware.ThenFunc(app.authHandler.Logout))
	mux.Get("/api/auth/session", apiMiddleware.ThenFunc(app.authHandler.Session))

	// Pages: trailing slash makes pat match by prefix, so every GET that is
	// not an API route lands in the guard.
	mux.Get("/", pageMiddleware.ThenFunc(app.pageHandler))

	return mux
}
