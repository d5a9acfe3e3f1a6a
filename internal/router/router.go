package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/car-rental/internal/handler"    // handlers that implement business logic
	"github.com/iliyamo/car-rental/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/car-rental/internal/model"      // role names shared with the credential tables
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes.
// Unauthenticated operations live under /v1/auth, while the protected
// identity endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotate the refresh token and issue a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh token in the body and revokes the user's
	// sessions; it does not require a live access token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	auth.GET("/me", a.Me)
}

// RegisterFleet registers the administrator fleet-management routes.
// Every route requires a valid access token carrying the ADMIN role.
func RegisterFleet(e *echo.Echo, f *handler.FleetHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/cars", f.AddCar)
	g.GET("/cars", f.ListFleet)
	g.PUT("/cars/:id", f.UpdateCar)
	g.DELETE("/cars/:id", f.RemoveCar)
	// Manual return transition: the only way a rented car becomes
	// Available again.
	g.POST("/cars/:id/release", f.ReleaseCar)
	// Global booking review for administrators.
	g.GET("/bookings", f.ListAllBookings)
}

// RegisterRental registers the customer-facing browse and booking
// routes.  The available-cars listing is public (guests can browse
// before registering) and sits behind the Redis response cache; the
// booking endpoints require the CUSTOMER role.
func RegisterRental(e *echo.Echo, r *handler.RentalHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	e.GET("/v1/cars/available", r.ListAvailableCars, cacheMW)

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer))
	g.POST("/bookings", r.CreateBooking)
	g.GET("/bookings/my", r.ListMyBookings)
}
