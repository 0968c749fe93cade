package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"barangay/internal/http/middleware"
	"barangay/internal/identity"
	"barangay/internal/model"
	"barangay/internal/service"
	"barangay/internal/settings"
)

// Tokens issues bearer tokens at login and verifies them on protected routes.
type Tokens interface {
	TokenIssuer
	middleware.TokenParser
}

// Deps are the collaborators the HTTP layer is wired to. DB may be nil when
// the service runs without PostgreSQL.
type Deps struct {
	DB       *sql.DB
	Requests service.RequestService
	Identity identity.Service
	Tokens   Tokens
	Board    CommunityBoard
	Settings *settings.AppSettings
}

// RegisterRoutes attaches every API route to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/login", Login(d.Identity, d.Tokens))
	app.Post("/auth/register", Register(d.Identity, d.Tokens))

	app.Get("/announcements", ListAnnouncements(d.Board))
	app.Get("/directory", ListDirectory(d.Board))
	app.Get("/directory/emergency", ListEmergencyContacts(d.Board))
	app.Get("/settings", GetSettings(d.Settings))

	// Guards go on each route rather than on the groups: a group's Use
	// matches by plain prefix, so "/me" would also catch "/metrics".
	auth := middleware.Authenticate(d.Tokens)
	resident := guard(auth, middleware.RequireRole(model.RoleResident))
	staff := guard(auth, middleware.RequireRole(model.RoleAdmin))

	me := app.Group("/me")
	me.Get("/profile", resident(GetProfile(d.Identity))...)
	me.Put("/profile", resident(UpdateProfile(d.Identity))...)
	me.Post("/household", resident(AddHouseholdMember(d.Identity))...)
	me.Get("/stats", resident(MyStats(d.Requests))...)
	me.Get("/requests", resident(ListMyRequests(d.Requests))...)
	me.Post("/requests", resident(CreateRequest(d.Requests))...)
	me.Get("/requests/:id", resident(GetRequest(d.Requests))...)
	me.Delete("/requests/:id", resident(CancelRequest(d.Requests))...)
	me.Post("/requests/:id/payment", resident(SubmitPayment(d.Requests))...)
	me.Get("/requests/:id/download", resident(DownloadDocument(d.Requests))...)

	admin := app.Group("/admin")
	admin.Get("/dashboard", staff(Dashboard(d.Requests))...)
	admin.Get("/requests", staff(ListRequests(d.Requests))...)
	admin.Get("/requests/:id", staff(GetRequest(d.Requests))...)
	admin.Post("/requests/:id/:action", staff(TransitionRequest(d.Requests))...)
	admin.Get("/payments", staff(PaymentQueue(d.Requests))...)
	admin.Get("/payments/:id/proof", staff(PaymentProof(d.Requests))...)
	admin.Post("/payments/:id/:decision", staff(ReviewPayment(d.Requests))...)
	admin.Get("/residents", staff(ListResidents(d.Identity))...)
	admin.Get("/residents/stats", staff(ResidentStats(d.Identity))...)
	admin.Post("/residents/:id/verify", staff(VerifyResident(d.Identity))...)
}

func guard(mw ...fiber.Handler) func(fiber.Handler) []fiber.Handler {
	return func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler(nil), mw...), h)
	}
}
