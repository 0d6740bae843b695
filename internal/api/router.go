package api

import (
	"github.com/gofiber/fiber/v2"
	"walle.finance/internal/api/middleware"
	"walle.finance/internal/auth"
	"walle.finance/internal/domain"
)

// Router registers all business routes.
type Router struct {
	app    *fiber.App
	tokens *auth.TokenService

	users        domain.UserService
	transactions domain.TransactionService
}

func NewRouter(app *fiber.App, tokens *auth.TokenService, users domain.UserService, transactions domain.TransactionService) *Router {
	return &Router{
		app:          app,
		tokens:       tokens,
		users:        users,
		transactions: transactions,
	}
}

func (r *Router) RegisterRoutes() {
	userHandler := NewUserHandler(r.users)
	txHandler := NewTransactionHandler(r.transactions)

	guard := middleware.JWTAuth(r.tokens)

	// Public account routes
	user := r.app.Group("/user")
	user.Post("/register", userHandler.Register)
	user.Post("/login", userHandler.Login)
	user.Post("/forgot-password", userHandler.ForgotPassword)
	user.Post("/reset-password", userHandler.ResetPassword)
	user.Get("/activate-account", userHandler.Activate)

	// Authenticated profile updates
	update := user.Group("/update", guard)
	update.Put("/fullname", userHandler.UpdateFullName)
	update.Put("/email", userHandler.UpdateEmail)
	update.Put("/username", userHandler.UpdateUsername)
	update.Put("/password", userHandler.UpdatePassword)

	// Authenticated transaction CRUD, scoped to the caller
	tx := r.app.Group("/transaction", guard)
	tx.Post("/create", txHandler.Create)
	tx.Put("/edit/:id", txHandler.Update)
	tx.Delete("/delete/:id", txHandler.Delete)
	tx.Get("/", txHandler.List)
}
