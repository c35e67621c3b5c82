package handlers

import (
	"errors"
	"log"

	"devconnector/internal/middleware"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	registrationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registration_attempts_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)
)

type AuthHandler struct {
	authService *service.AuthService
	jwtService  *service.JWTService
}

func NewAuthHandler(authService *service.AuthService, jwtService *service.JWTService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/api/users", h.Register)
	app.Post("/api/auth", h.Login)
	app.Get("/api/auth", h.CurrentUser, middleware.RequireAuth(h.jwtService))
}

func (h *AuthHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var registerRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&registerRequest); err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	token, err := h.authService.Register(c.Context(), registerRequest.Name, registerRequest.Email, registerRequest.Password)
	if err != nil {
		registrationAttempts.WithLabelValues("failure").Inc()
		return translateError(c, err)
	}

	registrationAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind().Body(&loginRequest); err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	token, err := h.authService.Login(c.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		return translateError(c, err)
	}

	loginAttempts.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

func (h *AuthHandler) CurrentUser(c fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return translateError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// translateError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and answered with a generic 500.
func translateError(c fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": validationErr.Errors,
		})
	}

	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []service.FieldError{{Msg: "User already exists", Param: "email"}},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []service.FieldError{{Msg: "Invalid credentials"}},
		})
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"msg": "Token is not valid",
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"msg": "Not found",
		})
	case errors.Is(err, service.ErrNoGithubProfile):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"msg": "No GitHub profile found",
		})
	}

	log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"msg": "Server Error",
	})
}
