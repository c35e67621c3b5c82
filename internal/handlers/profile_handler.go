package handlers

import (
	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	githubService  *service.GithubService
	jwtService     *service.JWTService
}

func NewProfileHandler(profileService *service.ProfileService, githubService *service.GithubService, jwtService *service.JWTService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		githubService:  githubService,
		jwtService:     jwtService,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	auth := middleware.RequireAuth(h.jwtService)

	group := app.Group("/api/profile")

	// Public routes
	group.Get("/", h.ListProfiles)
	group.Get("/user/:user_id", h.GetProfileByUser)
	group.Get("/github/:username", h.GithubRepos)

	// Routes below require a valid token
	group.Get("/me", h.GetMe, auth)
	group.Post("/", h.UpsertProfile, auth)
	group.Delete("/", h.DeleteAccount, auth)
	group.Put("/experience", h.AddExperience, auth)
	group.Delete("/experience/:exp_id", h.RemoveExperience, auth)
	group.Put("/education", h.AddEducation, auth)
	group.Delete("/education/:edu_id", h.RemoveEducation, auth)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	profile, err := h.profileService.GetOwnProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	var input service.UpsertProfileInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	profile, err := h.profileService.Upsert(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) ListProfiles(c fiber.Ctx) error {
	profiles, err := h.profileService.List(c.Context())
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

func (h *ProfileHandler) GetProfileByUser(c fiber.Ctx) error {
	profile, err := h.profileService.GetByUserID(c.Context(), c.Params("user_id"))
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) DeleteAccount(c fiber.Ctx) error {
	if err := h.profileService.DeleteAccount(c.Context(), middleware.UserID(c)); err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg": "User removed",
	})
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	var entry models.Experience
	if err := c.Bind().Body(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	profile, err := h.profileService.AddExperience(c.Context(), middleware.UserID(c), entry)
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	profile, err := h.profileService.RemoveExperience(c.Context(), middleware.UserID(c), c.Params("exp_id"))
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	var entry models.Education
	if err := c.Bind().Body(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	profile, err := h.profileService.AddEducation(c.Context(), middleware.UserID(c), entry)
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	profile, err := h.profileService.RemoveEducation(c.Context(), middleware.UserID(c), c.Params("edu_id"))
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) GithubRepos(c fiber.Ctx) error {
	repos, err := h.githubService.Repos(c.Context(), c.Params("username"))
	if err != nil {
		return translateError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(repos)
}
