package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/settleworks/closing_cost_engine/internal/apperrors"
	portssvc "github.com/settleworks/closing_cost_engine/internal/core/ports/services"
	"github.com/settleworks/closing_cost_engine/internal/dto"
	"github.com/settleworks/closing_cost_engine/internal/middleware"
)

// profileHandler handles HTTP requests for jurisdiction profile management.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func newProfileHandler(ps portssvc.ProfileSvcFacade) *profileHandler {
	return &profileHandler{
		profileService: ps,
	}
}

// registerProfileRoutes registers routes for jurisdiction profile management.
// Geography paths contain slashes, so the read and delete routes use a
// catch-all parameter.
func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := newProfileHandler(profileService)

	profiles := rg.Group("/profiles")
	{
		profiles.POST("", h.saveProfile)
		profiles.GET("", h.listProfiles)
		profiles.GET("/*path", h.getProfileByPath)
		profiles.DELETE("/*path", h.deleteProfile)
	}
}

// saveProfile godoc
// @Summary Create or replace a jurisdiction profile
// @Description Validates the profile and stores it under its geography path; invalid profiles never enter the resolvable set
// @Tags profiles
// @Accept  json
// @Produce  json
// @Param   profile body dto.SaveProfileRequest true "Profile details"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]interface{} "Invalid profile"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save profile"
// @Security BearerAuth
// @Router /profiles [post]
func (h *profileHandler) saveProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveProfile", slog.String("error", err.Error()))
		respondBindingError(c, err)
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), req)
	if err != nil {
		var verrs *apperrors.ValidationErrors
		if errors.As(err, &verrs) {
			logger.Warn("Profile validation failed", slog.Int("violations", len(verrs.Violations)))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Profile validation failed",
				"violations": verrs.Violations,
			})
			return
		}
		logger.Error("Failed to save profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	logger.Info("Profile saved", slog.String("path", profile.Path()))
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// listProfiles godoc
// @Summary List jurisdiction profiles
// @Description Returns every profile in the resolvable set
// @Tags profiles
// @Produce  json
// @Success 200 {array} dto.ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list profiles"
// @Security BearerAuth
// @Router /profiles [get]
func (h *profileHandler) listProfiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	profiles, err := h.profileService.ListProfiles(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list profiles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponses(profiles))
}

// getProfileByPath godoc
// @Summary Get a jurisdiction profile by path
// @Description Retrieves the profile stored under a geography path such as PA/PHILADELPHIA COUNTY/PHILADELPHIA
// @Tags profiles
// @Produce  json
// @Param   path path string true "Geography path"
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to retrieve profile"
// @Security BearerAuth
// @Router /profiles/{path} [get]
func (h *profileHandler) getProfileByPath(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	path := strings.TrimPrefix(c.Param("path"), "/")

	profile, err := h.profileService.GetProfileByPath(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("Failed to get profile", slog.String("path", path), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// deleteProfile godoc
// @Summary Delete a jurisdiction profile
// @Description Removes the profile stored under a geography path
// @Tags profiles
// @Produce  json
// @Param   path path string true "Geography path"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to delete profile"
// @Security BearerAuth
// @Router /profiles/{path} [delete]
func (h *profileHandler) deleteProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	path := strings.TrimPrefix(c.Param("path"), "/")

	if err := h.profileService.DeleteProfile(c.Request.Context(), path); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("Failed to delete profile", slog.String("path", path), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	c.Status(http.StatusNoContent)
}
