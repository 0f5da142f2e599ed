package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	config "github.com/vidreacher/vidreacher-api/configs"
	"github.com/vidreacher/vidreacher-api/internal/apperror"
	"github.com/vidreacher/vidreacher-api/internal/service"
	"github.com/vidreacher/vidreacher-api/pkg/utils"
)

const stateTTL = 10 * time.Minute

type OAuthHandler struct {
	cfg  config.Config
	ps   service.PlatformService
	meta service.MetaService
	yt   service.YoutubeService
}

func NewOAuthHandler(cfg config.Config, ps service.PlatformService, meta service.MetaService, yt service.YoutubeService) *OAuthHandler {
	return &OAuthHandler{cfg: cfg, ps: ps, meta: meta, yt: yt}
}

// Start begins the OAuth dance for :platform. The optional redirect_to query
// names the frontend path to return the user to; it rides inside the signed
// state token instead of a raw query parameter.
func (h *OAuthHandler) Start(c *fiber.Ctx) error {
	platformName := c.Params("platform")

	state, err := utils.GenerateState(h.cfg.SecretKey, c.Query("redirect_to"), stateTTL)
	if err != nil {
		return respondError(c, err)
	}

	authURL := h.ps.AuthURL(platformName, state)
	if authURL == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown platform",
		})
	}
	return c.Redirect(authURL)
}

func (h *OAuthHandler) MetaCallback(c *fiber.Ctx) error {
	if provErr := c.Query("error"); provErr != "" {
		return c.Redirect(h.frontendRedirect("/", url.Values{
			"connected": {"meta"},
			"error":     {provErr},
		}))
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing authorization code from Meta callback",
			"state": c.Query("state"),
		})
	}

	claims, err := utils.ValidateState(h.cfg.SecretKey, c.Query("state"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid state",
		})
	}

	ids, err := h.meta.Callback(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return c.Redirect(h.frontendRedirect(claims.RedirectTo, url.Values{
		"connected": {"meta"},
		"ids":       {strings.Join(parts, ",")},
	}))
}

func (h *OAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if provErr := c.Query("error"); provErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": provErr,
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing authorization code from Google callback",
		})
	}

	claims, err := utils.ValidateState(h.cfg.SecretKey, c.Query("state"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid state",
		})
	}

	id, err := h.yt.Callback(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(h.frontendRedirect(claims.RedirectTo, url.Values{
		"connected": {"google"},
		"id":        {strconv.FormatInt(id, 10)},
	}))
}

func (h *OAuthHandler) Accounts(c *fiber.Ctx) error {
	accounts, err := h.ps.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"accounts": accounts})
}

func (h *OAuthHandler) Disconnect(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	if err := h.ps.Disconnect(c.Context(), id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Account not found",
			})
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *OAuthHandler) Refresh(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	if err := h.yt.RefreshToken(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Account not found",
			})
		case errors.Is(err, service.ErrNotRefreshable), errors.Is(err, service.ErrNoRefreshToken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return respondError(c, err)
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *OAuthHandler) frontendRedirect(path string, params url.Values) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		path = "/"
	}
	return fmt.Sprintf("%s%s?%s", h.cfg.FrontendBase, path, params.Encode())
}
