package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shortlink-service/internal/qrcode"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/service"
)

const (
	maxTTLDays       = 365
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ShortLinkHandler exposes the shortening, redirect and analytics
// services over HTTP.
type ShortLinkHandler struct {
	shortener  *service.Shortener
	redirector *service.Redirector
	analytics  *service.Analytics
	appName    string
	appVersion string
}

// NewShortLinkHandler creates the handler.
func NewShortLinkHandler(shortener *service.Shortener, redirector *service.Redirector, analytics *service.Analytics, appName, appVersion string) *ShortLinkHandler {
	return &ShortLinkHandler{
		shortener:  shortener,
		redirector: redirector,
		analytics:  analytics,
		appName:    appName,
		appVersion: appVersion,
	}
}

// Index returns a service descriptor.
func (h *ShortLinkHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.appName,
		"version": h.appVersion,
		"features": []string{
			"URL shortening",
			"Custom aliases",
			"Visit tracking",
			"QR code generation",
			"URL expiration",
		},
	})
}

// HealthCheck is the liveness probe.
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateShortLink godoc
// @Summary Create a short link
// @Description Shortens a destination URL, optionally with a custom alias and an expiry (ttl_days or expires_at).
// @Tags ShortLink
// @Accept json
// @Produce json
// @Param request body CreateShortLinkRequest true "link to create"
// @Success 201 {object} ShortLinkResponse
// @Failure 400 {object} gin.H "invalid input or taken alias"
// @Router /shorten [post]
func (h *ShortLinkHandler) CreateShortLink(c *gin.Context) {
	var req CreateShortLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	expiresAt := req.ExpiresAt
	if req.TTLDays != 0 {
		if req.TTLDays < 1 || req.TTLDays > maxTTLDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("ttl_days must be between 1 and %d", maxTTLDays)})
			return
		}
		t := time.Now().AddDate(0, 0, req.TTLDays)
		expiresAt = &t
	}

	link, err := h.shortener.Shorten(c.Request.Context(), req.DestinationURL, req.CustomAlias, expiresAt)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newShortLinkResponse(link, h.shortURL(c, link.ShortCode)))
}

// Redirect godoc
// @Summary Redirect to the destination URL
// @Description Resolves the short code, records the visit and redirects.
// @Tags ShortLink
// @Param code path string true "short code"
// @Success 307
// @Failure 404 {object} gin.H
// @Failure 410 {object} gin.H "deactivated or expired"
// @Router /{code} [get]
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	code := c.Param("code")
	visit := service.Visit{
		Referrer:      c.Request.Referer(),
		UserAgent:     c.Request.UserAgent(),
		ClientAddress: c.ClientIP(),
	}

	destination, err := h.redirector.ResolveAndTrack(c.Request.Context(), code, visit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, destination)
}

// GetStats godoc
// @Summary Get link analytics
// @Description Returns click count, referrer and browser breakdowns and the most recent visits.
// @Tags Analytics
// @Produce json
// @Param code path string true "short code"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} gin.H
// @Router /stats/{code} [get]
func (h *ShortLinkHandler) GetStats(c *gin.Context) {
	stats, err := h.analytics.Stats(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		ShortLinkResponse: newShortLinkResponse(stats.Link, h.shortURL(c, stats.Link.ShortCode)),
		ClickCount:        stats.ClickCount,
		Referrers:         stats.Referrers,
		BrowserBreakdown:  stats.BrowserBreakdown,
		RecentVisits:      stats.RecentVisits,
	})
}

// GetQRCode godoc
// @Summary Get a QR code for the short link
// @Description Returns a PNG QR code encoding the full short URL.
// @Tags ShortLink
// @Produce png
// @Param code path string true "short code"
// @Success 200 {string} binary "PNG image"
// @Failure 404 {object} gin.H
// @Router /qr/{code} [get]
func (h *ShortLinkHandler) GetQRCode(c *gin.Context) {
	code := c.Param("code")
	if _, err := h.shortener.Lookup(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}

	png, err := qrcode.PNG(h.shortURL(c, code))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s_qr.png", code))
	c.Data(http.StatusOK, "image/png", png)
}

// ListLinks godoc
// @Summary List short links
// @Description Returns a paginated list of links with their click counts.
// @Tags ShortLink
// @Produce json
// @Param skip query int false "offset" default(0)
// @Param limit query int false "page size" default(20)
// @Success 200 {array} LinkListEntry
// @Router /urls [get]
func (h *ShortLinkHandler) ListLinks(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	links, err := h.shortener.ListLinks(c.Request.Context(), skip, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	entries := make([]LinkListEntry, 0, len(links))
	for i := range links {
		count, err := h.shortener.CountVisits(c.Request.Context(), links[i].ID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		entries = append(entries, LinkListEntry{
			ShortLinkResponse: newShortLinkResponse(&links[i], h.shortURL(c, links[i].ShortCode)),
			ClickCount:        count,
		})
	}

	c.JSON(http.StatusOK, entries)
}

// DeactivateLink godoc
// @Summary Deactivate a short link
// @Description Soft delete: the link stops resolving but its data is kept. Irreversible.
// @Tags ShortLink
// @Produce json
// @Param code path string true "short code"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /url/{code} [delete]
func (h *ShortLinkHandler) DeactivateLink(c *gin.Context) {
	code := c.Param("code")
	if err := h.shortener.Deactivate(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("URL %s has been deactivated", code)})
}

// DeleteLink godoc
// @Summary Permanently delete a short link
// @Description Hard delete: removes the link and every visit record it owns.
// @Tags ShortLink
// @Produce json
// @Param code path string true "short code"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /url/{code}/purge [delete]
func (h *ShortLinkHandler) DeleteLink(c *gin.Context) {
	code := c.Param("code")
	if err := h.shortener.Delete(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("URL %s has been deleted", code)})
}

// shortURL assembles the public short URL from the request host.
func (h *ShortLinkHandler) shortURL(c *gin.Context, code string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, c.Request.Host, code)
}

// writeError maps service and repository errors onto the HTTP surface.
func (h *ShortLinkHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidAlias),
		errors.Is(err, service.ErrReservedAlias),
		errors.Is(err, service.ErrAliasTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "short URL not found"})
	case errors.Is(err, service.ErrLinkInactive):
		c.JSON(http.StatusGone, gin.H{"error": "this URL has been deactivated"})
	case errors.Is(err, service.ErrLinkExpired):
		c.JSON(http.StatusGone, gin.H{"error": "this URL has expired"})
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
