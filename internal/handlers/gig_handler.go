package handlers

import (
	"net/http"

	"gigmarket_backend/internal/middleware"
	"gigmarket_backend/internal/services"
	"gigmarket_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	gigService  *services.GigService
	viewService *services.ViewService
}

func NewGigHandler(base *BaseHandler, gigService *services.GigService, viewService *services.ViewService) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		gigService:  gigService,
		viewService: viewService,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Browsing is public, the board is visible without an account.
	gigs := r.Group("/gigs")
	{
		gigs.GET("", h.ListGigs)
		gigs.GET("/:gigId", h.GetGig)
	}

	// Views count for anonymous visitors too.
	views := r.Group("/gigs")
	views.Use(middleware.OptionalAuthMiddleware())
	{
		views.POST("/:gigId/view", h.TrackView)
	}

	protected := r.Group("/gigs")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateGig)
		protected.GET("/my", h.GetMyGigs)
		protected.DELETE("/:gigId", h.DeleteGig)
	}
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	gig, err := h.gigService.CreateGig(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gig)
}

func (h *GigHandler) ListGigs(c *gin.Context) {
	var query dto.GigListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.gigService.ListGigs(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.gigService.GetGig(c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}

func (h *GigHandler) GetMyGigs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	gigs, err := h.gigService.GetMyGigs(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gigs": gigs})
}

func (h *GigHandler) DeleteGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.gigService.DeleteGig(c.Param("gigId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gig deleted"})
}

func (h *GigHandler) TrackView(c *gin.Context) {
	viewerID := h.GetOptionalUserID(c)

	resp, err := h.viewService.RecordView(c.Param("gigId"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
