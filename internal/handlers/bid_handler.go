package handlers

import (
	"net/http"

	"gigmarket_backend/internal/middleware"
	"gigmarket_backend/internal/services"
	"gigmarket_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	*BaseHandler
	bidService  *services.BidService
	hireService *services.HireService
}

func NewBidHandler(base *BaseHandler, bidService *services.BidService, hireService *services.HireService) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		bidService:  bidService,
		hireService: hireService,
	}
}

func (h *BidHandler) RegisterRoutes(r *gin.RouterGroup) {
	bids := r.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		bids.POST("", h.SubmitBid)
		bids.GET("/my", h.GetMyBids)
		bids.PATCH("/:bidId/hire", h.Hire)
	}

	gigBids := r.Group("/gigs")
	gigBids.Use(middleware.AuthMiddleware())
	{
		gigBids.GET("/:gigId/bids", h.GetBidsForGig)
		gigBids.GET("/:gigId/bids/count", h.GetBidCount)
	}
}

func (h *BidHandler) SubmitBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBidRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	bid, err := h.bidService.SubmitBid(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) GetBidsForGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.BidListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.bidService.GetBidsForGig(c.Param("gigId"), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BidHandler) GetMyBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.bidService.GetMyBids(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BidHandler) GetBidCount(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	count, err := h.bidService.GetBidCount(c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BidCountResponse{Count: count})
}

func (h *BidHandler) Hire(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bid, err := h.hireService.Hire(c.Param("bidId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}
