package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/bank-transfer/internal/bank"
	"github.com/nathanyu/bank-transfer/internal/domain"
	"github.com/nathanyu/bank-transfer/internal/middleware"
	"github.com/nathanyu/bank-transfer/internal/store"
)

// Handler contains all HTTP handlers
type Handler struct {
	service *bank.Service
}

// NewHandler creates a new handler
func NewHandler(service *bank.Service) *Handler {
	return &Handler{service: service}
}

// statusFor maps service and store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrSenderNotFound),
		errors.Is(err, bank.ErrReceiverNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bank.ErrMissingFields),
		errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrSameAccount),
		errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// CreateUsers handles POST /create-users: replaces all accounts with the
// fixed seed set.
func (h *Handler) CreateUsers(c *gin.Context) {
	users, err := h.service.SeedAccounts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "users created",
		"users":   users,
	})
}

// TransferRequest is the request body for the transfer endpoint. Pointer
// fields distinguish "absent" from "zero" so missing fields are rejected as
// such instead of falling through to the amount check.
type TransferRequest struct {
	FromUserID *string       `json:"fromUserId"`
	ToUserID   *string       `json:"toUserId"`
	Amount     *domain.Money `json:"amount"`
}

// Transfer handles POST /transfer
func (h *Handler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FromUserID == nil || req.ToUserID == nil || req.Amount == nil {
		abortWithError(c, bank.ErrMissingFields)
		return
	}

	result, err := h.service.Transfer(c.Request.Context(), *req.FromUserID, *req.ToUserID, *req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         result.Message,
		"senderBalance":   result.SenderBalance,
		"receiverBalance": result.ReceiverBalance,
	})
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListAccounts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser handles GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.service.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUsers handles DELETE /users
func (h *Handler) DeleteUsers(c *gin.Context) {
	if err := h.service.DeleteAllAccounts(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all users deleted"})
}

// Index handles GET / with a static API description.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "bank transfer API",
		"endpoints": []string{
			"POST /create-users",
			"POST /transfer",
			"GET /users",
			"GET /users/:id",
			"DELETE /users",
			"GET /public",
			"GET /protected",
		},
	})
}

// Public handles GET /public
func (h *Handler) Public(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "This is a public endpoint"})
}

// Protected handles GET /protected; BearerAuth guards the route.
func (h *Handler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You have accessed a protected endpoint"})
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handler, verifier middleware.TokenVerifier) {
	r.GET("/", h.Index)
	r.GET("/public", h.Public)
	r.GET("/protected", middleware.BearerAuth(verifier), h.Protected)

	r.POST("/create-users", h.CreateUsers)
	r.POST("/transfer", h.Transfer)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.DELETE("/users", h.DeleteUsers)
}
