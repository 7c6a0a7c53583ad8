package http

import (
	"context"
	"errors"
	"time"

	"github.com/Ricky0403/SoftwareProject/internal/auction/application"
	"github.com/Ricky0403/SoftwareProject/internal/auction/domain"
	"github.com/Ricky0403/SoftwareProject/internal/shared/httpserver"
	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Broadcaster pushes a fresh auction snapshot to websocket watchers;
// satisfied by the auction ws handler. Nil disables broadcasting.
type Broadcaster interface {
	BroadcastAuctionState(ctx context.Context, auctionID uuid.UUID)
}

// AuctionHandler exposes the auction REST endpoints.
type AuctionHandler struct {
	service     application.AuctionService
	server      *httpserver.Server
	broadcaster Broadcaster
}

func NewAuctionHandler(service application.AuctionService, server *httpserver.Server, broadcaster Broadcaster) *AuctionHandler {
	return &AuctionHandler{service: service, server: server, broadcaster: broadcaster}
}

func (h *AuctionHandler) RegisterRoutes(app *fiber.App) {
	auctions := app.Group("/auctions")
	auctions.Get("", h.List)
	auctions.Get("/:id", h.Get)
	auctions.Post("", h.server.RequireAuth(), h.Create)
	auctions.Post("/:id/bids", h.server.RequireAuth(), h.PlaceBid)
	auctions.Post("/:id/cancel", h.server.RequireAuth(), h.Cancel)

	users := app.Group("/users", h.server.RequireAuth())
	users.Get("/me/bids", h.MyBids)
	users.Get("/me/auctions", h.MyAuctions)
}

type createAuctionRequest struct {
	ItemName            string    `json:"item_name"`
	Description         string    `json:"description"`
	StartingPrice       float64   `json:"starting_price"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	MinimumBidIncrement *float64  `json:"minimum_bid_increment"`
	Categories          []string  `json:"categories"`
}

func (h *AuctionHandler) Create(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}

	var req createAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	state, err := h.service.CreateAuction(c.Context(), application.CreateAuctionDTO{
		ItemName:            req.ItemName,
		Description:         req.Description,
		StartingPrice:       req.StartingPrice,
		CreatedBy:           caller,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		MinimumBidIncrement: req.MinimumBidIncrement,
		Categories:          req.Categories,
	})
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "auction": state})
}

func (h *AuctionHandler) List(c *fiber.Ctx) error {
	var (
		summaries []application.AuctionSummaryDTO
		err       error
	)
	if c.Query("status") == "active" {
		summaries, err = h.service.ListActiveAuctions(c.Context())
	} else {
		summaries, err = h.service.ListAllAuctions(c.Context())
	}
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "auctions": summaries})
}

func (h *AuctionHandler) Get(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	state, err := h.service.GetAuctionState(c.Context(), auctionID)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "auction": state})
}

type placeBidRequest struct {
	Amount float64 `json:"amount"`
}

func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}

	var req placeBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidDTO{
		AuctionID: auctionID,
		Bidder:    caller,
		Amount:    req.Amount,
	})
	if err != nil {
		return h.renderError(c, err)
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastAuctionState(c.Context(), auctionID)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"bid": fiber.Map{
			"bid_id": bid.ID,
			"amount": bid.Amount,
			"time":   bid.Time,
		},
	})
}

func (h *AuctionHandler) Cancel(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
	}
	if err := h.service.CancelAuction(c.Context(), auctionID, caller); err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuctionHandler) MyBids(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	bids, err := h.service.ListUserBids(c.Context(), caller)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "bids": bids})
}

func (h *AuctionHandler) MyAuctions(c *fiber.Ctx) error {
	caller, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated"})
	}
	auctions, err := h.service.ListUserAuctions(c.Context(), caller)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "auctions": auctions})
}

func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}

// renderError maps the domain taxonomy onto HTTP statuses. Rejections
// are expected outcomes and never reach the 500 branch.
func (h *AuctionHandler) renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAuctionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "auction not found"})
	case errors.Is(err, domain.ErrAuctionNotActive),
		errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrIncrementTooSmall),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAlreadyFinished):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidItemName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidIncrement),
		errors.Is(err, domain.ErrInvalidTimeRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotAuctionOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "auction is receiving too many bids, try again"})
	default:
		log.Error("Unhandled auction error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "server error"})
	}
}
