package websocket

import (
	"context"
	"encoding/json"

	"github.com/Ricky0403/SoftwareProject/internal/auction/application"
	"github.com/Ricky0403/SoftwareProject/internal/shared/httpserver"
	"github.com/Ricky0403/SoftwareProject/internal/shared/logger"
	sharedws "github.com/Ricky0403/SoftwareProject/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler serves the live auction feed: clients join one
// auction's group, may submit bids, and receive a state snapshot after
// every accepted bid.
type AuctionWSHandler struct {
	service application.AuctionService
	hub     *sharedws.Hub
}

func NewAuctionWSHandler(service application.AuctionService, hub *sharedws.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{service: service, hub: hub}
}

// RegisterRoutes mounts the upgrade endpoint. The session is resolved
// before the upgrade so the connection carries the bidder identity.
func (h *AuctionWSHandler) RegisterRoutes(app *fiber.App, srv *httpserver.Server) {
	app.Get("/ws/auctions/:id", srv.RequireAuth(), func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		auctionID := c.Params("id")
		if _, err := uuid.Parse(auctionID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auction id"})
		}
		userID := c.Locals("user_id").(string)

		return websocket.New(func(conn *websocket.Conn) {
			client := &sharedws.Client{
				Hub:       h.hub,
				Conn:      conn,
				Send:      make(chan []byte, 16),
				AuctionID: auctionID,
				ID:        uuid.NewString(),
				UserID:    userID,
			}
			h.hub.RegisterClient(client)

			ctx := context.Background()
			go client.WritePump(ctx)
			h.sendInitialState(ctx, client)
			client.ReadPump(ctx)
		})(c)
	})
}

// ListenForMessages consumes the hub's inbound channel; run as a goroutine.
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler listening for inbound messages")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *sharedws.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientBid:
		h.handleClientBid(ctx, client, data)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleClientBid(ctx context.Context, client *sharedws.Client, data []byte) {
	var bidMsg ClientBidMessage
	if err := json.Unmarshal(data, &bidMsg); err != nil {
		h.sendErrorToClient(client, "invalid bid message format")
		return
	}
	if bidMsg.Payload.AuctionID.String() != client.AuctionID {
		h.sendErrorToClient(client, "auction ID mismatch")
		return
	}
	bidder, err := uuid.Parse(client.UserID)
	if err != nil {
		h.sendErrorToClient(client, "invalid session identity")
		return
	}

	_, err = h.service.PlaceBid(ctx, application.PlaceBidDTO{
		AuctionID: bidMsg.Payload.AuctionID,
		Bidder:    bidder,
		Amount:    bidMsg.Payload.Amount,
	})
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}

	h.BroadcastAuctionState(ctx, bidMsg.Payload.AuctionID)
}

// BroadcastAuctionState pushes the current snapshot to every client
// watching the auction. Also called by the HTTP handler after a bid.
func (h *AuctionWSHandler) BroadcastAuctionState(ctx context.Context, auctionID uuid.UUID) {
	state, err := h.service.GetAuctionState(ctx, auctionID)
	if err != nil {
		log.Error("Failed to load auction state for broadcast",
			zap.String("auctionID", auctionID.String()),
			zap.Error(err),
		)
		return
	}

	updateMsg := ServerAuctionUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate},
		Payload:     updatePayload(state),
	}
	data, err := json.Marshal(updateMsg)
	if err != nil {
		log.Error("Failed to marshal auction update", zap.Error(err))
		return
	}
	h.hub.BroadcastToAuction(auctionID.String(), data)
}

func (h *AuctionWSHandler) sendInitialState(ctx context.Context, client *sharedws.Client) {
	auctionID, err := uuid.Parse(client.AuctionID)
	if err != nil {
		return
	}
	state, err := h.service.GetAuctionState(ctx, auctionID)
	if err != nil {
		h.sendErrorToClient(client, "failed to load auction state")
		return
	}
	msg := ServerAuctionUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerInitialState},
		Payload:     updatePayload(state),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

func (h *AuctionWSHandler) sendErrorToClient(client *sharedws.Client, errorMessage string) {
	errMsg := ServerErrorMessage{BaseMessage: BaseMessage{Type: MessageTypeServerError}}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("Failed to marshal error message", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("Client send channel full, dropping error message",
			zap.String("clientID", client.ID))
	}
}

func updatePayload(state *application.AuctionStateDTO) AuctionUpdatePayload {
	return AuctionUpdatePayload{
		AuctionID:    state.AuctionID,
		ItemName:     state.ItemName,
		CurrentPrice: state.CurrentPrice,
		EndTime:      state.EndTime,
		Status:       state.Status,
		Winner:       state.Winner,
		BidCount:     len(state.Bids),
	}
}
