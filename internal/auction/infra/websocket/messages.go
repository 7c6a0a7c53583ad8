package websocket

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeClientBid           MessageType = "client_bid"
	MessageTypeServerAuctionUpdate MessageType = "server_auction_update"
	MessageTypeServerError         MessageType = "server_error"
	MessageTypeServerInitialState  MessageType = "server_initial_state"
)

// BaseMessage carries the type discriminator shared by all frames.
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientBidMessage is a bid submitted over the socket. The bidder comes
// from the connection's session, never from the payload.
type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		AuctionID uuid.UUID `json:"auction_id"`
		Amount    float64   `json:"amount"`
	} `json:"payload"`
}

// AuctionUpdatePayload is the state snapshot broadcast after every
// accepted bid and sent as the initial frame on connect.
type AuctionUpdatePayload struct {
	AuctionID    uuid.UUID  `json:"auction_id"`
	ItemName     string     `json:"item_name"`
	CurrentPrice float64    `json:"current_price"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	Winner       *uuid.UUID `json:"winner,omitempty"`
	BidCount     int        `json:"bid_count"`
}

type ServerAuctionUpdateMessage struct {
	BaseMessage
	Payload AuctionUpdatePayload `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
