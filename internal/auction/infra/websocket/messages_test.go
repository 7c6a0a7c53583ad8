package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientBidMessageDecoding(t *testing.T) {
	auctionID := uuid.New()
	raw := `{"type":"client_bid","payload":{"auction_id":"` + auctionID.String() + `","amount":150.5}}`

	var base BaseMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &base))
	assert.Equal(t, MessageTypeClientBid, base.Type)

	var msg ClientBidMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	assert.Equal(t, auctionID, msg.Payload.AuctionID)
	assert.Equal(t, 150.5, msg.Payload.Amount)
}

func TestAuctionUpdateOmitsWinnerUntilSet(t *testing.T) {
	msg := ServerAuctionUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate},
		Payload: AuctionUpdatePayload{
			AuctionID:    uuid.New(),
			ItemName:     "vintage camera",
			CurrentPrice: 120,
			EndTime:      time.Now().Add(time.Hour),
			Status:       "active",
			BidCount:     3,
		},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "winner")

	winner := uuid.New()
	msg.Payload.Winner = &winner
	data, err = json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), winner.String())
}
