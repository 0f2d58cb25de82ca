// Package events publishes ledger lifecycle events to NATS for downstream
// consumers (notifications, reporting). Publishing is best-effort: a failed
// publish never rolls back a committed transfer.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/telemetry"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// TransferCompletedSubject is the subject transfer events are published on.
const TransferCompletedSubject = "ledger.transfers.completed"

// TransferCompletedEvent is the wire payload for a committed transfer.
type TransferCompletedEvent struct {
	TransactionID    string    `json:"transaction_id"`
	Amount           int64     `json:"amount"`
	Description      string    `json:"description"`
	WalletOutgoingID string    `json:"wallet_outgoing_id"`
	WalletIncomingID string    `json:"wallet_incoming_id"`
	Date             time.Time `json:"date"`
}

// NATSPublisher implements ports.TransferEventPublisher over a NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// NewNATSPublisher connects to the NATS server and returns a publisher.
func NewNATSPublisher(url string, log zerolog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("wallet-ledger"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Info().Str("url", url).Msg("NATS connection established")
	return &NATSPublisher{conn: conn, log: log}, nil
}

// PublishTransferCompleted publishes a committed transfer to NATS.
func (p *NATSPublisher) PublishTransferCompleted(_ context.Context, txn *domain.Transaction) error {
	event := TransferCompletedEvent{
		TransactionID:    txn.ID.String(),
		Amount:           txn.Amount,
		Description:      txn.Description,
		WalletOutgoingID: txn.WalletOutgoingID.String(),
		WalletIncomingID: txn.WalletIncomingID.String(),
		Date:             txn.Date,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}

	if err := p.conn.Publish(TransferCompletedSubject, data); err != nil {
		return fmt.Errorf("publish transfer event: %w", err)
	}

	telemetry.TransferEventsPublished.Inc()
	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain() //nolint:errcheck
		p.conn.Close()
	}
}
