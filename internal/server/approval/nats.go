package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/launcher/internal/logging"
	"github.com/fxamacker/cbor/v2"
	"github.com/nats-io/nats.go"
)

// pendingEvent is published on <prefix>.pending for each waiting request.
type pendingEvent struct {
	ID          string   `cbor:"1,keyasint"`
	AppName     string   `cbor:"2,keyasint"`
	AppID       string   `cbor:"3,keyasint"`
	AppVersion  string   `cbor:"4,keyasint,omitempty"`
	AppVendor   string   `cbor:"5,keyasint,omitempty"`
	Permissions []string `cbor:"6,keyasint,omitempty"`
	CreatedAt   int64    `cbor:"7,keyasint"`
}

// decisionCommand is consumed from <prefix>.decision. An empty ID applies
// the decision to every request, like RegisterApproval.
type decisionCommand struct {
	ID    string `cbor:"1,keyasint,omitempty"`
	Allow bool   `cbor:"2,keyasint"`
}

// natsConn is the part of *nats.Conn the bridge needs.
type natsConn interface {
	Publish(subj string, data []byte) error
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// NATSBridge feeds pending requests to operators over NATS and applies the
// decisions they send back.
type NATSBridge struct {
	conn   natsConn
	gate   *Gate
	prefix string
	logger logging.Logger
	sub    *nats.Subscription
}

func NewNATSBridge(conn natsConn, gate *Gate, prefix string, logger logging.Logger) *NATSBridge {
	return &NATSBridge{
		conn:   conn,
		gate:   gate,
		prefix: prefix,
		logger: logger.With("module", "approval-nats"),
	}
}

func (b *NATSBridge) pendingSubject() string  { return b.prefix + ".pending" }
func (b *NATSBridge) decisionSubject() string { return b.prefix + ".decision" }

// Start subscribes to decisions and begins publishing pending requests.
func (b *NATSBridge) Start() error {
	sub, err := b.conn.Subscribe(b.decisionSubject(), b.handleDecision)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", b.decisionSubject(), err)
	}
	b.sub = sub
	b.gate.OnPending(b.publishPending)
	return nil
}

func (b *NATSBridge) publishPending(p PendingRequest) {
	data, err := cbor.Marshal(pendingEvent{
		ID:          p.ID,
		AppName:     p.App.Name,
		AppID:       p.App.ID,
		AppVersion:  p.App.Version,
		AppVendor:   p.App.Vendor,
		Permissions: p.Permissions,
		CreatedAt:   p.CreatedAt.Unix(),
	})
	if err != nil {
		b.logger.Error(context.Background(), "encode pending event", "error", err)
		return
	}
	if err := b.conn.Publish(b.pendingSubject(), data); err != nil {
		b.logger.Warn(context.Background(), "publish pending event", "request_id", p.ID, "error", err)
	}
}

func (b *NATSBridge) handleDecision(msg *nats.Msg) {
	ctx := context.Background()

	var cmd decisionCommand
	if err := cbor.Unmarshal(msg.Data, &cmd); err != nil {
		b.logger.Warn(ctx, "bad decision message", "error", err)
		return
	}

	if cmd.ID == "" {
		b.gate.RegisterApproval(cmd.Allow)
		b.logger.Info(ctx, "standing decision registered", "allow", cmd.Allow)
		return
	}
	if err := b.gate.Decide(cmd.ID, cmd.Allow); err != nil {
		b.logger.Warn(ctx, "decision for unknown request", "request_id", cmd.ID)
		return
	}
	b.logger.Info(ctx, "request decided", "request_id", cmd.ID, "allow", cmd.Allow)
}

// Close stops consuming decisions.
func (b *NATSBridge) Close() error {
	if b.sub == nil {
		return nil
	}
	return b.sub.Unsubscribe()
}

// DialNATS connects with reconnect handlers that log through logger.
func DialNATS(url string, logger logging.Logger) (*nats.Conn, error) {
	ctx := context.Background()
	conn, err := nats.Connect(url,
		nats.Name("launcher"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}
