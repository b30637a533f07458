// Package notify publishes record changes.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/race-engineer-service-go/log"
)

type (
	Kind string
	Op   string
)

const (
	KindEvent   Kind = "event"
	KindSession Kind = "session"
	KindLap     Kind = "lap"
	KindTire    Kind = "tire"
	KindEngine  Kind = "engine"
	KindSetup   Kind = "setup"
)

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

const DefaultSubjectPrefix = "res.records"

type (
	Change struct {
		Kind Kind `json:"kind"`
		Op   Op   `json:"op"`
		ID   int  `json:"id"`
	}
	// Notifier must not block the caller for long. Failures are not reported
	// back to the caller.
	Notifier interface {
		Notify(ctx context.Context, change Change)
	}
	NatsNotifier struct {
		conn      *nats.Conn
		prefix    string
		l         *log.Logger
		published metric.Int64Counter
	}
	Option       func(*NatsNotifier)
	noopNotifier struct{}
)

var (
	_ Notifier = (*NatsNotifier)(nil)
	_ Notifier = (*noopNotifier)(nil)
)

func NewNatsNotifier(conn *nats.Conn, opts ...Option) *NatsNotifier {
	ret := &NatsNotifier{
		conn:   conn,
		prefix: DefaultSubjectPrefix,
		l:      log.Default().Named("nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	var err error
	ret.published, err = otel.Meter("res").Int64Counter("res.notify.published",
		metric.WithDescription("number of published record changes"))
	if err != nil {
		ret.l.Warn("could not create counter", log.ErrorField(err))
	}
	return ret
}

func WithSubjectPrefix(prefix string) Option {
	return func(n *NatsNotifier) {
		n.prefix = prefix
	}
}

func WithLogger(l *log.Logger) Option {
	return func(n *NatsNotifier) {
		n.l = l
	}
}

// Noop returns a notifier which discards all changes
func Noop() Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) Notify(context.Context, Change) {}

// Subject returns the subject for change, e.g. res.records.session.create
func Subject(prefix string, change Change) string {
	return fmt.Sprintf("%s.%s.%s", prefix, change.Kind, change.Op)
}

func (n *NatsNotifier) Notify(ctx context.Context, change Change) {
	data, err := json.Marshal(change)
	if err != nil {
		n.l.Error("could not marshal change", log.ErrorField(err))
		return
	}
	subj := Subject(n.prefix, change)
	if err := n.conn.Publish(subj, data); err != nil {
		n.l.Warn("could not publish change",
			log.String("subject", subj),
			log.ErrorField(err))
		return
	}
	if n.published != nil {
		n.published.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", string(change.Kind)),
			attribute.String("op", string(change.Op))))
	}
	n.l.Debug("published change", log.String("subject", subj), log.Int("id", change.ID))
}

func (n *NatsNotifier) Close() {
	n.conn.Close()
}
