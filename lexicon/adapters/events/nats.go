package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"yadro.com/lexicon/lexicon/core"
)

const SubjectLexiconUpdated = "lexicon.updated" // топик, куда публикуем изменения словаря

type Message struct {
	Action string `json:"action"`
	Lemmas int    `json:"lemmas"`
	Links  int    `json:"links"`
}

// conn часть *nats.Conn, которой пользуется издатель
type conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

type NatsPublisher struct {
	log *slog.Logger
	nc  conn
}

func NewNatsPublisher(address string, log *slog.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(address, nats.Name("lexicon"))
	if err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", address, err)
	}
	log.Info("connected to broker", "address", address)

	return &NatsPublisher{
		log: log,
		nc:  nc,
	}, nil
}

// Notify implements core.Notifier.
func (p *NatsPublisher) Notify(ctx context.Context, change core.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(Message{
		Action: string(change.Action),
		Lemmas: change.Stats.Lemmas,
		Links:  change.Stats.Links,
	})
	if err != nil {
		return err
	}

	if err := p.nc.Publish(SubjectLexiconUpdated, data); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectLexiconUpdated, err)
	}

	timeout := time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	// дедлайн мог истечь во время публикации
	if timeout <= 0 {
		return fmt.Errorf("flush %s: %w", SubjectLexiconUpdated, context.DeadlineExceeded)
	}
	return p.nc.FlushTimeout(timeout)
}

func (p *NatsPublisher) Close() error {
	p.nc.Close()
	return nil
}
