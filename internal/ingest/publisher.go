// Package ingest publishes tile index events to NATS so downstream
// consumers (map renderers, coverage dashboards) learn about newly
// decoded tiles without polling the index.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"dted_parser/internal/tile"
)

// DefaultSubject is the subject tile announcements are published on.
const DefaultSubject = "dted.tile.indexed"

// Publisher announces indexed tiles over a NATS connection.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// Connect dials the NATS server at url. An empty subject selects
// DefaultSubject.
func Connect(url, subject string) (*Publisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	nc, err := nats.Connect(url,
		nats.Name("dted_parser"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(3),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &Publisher{nc: nc, subject: subject}, nil
}

// PublishTile announces one tile summary as a JSON message.
func (p *Publisher) PublishTile(s tile.Summary) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal tile: %w", err)
	}
	if err := p.nc.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish tile: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() {
	_ = p.nc.Flush()
	p.nc.Close()
}
