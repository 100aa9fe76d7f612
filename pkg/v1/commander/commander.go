// Package commander is the public client for enqueueing batch research
// commands.
package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ResearchCommand orders one research run for a keyword.
type ResearchCommand struct {
	Keyword       string `json:"keyword"`
	PurchasePrice *int   `json:"purchasePrice,omitempty"`
}

// ResearchCommander sends research commands.
type ResearchCommander struct {
	sender Sender
}

// NewResearchCommander returns new ResearchCommander using provided sender for sending messages.
func NewResearchCommander(sender Sender) ResearchCommander {
	return ResearchCommander{
		sender: sender,
	}
}

// SendResearchCommand sends research command with provided keyword and optional purchase price.
func (c ResearchCommander) SendResearchCommand(ctx context.Context, keyword string, purchasePrice *int) error {
	cmd := ResearchCommand{
		Keyword:       keyword,
		PurchasePrice: purchasePrice,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal research command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
