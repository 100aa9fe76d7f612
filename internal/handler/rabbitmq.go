package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/sedori-labs/price-research/internal/platform/rabbitmq"
	"github.com/sedori-labs/price-research/pkg/v1/commander"
)

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq        *rabbitmq.RabbitMQ
	researcher Researcher
	logger     *zerolog.Logger
}

// NewRMQHandler returns new RMQHandler.
func NewRMQHandler(rmq *rabbitmq.RabbitMQ, researcher Researcher, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:        rmq,
		researcher: researcher,
		logger:     logger,
	}
}

// Start starts consuming and handling research commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, func(ctx context.Context, message []byte) error {
		cmd, err := decodeMessage(message)
		if err != nil {
			return err
		}

		h.logger.Debug().
			Str("keyword", cmd.Keyword).
			Msg("research started")

		result, err := h.researcher.Research(ctx, models.ResearchRequest{
			Keyword:       cmd.Keyword,
			PurchasePrice: cmd.PurchasePrice,
		})
		if err != nil {
			return fmt.Errorf("research failed: %w", err)
		}

		h.logger.Info().
			Str("keyword", cmd.Keyword).
			Int("records", result.Prices.TotalRecords()).
			Str("recommendation", string(result.AiJudgment.Recommendation)).
			Msg("research finished")

		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func decodeMessage(msg []byte) (*commander.ResearchCommand, error) {
	var cmd commander.ResearchCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode research command: %w", err)
	}

	if cmd.Keyword == "" {
		return nil, fmt.Errorf("research command without keyword")
	}

	return &cmd, nil
}
