package helpers

import (
	"testing"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	pgmodels "github.com/sedori-labs/price-research/internal/platform/storage/gen/postgres/public/model"
	"github.com/sedori-labs/price-research/internal/platform/storage/storagetesting"
	"github.com/stretchr/testify/require"
)

// WaitForRunToBeRecorded is blocking helper function, returns the run
// trace for keyword after it appears in the database.
func WaitForRunToBeRecorded(t *testing.T, queryable qrm.Queryable, keyword string) *pgmodels.ResearchRun {
	t.Helper()

	for {
		<-time.After(time.Millisecond * 250)
		runs := storagetesting.GetRuns(t, queryable)
		for ix := range runs {
			if runs[ix].Keyword == keyword {
				return &runs[ix]
			}
		}
	}
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}
