package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/static"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/memory"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/application"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestService_RecordsReviewMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	core := application.NewService(memory.NewSessionStore(time.Hour), static.NewCatalog())
	svc := New(core, WithMeter(provider.Meter("test")))
	ctx := context.Background()

	exercise, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Start(ctx, exercise.ID)
	require.NoError(t, err)
	_, err = svc.SelectOffer(ctx, exercise.ID, "off-001")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, exercise.ID, "it-1")
	require.NoError(t, err)
	for field, value := range map[string]string{
		"deliveryDelay": "3 jours",
		"deliveryMode":  "Franco de port",
		"paymentDelay":  "30 jours fin de mois",
		"paymentMode":   "Virement bancaire",
	} {
		_, err = svc.SetCondition(ctx, exercise.ID, field, value)
		require.NoError(t, err)
	}
	_, err = svc.SetSignature(ctx, exercise.ID, "Jean Dupont")
	require.NoError(t, err)

	finished, err := svc.Finish(ctx, exercise.ID)
	require.NoError(t, err)
	require.Equal(t, 2, finished.Review.FailedCount())

	require.EqualValues(t, 1, counterTotal(t, reader, "exercise.service.sessions_started"))
	require.EqualValues(t, 1, counterTotal(t, reader, "exercise.service.orders_finished"))
	require.EqualValues(t, 2, counterTotal(t, reader, "exercise.service.review_criteria_failed"))
}

func TestService_PassesErrorsThrough(t *testing.T) {
	core := application.NewService(memory.NewSessionStore(time.Hour), static.NewCatalog())
	svc := New(core)

	_, err := svc.Get(context.Background(), "unknown")
	require.True(t, errors.Is(err, ports.ErrNotFound))
	require.ErrorIs(t, err, application.ErrNotFound)
}
