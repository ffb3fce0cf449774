package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	platformobservability "github.com/Apurer/purchase-order-exercise/internal/platform/observability"
)

func TestConnect_RejectsBlankDSN(t *testing.T) {
	_, err := Connect(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyDSN)
}

func TestConnectOptional_BlankDSNKeepsMemory(t *testing.T) {
	var buf bytes.Buffer
	db, cleanup := ConnectOptional(context.Background(), "", platformobservability.NewLogger(&buf, "warn"))
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
	require.Contains(t, buf.String(), "exercise sessions stay in memory")
}
