package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type instrumentedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&instrumentedRow{}))
	return db
}

func TestInstrumentDB_RecordsQueryDurations(t *testing.T) {
	reader, provider := newTestMeter(t)
	db := openTestDB(t)

	require.NoError(t, InstrumentDB(db, DBConfig{Tracing: true}, provider.Meter("test"), nil))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&instrumentedRow{Name: "a"}).Error)
	var rows []instrumentedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	require.Len(t, rows, 1)

	m, found := collectMetric(t, reader, "catsync_db_query_duration_seconds")
	require.True(t, found)
	hist := m.Data.(metricdata.Histogram[float64])

	ops := map[string]uint64{}
	for _, dp := range hist.DataPoints {
		op, _ := dp.Attributes.Value(AttrDBOperation)
		table, _ := dp.Attributes.Value(AttrDBTable)
		assert.Equal(t, "instrumented_rows", table.AsString())
		ops[op.AsString()] += dp.Count
	}
	assert.Equal(t, uint64(1), ops["insert"])
	assert.Equal(t, uint64(1), ops["select"])
}

func TestInstrumentDB_LogsSlowQueries(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	db := openTestDB(t)

	require.NoError(t, InstrumentDB(db, DBConfig{SlowQueryThreshold: time.Nanosecond}, nil, zap.New(core)))

	var rows []instrumentedRow
	require.NoError(t, db.Find(&rows).Error)

	slow := logs.FilterMessage("Slow query").All()
	require.NotEmpty(t, slow)
	assert.Equal(t, "select", slow[0].ContextMap()["operation"])
}

func TestInstrumentDB_MarksSlowQuerySpans(t *testing.T) {
	recorder := setupSpanRecorder(t)
	db := openTestDB(t)

	require.NoError(t, InstrumentDB(db, DBConfig{SlowQueryThreshold: time.Nanosecond}, nil, nil))

	ctx, span := StartSyncSpan(context.Background(), "import_from")
	var rows []instrumentedRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	attrs := attrMap(ended[0].Attributes())
	assert.True(t, attrs[spanAttrSlowQuery].AsBool())
	_, ok := attrs[spanAttrQueryTimeMs]
	assert.True(t, ok)
}
