package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"site_year":"Cedar2010","elevation":"0.1"}`),
		Topic:     "raw-survey-points",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("rtk-gps")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"site_year":"Cedar2010","elevation":"0.1"}`, string(raw.Value))
	assert.Equal(t, "raw-survey-points", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "rtk-gps", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	s, ok := domain.Lookup("Cedar2014")
	require.True(t, ok)

	msg, err := serializeToMessage(domain.SurveyPoint{
		ID:          "cei14-0011223344556677",
		SiteYear:    s,
		Elevation:   0.5,
		TidalZone:   domain.ZoneSupratidal,
		ProcessedAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("cei14-0011223344556677"), msg.Key)
	assert.Contains(t, string(msg.Value), `"tidal_zone":"supratidal"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "processed_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "site_year", msg.Headers[1].Key)
	assert.Equal(t, []byte("Cedar2014"), msg.Headers[1].Value)
	assert.Equal(t, "tidal_zone", msg.Headers[2].Key)
	assert.Equal(t, []byte("supratidal"), msg.Headers[2].Value)
}
