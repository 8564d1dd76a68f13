package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys_PrefijoPorDefecto(t *testing.T) {
	k := newKeys("")
	assert.Equal(t, "dailybooks:session:ws1", k.session("ws1"))
	assert.Equal(t, "dailybooks:overrides:shop:A", k.shopMeta("A"))
	assert.Equal(t, "dailybooks:overrides:salesmen:A", k.salesmenMeta("A"))
	assert.Equal(t, "dailybooks:broadcast:public:settings", k.channel("public:settings"))
}

func TestEnvelope_IdaYVuelta(t *testing.T) {
	raw, err := encodeEnvelope("settings_sync", []byte(`{"key":"slowMovingDays","value":45}`))
	require.NoError(t, err)

	msg, err := decodeEnvelope("public:settings", string(raw))
	require.NoError(t, err)
	assert.Equal(t, "public:settings", msg.Channel)
	assert.Equal(t, "settings_sync", msg.Event)
	assert.JSONEq(t, `{"key":"slowMovingDays","value":45}`, string(msg.Payload))
}

func TestEnvelope_PayloadInvalido(t *testing.T) {
	_, err := encodeEnvelope("INSERT", []byte("{no-json"))
	assert.Error(t, err)
}
