package force_controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhamdi/tunnel-rig/internal/model"
)

func TestSettingsUpdateSendsBusFrame(t *testing.T) {
	bus := &recordingBus{}
	d := NewDispatcher(bus, &recordingUpdater{})

	d.HandleMessage(`{"type":"settings_update","device_on":true,"wind_speed":50}`)

	require.Len(t, bus.frames, 1)
	assert.Equal(t, []byte{1, 50}, bus.frames[0])
	assert.Equal(t, model.CurrentSettings{DeviceOn: true, WindSpeed: 50}, d.Settings())
}

func TestSettingsUpdatePartialMergeKeepsHeldValues(t *testing.T) {
	bus := &recordingBus{}
	d := NewDispatcher(bus, &recordingUpdater{})

	d.HandleMessage(`{"type":"settings_update","device_on":true,"wind_speed":50}`)
	d.HandleMessage(`{"type":"settings_update","wind_speed":200}`)

	// device_on survives the second message that omitted it
	assert.Equal(t, model.CurrentSettings{DeviceOn: true, WindSpeed: 200}, d.Settings())
	require.Len(t, bus.frames, 2)
	assert.Equal(t, []byte{1, 200}, bus.frames[1])
}

func TestSettingsUpdateOnlyDeviceOn(t *testing.T) {
	bus := &recordingBus{}
	d := NewDispatcher(bus, &recordingUpdater{})

	d.HandleMessage(`{"type":"settings_update","device_on":true,"wind_speed":80}`)
	d.HandleMessage(`{"type":"settings_update","device_on":false}`)

	assert.Equal(t, model.CurrentSettings{DeviceOn: false, WindSpeed: 80}, d.Settings())
	require.Len(t, bus.frames, 2)
	// off on the wire, speed still carried in byte 1
	assert.Equal(t, []byte{0, 80}, bus.frames[1])
}

func TestMalformedMessagesAreDiscarded(t *testing.T) {
	bus := &recordingBus{}
	up := &recordingUpdater{}
	d := NewDispatcher(bus, up)

	d.HandleMessage(`not json at all`)
	d.HandleMessage(`{"device_on":true}`)           // no type discriminator
	d.HandleMessage(`{"type":"firmware_rollback"}`) // unknown type
	d.HandleMessage(``)

	assert.Empty(t, bus.frames)
	assert.Empty(t, up.urls)
	assert.Equal(t, model.CurrentSettings{}, d.Settings())
}

func TestWindSpeedIsClamped(t *testing.T) {
	bus := &recordingBus{}
	d := NewDispatcher(bus, &recordingUpdater{})

	d.HandleMessage(`{"type":"settings_update","device_on":true,"wind_speed":9000}`)
	assert.Equal(t, uint8(255), d.Settings().WindSpeed)

	d.HandleMessage(`{"type":"settings_update","wind_speed":-5}`)
	assert.Equal(t, uint8(0), d.Settings().WindSpeed)
}

func TestBusWriteFailureIsBestEffort(t *testing.T) {
	bus := &recordingBus{fail: true}
	d := NewDispatcher(bus, &recordingUpdater{})

	// must not panic or propagate; settings still merged
	d.HandleMessage(`{"type":"settings_update","device_on":true}`)
	assert.True(t, d.Settings().DeviceOn)
}

func TestUpdateMicroHandsOffURL(t *testing.T) {
	up := &recordingUpdater{}
	d := NewDispatcher(&recordingBus{}, up)

	d.HandleMessage(`{"type":"updateMicro","ota_url":"http://backend/fw.bin"}`)
	assert.Equal(t, []string{"http://backend/fw.bin"}, up.urls)
}

func TestUpdateMicroEmptyURLIsNoop(t *testing.T) {
	up := &recordingUpdater{}
	d := NewDispatcher(&recordingBus{}, up)

	d.HandleMessage(`{"type":"updateMicro"}`)
	d.HandleMessage(`{"type":"updateMicro","ota_url":""}`)
	assert.Empty(t, up.urls)
}
