package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_engine/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gesture_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
# gesture-engine test config
MQTT_BROKER = tcp://localhost:1883
MOTION_SOURCE = mock
SAMPLE_INTERVAL = 100
TOPIC_GESTURE_EVENT = gesture/event
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	require.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	require.Equal(t, "mock", cfg.MotionSource)
	require.Equal(t, 100, cfg.SampleInterval)
	require.Equal(t, "gesture/event", cfg.TopicGestureEvent)
}

func TestLoadFullProducer(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
MQTT_BROKER = tcp://localhost:1883
MQTT_CLIENT_ID_PRODUCER = gesture-producer
MOTION_SOURCE = imu
SAMPLE_INTERVAL = 100
TOPIC_GESTURE_EVENT = gesture/event
TOPIC_ACCEL = gesture/accel
TOPIC_ATTITUDE = gesture/attitude
TOPIC_TOUCH_RAW = gesture/touch/raw
DEVICE_ID = bench-01
IMU_SPI_DEVICE = /dev/spidev6.0
IMU_CS_PIN = 18
IMU_ACCEL_RANGE = 1
GESTURE_PRESET = quiet
GESTURE_DROP_MAX_G = 0.15
GESTURE_DOUBLE_SHAKE_WINDOW_MS = 800
LOG_FILE = /var/log/gesture_engine/producer.log
LOG_MAX_SIZE_MB = 10
`))
	require.NoError(t, err)

	require.Equal(t, "gesture-producer", cfg.MQTTClientIDProducer)
	require.Equal(t, "bench-01", cfg.DeviceID)
	require.Equal(t, byte(1), cfg.IMUAccelRange)
	require.Equal(t, "quiet", cfg.GesturePreset)
	require.Equal(t, 0.15, cfg.DropMaxG)
	require.Equal(t, 800, cfg.DoubleShakeWindowMS)
	require.Equal(t, 10, cfg.LogMaxSizeMB)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := config.Load(writeConfig(t, minimalConfig+"BOGUS_KEY = 1\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown config key")
}

// The SSD1306 driver fixes the device address, so there is no display
// address key to set.
func TestLoadRejectsDisplayAddrKey(t *testing.T) {
	_, err := config.Load(writeConfig(t, minimalConfig+"DISPLAY_I2C_ADDR = 0x3C\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown config key")
}

func TestLoadRejectsBadPreset(t *testing.T) {
	_, err := config.Load(writeConfig(t, minimalConfig+"GESTURE_PRESET = loud\n"))
	require.Error(t, err)
}

func TestLoadRejectsBadMotionSource(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
MQTT_BROKER = tcp://localhost:1883
MOTION_SOURCE = telepathy
SAMPLE_INTERVAL = 100
TOPIC_GESTURE_EVENT = gesture/event
`))
	require.Error(t, err)
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		errText string
	}{
		{
			"missing broker",
			"MOTION_SOURCE = mock\nSAMPLE_INTERVAL = 100\nTOPIC_GESTURE_EVENT = gesture/event\n",
			"MQTT_BROKER is required",
		},
		{
			"missing sample interval",
			"MQTT_BROKER = tcp://localhost:1883\nMOTION_SOURCE = mock\nTOPIC_GESTURE_EVENT = gesture/event\n",
			"SAMPLE_INTERVAL is required",
		},
		{
			"replay needs a file",
			minimalConfig + "MOTION_SOURCE = replay\n",
			"REPLAY_FILE is required",
		},
		{
			"serial needs a port",
			minimalConfig + "MOTION_SOURCE = serial\n",
			"SERIAL_PORT is required",
		},
		{
			"imu needs a device",
			minimalConfig + "MOTION_SOURCE = imu\n",
			"IMU_SPI_DEVICE is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := config.Load(writeConfig(t, minimalConfig+"NO_EQUALS_SIGN\n"))
	require.Error(t, err)
}
