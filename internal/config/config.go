package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicAccel        string
	TopicAttitude     string
	TopicGestureEvent string
	TopicTouchRaw     string

	// Identity attached to every outgoing gesture envelope
	DeviceID string

	// Motion intake
	MotionSource   string // "imu", "serial", "replay", "mock"
	SampleInterval int    // milliseconds
	ReplayFile     string

	// IMU Hardware
	IMUSPIDevice string
	IMUCSPin     string
	// Accelerometer range index: 0=±2g, 1=±4g, 2=±8g, 3=±16g
	IMUAccelRange byte

	// Serial board
	SerialPort     string
	SerialBaudRate int

	// Gesture thresholds. Preset is "responsive" or "quiet"; the
	// numeric keys override individual preset values and are ignored
	// when left at 0. Angles are configured in degrees, windows in
	// milliseconds.
	GesturePreset       string
	DropMaxG            float64
	ShakeMinDelta       float64
	HardShakeMinDelta   float64
	DoubleShakeWindowMS int
	TiltPitchMinDeg     float64
	TiltRollMinDeg      float64
	FlipMinDeg          float64
	TiltIntervalMS      int
	FlipIntervalMS      int
	LongPressMS         int

	// Web Server
	WebServerPort    int
	EventHistorySize int

	// Display
	DisplayUpdateInterval int // milliseconds

	// Logging (rotation applies only when LogFile is set)
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock for initialization,
//     read lock for Get() allows multiple concurrent readers.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_ACCEL":
		c.TopicAccel = value
	case "TOPIC_ATTITUDE":
		c.TopicAttitude = value
	case "TOPIC_GESTURE_EVENT":
		c.TopicGestureEvent = value
	case "TOPIC_TOUCH_RAW":
		c.TopicTouchRaw = value

	case "DEVICE_ID":
		c.DeviceID = value

	// Motion intake
	case "MOTION_SOURCE":
		switch value {
		case "imu", "serial", "replay", "mock":
			c.MotionSource = value
		default:
			return fmt.Errorf("MOTION_SOURCE must be imu, serial, replay or mock, got %q", value)
		}
	case "SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.SampleInterval = interval
	case "REPLAY_FILE":
		c.ReplayFile = value

	// IMU Hardware
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_CS_PIN":
		c.IMUCSPin = value
	case "IMU_ACCEL_RANGE":
		rangeVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_ACCEL_RANGE %q: %w", value, err)
		}
		if rangeVal < 0 || rangeVal > 3 {
			return fmt.Errorf("IMU_ACCEL_RANGE must be 0-3 (0=±2g, 1=±4g, 2=±8g, 3=±16g), got %d", rangeVal)
		}
		c.IMUAccelRange = byte(rangeVal)

	// Serial board
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = rate

	// Gesture thresholds
	case "GESTURE_PRESET":
		switch value {
		case "responsive", "quiet":
			c.GesturePreset = value
		default:
			return fmt.Errorf("GESTURE_PRESET must be responsive or quiet, got %q", value)
		}
	case "GESTURE_DROP_MAX_G":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_DROP_MAX_G %q: %w", value, err)
		}
		c.DropMaxG = v
	case "GESTURE_SHAKE_MIN_DELTA":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_SHAKE_MIN_DELTA %q: %w", value, err)
		}
		c.ShakeMinDelta = v
	case "GESTURE_HARD_SHAKE_MIN_DELTA":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_HARD_SHAKE_MIN_DELTA %q: %w", value, err)
		}
		c.HardShakeMinDelta = v
	case "GESTURE_DOUBLE_SHAKE_WINDOW_MS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_DOUBLE_SHAKE_WINDOW_MS %q: %w", value, err)
		}
		c.DoubleShakeWindowMS = v
	case "GESTURE_TILT_PITCH_MIN_DEG":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_TILT_PITCH_MIN_DEG %q: %w", value, err)
		}
		c.TiltPitchMinDeg = v
	case "GESTURE_TILT_ROLL_MIN_DEG":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_TILT_ROLL_MIN_DEG %q: %w", value, err)
		}
		c.TiltRollMinDeg = v
	case "GESTURE_FLIP_MIN_DEG":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_FLIP_MIN_DEG %q: %w", value, err)
		}
		c.FlipMinDeg = v
	case "GESTURE_TILT_INTERVAL_MS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_TILT_INTERVAL_MS %q: %w", value, err)
		}
		c.TiltIntervalMS = v
	case "GESTURE_FLIP_INTERVAL_MS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_FLIP_INTERVAL_MS %q: %w", value, err)
		}
		c.FlipIntervalMS = v
	case "GESTURE_LONG_PRESS_MS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GESTURE_LONG_PRESS_MS %q: %w", value, err)
		}
		c.LongPressMS = v

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port
	case "EVENT_HISTORY_SIZE":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid EVENT_HISTORY_SIZE %q: %w", value, err)
		}
		c.EventHistorySize = size

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	// Logging
	case "LOG_FILE":
		c.LogFile = value
	case "LOG_MAX_SIZE_MB":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_MAX_SIZE_MB %q: %w", value, err)
		}
		c.LogMaxSizeMB = v
	case "LOG_MAX_BACKUPS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_MAX_BACKUPS %q: %w", value, err)
		}
		c.LogMaxBackups = v
	case "LOG_MAX_AGE_DAYS":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_MAX_AGE_DAYS %q: %w", value, err)
		}
		c.LogMaxAgeDays = v

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.MotionSource == "" {
		return fmt.Errorf("MOTION_SOURCE is required")
	}
	if c.SampleInterval == 0 {
		return fmt.Errorf("SAMPLE_INTERVAL is required")
	}
	if c.TopicGestureEvent == "" {
		return fmt.Errorf("TOPIC_GESTURE_EVENT is required")
	}
	if c.MotionSource == "replay" && c.ReplayFile == "" {
		return fmt.Errorf("REPLAY_FILE is required when MOTION_SOURCE=replay")
	}
	if c.MotionSource == "serial" {
		if c.SerialPort == "" {
			return fmt.Errorf("SERIAL_PORT is required when MOTION_SOURCE=serial")
		}
		if c.SerialBaudRate == 0 {
			return fmt.Errorf("SERIAL_BAUD_RATE is required when MOTION_SOURCE=serial")
		}
	}
	if c.MotionSource == "imu" && c.IMUSPIDevice == "" {
		return fmt.Errorf("IMU_SPI_DEVICE is required when MOTION_SOURCE=imu")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
