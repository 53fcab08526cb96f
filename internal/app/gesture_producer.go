package app

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
	"github.com/relabs-tech/gesture_engine/internal/motion"
)

// RunGestureProducer is the main pipeline: motion source → classifier
// → MQTT. Raw samples are published next to the classified events so
// consumers can watch the stream the classifier sees. Raw touch
// records arriving on the touch topic are classified through the same
// sink.
func RunGestureProducer() error {
	log.Println("starting gesture-engine producer")

	cfg := config.Get()
	SetupLogging(cfg)

	// --- Choose motion source ---
	// A missing IMU is not fatal: the producer keeps running so touch
	// gestures still flow; motion gestures are simply disabled.
	src, err := newMotionSource(cfg)
	if err != nil {
		if cfg.MotionSource == "imu" {
			log.Printf("WARNING: motion sensor unavailable, motion gestures disabled: %v", err)
			src = nil
		} else {
			return err
		}
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("connected to MQTT broker at %s", cfg.MQTTBroker)

	sink := dispatch.NewMQTTSink(client, cfg.TopicGestureEvent, cfg.DeviceID)
	cls := gesture.NewClassifier(thresholdsFromConfig(cfg), sink)
	defer cls.Stop()

	// --- touch intake ---
	if cfg.TopicTouchRaw != "" {
		token := client.Subscribe(cfg.TopicTouchRaw, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var t gesture.Touch
			if err := json.Unmarshal(msg.Payload(), &t); err != nil {
				log.Printf("touch unmarshal error: %v", err)
				return
			}
			if t.Time.IsZero() {
				t.Time = time.Now()
			}
			cls.OnTouch(t)
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("subscribed to %s", cfg.TopicTouchRaw)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// main tick
	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("starting sample loop")

	for {
		select {
		case <-sigCh:
			log.Println("producer: shutting down")
			cls.Stop()
			return nil

		case <-ticker.C:
			if src == nil {
				continue
			}

			reading, err := src.Next()
			if errors.Is(err, io.EOF) {
				log.Println("motion source exhausted")
				cls.Flush()
				return nil
			}
			if err != nil {
				log.Printf("error reading motion source: %v", err)
				continue
			}

			publishReading(client, cfg, reading)

			cls.OnAcceleration(reading.Accel)
			cls.OnAttitude(reading.Attitude)
		}
	}
}

// newMotionSource builds the configured motion source.
func newMotionSource(cfg *config.Config) (motion.Source, error) {
	switch cfg.MotionSource {
	case "mock":
		log.Println("using mock motion source")
		return motion.NewMockSource(), nil
	case "replay":
		log.Printf("replaying motion from %s", cfg.ReplayFile)
		return motion.NewReplaySource(cfg.ReplayFile)
	case "serial":
		return motion.NewSerialSource(cfg.SerialPort, uint(cfg.SerialBaudRate))
	default: // "imu", enforced by config validation
		return motion.NewIMUSource(cfg.IMUSPIDevice, cfg.IMUCSPin, cfg.IMUAccelRange)
	}
}

// publishReading publishes the raw sample and attitude, retained so a
// late consumer immediately sees the current state.
func publishReading(client mqtt.Client, cfg *config.Config, r motion.Reading) {
	if cfg.TopicAccel != "" {
		if payload, err := json.Marshal(r.Accel); err != nil {
			log.Printf("json marshal error (accel): %v", err)
		} else if token := client.Publish(cfg.TopicAccel, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("MQTT publish error (%s): %v", cfg.TopicAccel, token.Error())
		}
	}

	if cfg.TopicAttitude != "" {
		if payload, err := json.Marshal(r.Attitude); err != nil {
			log.Printf("json marshal error (attitude): %v", err)
		} else if token := client.Publish(cfg.TopicAttitude, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("MQTT publish error (%s): %v", cfg.TopicAttitude, token.Error())
		}
	}
}
