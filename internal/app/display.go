package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/motion"
)

// displayData holds the latest data for display
type displayData struct {
	mu sync.RWMutex

	lastEvent    dispatch.Envelope
	haveEvent    bool
	lastAttitude motion.Attitude
	haveAttitude bool
}

// RunDisplay drives a small SSD1306 OLED showing the last gesture and
// the live attitude, for bench work without a console attached.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	// The driver fixes the device at the SSD1306 default I2C address.
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: initialized")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Gesture events
	eventToken := client.Subscribe(cfg.TopicGestureEvent, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var env dispatch.Envelope
		if err := json.Unmarshal(msg.Payload(), &env); err != nil {
			log.Printf("display: event unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.lastEvent = env
		data.haveEvent = true
		data.mu.Unlock()
	})
	eventToken.Wait()
	if eventToken.Error() != nil {
		return eventToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicGestureEvent)

	// Attitude
	if cfg.TopicAttitude != "" {
		attToken := client.Subscribe(cfg.TopicAttitude, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var a motion.Attitude
			if err := json.Unmarshal(msg.Payload(), &a); err != nil {
				log.Printf("display: attitude unmarshal error: %v", err)
				return
			}
			data.mu.Lock()
			data.lastAttitude = a
			data.haveAttitude = true
			data.mu.Unlock()
		})
		attToken.Wait()
		if attToken.Error() != nil {
			return attToken.Error()
		}
		log.Printf("display: subscribed to %s", cfg.TopicAttitude)
	}

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		snapshot := displayData{
			lastEvent:    data.lastEvent,
			haveEvent:    data.haveEvent,
			lastAttitude: data.lastAttitude,
			haveAttitude: data.haveAttitude,
		}
		data.mu.RUnlock()

		if err := updateGestureDisplay(dev, &snapshot); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func updateGestureDisplay(dev *ssd1306.Dev, data *displayData) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !data.haveEvent {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Gestures"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		ev := data.lastEvent.Event

		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(string(ev.Kind)))

		drawer.Dot = fixed.P(0, 26)
		switch {
		case ev.Direction != "":
			drawer.DrawBytes([]byte(string(ev.Direction)))
		case ev.Touch != "":
			drawer.DrawBytes([]byte(string(ev.Touch)))
		}

		age := time.Since(ev.Time).Round(time.Second)
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("%s ago", age)))
	}

	if data.haveAttitude {
		a := data.lastAttitude
		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("P%5.0f R%5.0f",
			a.Pitch*180/math.Pi, a.Roll*180/math.Pi)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("Gesture"))

	drawer.Dot = fixed.P(10, 43)
	drawer.DrawBytes([]byte("Engine"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
