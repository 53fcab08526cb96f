package app

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/motion"
)

func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to gesture events
	eventToken := client.Subscribe(cfg.TopicGestureEvent, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var env dispatch.Envelope
		if err := json.Unmarshal(msg.Payload(), &env); err != nil {
			log.Printf("console: event unmarshal error: %v", err)
			return
		}

		ev := env.Event
		detail := string(ev.Direction)
		if ev.Touch != "" {
			detail = fmt.Sprintf("%s (%.0f, %.0f)", ev.Touch, ev.X, ev.Y)
		}
		fmt.Printf(
			"[EVNT]  %-13s %-20s %s  device=%s\n",
			ev.Kind, detail, ev.Time.Format("15:04:05.000"), env.Device,
		)
	})
	eventToken.Wait()
	if eventToken.Error() != nil {
		return eventToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicGestureEvent)

	// Subscribe to raw acceleration
	if cfg.TopicAccel != "" {
		accelToken := client.Subscribe(cfg.TopicAccel, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var s motion.Sample
			if err := json.Unmarshal(msg.Payload(), &s); err != nil {
				log.Printf("console: accel unmarshal error: %v", err)
				return
			}

			m := math.Sqrt(s.Ax*s.Ax + s.Ay*s.Ay + s.Az*s.Az)
			fmt.Printf(
				"[ACCL]  ax=%6.3f ay=%6.3f az=%6.3f  |a|=%6.3f\n",
				s.Ax, s.Ay, s.Az, m,
			)
		})
		accelToken.Wait()
		if accelToken.Error() != nil {
			return accelToken.Error()
		}
		log.Printf("console: subscribed to %s", cfg.TopicAccel)
	}

	// Subscribe to attitude
	if cfg.TopicAttitude != "" {
		attToken := client.Subscribe(cfg.TopicAttitude, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var a motion.Attitude
			if err := json.Unmarshal(msg.Payload(), &a); err != nil {
				log.Printf("console: attitude unmarshal error: %v", err)
				return
			}

			fmt.Printf(
				"[ATTD]  PITCH=%6.2f  ROLL=%6.2f  YAW=%6.2f\n",
				a.Pitch*180/math.Pi, a.Roll*180/math.Pi, a.Yaw*180/math.Pi,
			)
		})
		attToken.Wait()
		if attToken.Error() != nil {
			return attToken.Error()
		}
		log.Printf("console: subscribed to %s", cfg.TopicAttitude)
	}

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
