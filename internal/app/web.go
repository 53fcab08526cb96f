package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/gesture_engine/internal/config"
	"github.com/relabs-tech/gesture_engine/internal/dispatch"
	"github.com/relabs-tech/gesture_engine/internal/gesture"
)

// wsHub tracks live websocket subscribers. Writes go out under the
// lock because gorilla connections do not allow concurrent writers.
type wsHub struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

func newWSHub() *wsHub {
	return &wsHub{conns: map[string]*websocket.Conn{}}
}

func (h *wsHub) add(id string, c *websocket.Conn) {
	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()
}

func (h *wsHub) remove(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

func (h *wsHub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("web: ws write error, dropping %s: %v", id, err)
			c.Close()
			delete(h.conns, id)
		}
	}
}

// RunWeb serves the operator view of the gesture stream: a JSON API
// over the recent event history and a websocket that pushes live
// events. Frames received on the websocket are raw touch records from
// the page; they are forwarded to the touch topic for the producer to
// classify.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu      sync.RWMutex
		history []dispatch.Envelope
	)
	historySize := cfg.EventHistorySize
	if historySize <= 0 {
		historySize = 100
	}

	hub := newWSHub()

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to gesture events, keep bounded history and push live
	token := client.Subscribe(cfg.TopicGestureEvent, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var env dispatch.Envelope
		if err := json.Unmarshal(msg.Payload(), &env); err != nil {
			log.Printf("web: event unmarshal error: %v", err)
			return
		}

		mu.Lock()
		history = append(history, env)
		if len(history) > historySize {
			history = history[len(history)-historySize:]
		}
		mu.Unlock()

		hub.broadcast(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicGestureEvent)

	// 3) JSON API: recent events, newest last
	http.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(history); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/last", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if len(history) == 0 {
			http.Error(w, "no events yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(history[len(history)-1]); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket: live events out, raw touch records in
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: ws upgrade error: %v", err)
			return
		}

		id := uuid.NewString()
		hub.add(id, conn)
		log.Printf("web: ws client connected (%s)", id)

		defer func() {
			hub.remove(id)
			conn.Close()
			log.Printf("web: ws client disconnected (%s)", id)
		}()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var t gesture.Touch
			if err := json.Unmarshal(payload, &t); err != nil {
				log.Printf("web: touch frame unmarshal error: %v", err)
				continue
			}
			if t.Time.IsZero() {
				t.Time = time.Now()
			}

			out, err := json.Marshal(t)
			if err != nil {
				log.Printf("web: touch marshal error: %v", err)
				continue
			}
			if token := client.Publish(cfg.TopicTouchRaw, 0, false, out); token.Wait() && token.Error() != nil {
				log.Printf("web: touch publish error: %v", token.Error())
			}
		}
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
