// Package web provides the server-sent events stream that lets room views
// refresh their slot grids as soon as a booking changes.
package web

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/google/uuid"

	"github.com/openedu/crooms/internal/models"
)

// SSEClient represents a connected client receiving server-sent events
type SSEClient struct {
	id             string
	responseWriter http.ResponseWriter
	disconnected   chan struct{}
	lastActive     time.Time
}

// SSEManager handles server-sent events to clients
type SSEManager struct {
	clients      map[string]*SSEClient
	clientsMutex sync.RWMutex
	done         chan struct{}
	closeOnce    sync.Once
}

// NewSSEManager creates a new server-sent events manager
func NewSSEManager() *SSEManager {
	manager := &SSEManager{
		clients: make(map[string]*SSEClient),
		done:    make(chan struct{}),
	}

	// Regularly remove clients that have gone away without a clean close
	go manager.cleanupStaleSessions()

	return manager
}

// cleanupStaleSessions periodically removes clients that haven't been active
func (sm *SSEManager) cleanupStaleSessions() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sm.done:
			return
		case <-ticker.C:
			threshold := time.Now().Add(-2 * time.Minute)

			sm.clientsMutex.Lock()
			for id, client := range sm.clients {
				select {
				case <-client.disconnected:
					delete(sm.clients, id)
					log.Printf("Removed disconnected SSE client: %s", id)
				default:
					if client.lastActive.Before(threshold) {
						close(client.disconnected)
						delete(sm.clients, id)
						log.Printf("Removed stale SSE client: %s (inactive since %v)", id, client.lastActive)
					}
				}
			}
			sm.clientsMutex.Unlock()
		}
	}
}

// ServeHTTP implements the http.Handler interface for SSE connections
func (sm *SSEManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set required headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx proxy buffering

	if !isEventStreamSupported(r) {
		http.Error(w, "This endpoint requires EventStream support", http.StatusNotAcceptable)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientID := uuid.NewString()
	log.Printf("SSE client connected: %s from %s", clientID, r.RemoteAddr)

	client := &SSEClient{
		id:             clientID,
		responseWriter: w,
		disconnected:   make(chan struct{}),
		lastActive:     time.Now(),
	}

	sm.clientsMutex.Lock()
	sm.clients[clientID] = client
	sm.clientsMutex.Unlock()

	defer func() {
		sm.clientsMutex.Lock()
		delete(sm.clients, clientID)
		sm.clientsMutex.Unlock()
		log.Printf("SSE client disconnected: %s", clientID)
	}()

	// Send initial connected event with retry directive
	fmt.Fprintf(w, "retry: 5000\n")
	sse.Encode(w, sse.Event{
		Event: "connected",
		Data:  map[string]string{"id": clientID},
	})
	flusher.Flush()

	// Heartbeat to keep the connection alive through proxies
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			close(client.disconnected)
			return
		case <-client.disconnected:
			return
		case <-sm.done:
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprintf(w, ": heartbeat %s\n\n", time.Now().Format(time.RFC3339)); err != nil {
				log.Printf("Error sending heartbeat to client %s: %v", clientID, err)
				close(client.disconnected)
				return
			}
			flusher.Flush()

			sm.clientsMutex.Lock()
			client.lastActive = time.Now()
			sm.clientsMutex.Unlock()
		}
	}
}

// NotifyBookingUpdate sends a booking update event to all connected clients.
// Registered as a BookingService update callback: every create, approval
// decision and cancellation ends up here.
func (sm *SSEManager) NotifyBookingUpdate(booking *models.Booking) {
	eventID := fmt.Sprintf("%d", time.Now().UnixNano())

	sm.clientsMutex.RLock()
	clients := make([]*SSEClient, 0, len(sm.clients))
	for _, client := range sm.clients {
		clients = append(clients, client)
	}
	sm.clientsMutex.RUnlock()

	log.Printf("Publishing SSE update for booking %d to %d clients", booking.ID, len(clients))

	for _, client := range clients {
		select {
		case <-client.disconnected:
			continue
		default:
		}

		err := sse.Encode(client.responseWriter, sse.Event{
			Id:    eventID,
			Event: "booking-update",
			Data: map[string]interface{}{
				"roomId": booking.RoomID,
				"date":   booking.Date,
			},
		})
		if err != nil {
			log.Printf("Error sending SSE event to client %s: %v", client.id, err)
			continue
		}

		if f, ok := client.responseWriter.(http.Flusher); ok {
			f.Flush()
		}
	}
}

// ClientCount returns the number of currently connected clients
func (sm *SSEManager) ClientCount() int {
	sm.clientsMutex.RLock()
	defer sm.clientsMutex.RUnlock()
	return len(sm.clients)
}

// Shutdown closes all client connections and stops the cleanup loop
func (sm *SSEManager) Shutdown() {
	sm.closeOnce.Do(func() {
		close(sm.done)
	})

	sm.clientsMutex.Lock()
	defer sm.clientsMutex.Unlock()
	for id, client := range sm.clients {
		select {
		case <-client.disconnected:
		default:
			close(client.disconnected)
		}
		delete(sm.clients, id)
	}
}

// isEventStreamSupported checks whether the client accepts event streams
func isEventStreamSupported(r *http.Request) bool {
	accepts := r.Header.Get("Accept")
	return accepts == "" ||
		accepts == "*/*" ||
		strings.Contains(accepts, "text/event-stream")
}
