package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // En desarrollo se aceptan todos los orígenes
	},
}

// GlobalHub es la única instancia del hub para toda la aplicación.
var GlobalHub = NewHub()

// Envelope es el sobre genérico de todo lo que viaja por el websocket.
type Envelope struct {
	Type    string          `json:"type"` // "chat_message", "notification"
	Payload json.RawMessage `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// Hub mantiene los clientes conectados y reparte mensajes entrantes.
type Hub struct {
	clients    map[uint]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uint]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.userID] = client
			h.mu.Unlock()
			slog.Info("Cliente conectado al hub", "userID", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.mu.Unlock()
			slog.Info("Cliente desconectado del hub", "userID", client.userID)

		case messageData := <-h.broadcast:
			h.handleChatMessage(messageData)
		}
	}
}

// handleChatMessage persiste un mensaje de chat entrante y lo reparte entre
// los participantes. Los que no están conectados reciben una notificación.
func (h *Hub) handleChatMessage(messageData []byte) {
	var env Envelope
	if err := json.Unmarshal(messageData, &env); err != nil {
		slog.Error("No se pudo deserializar el mensaje del hub", "error", err)
		return
	}
	if env.Type != "chat_message" {
		return
	}

	var msg models.ChatMessage
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		slog.Error("Payload de chat inválido", "error", err)
		return
	}

	// 1. Guardamos el mensaje en la base
	if err := config.DB.Create(&msg).Error; err != nil {
		slog.Error("No se pudo guardar el mensaje de chat", "error", err)
		return
	}
	config.DB.Preload("User").First(&msg, msg.ID)
	config.DB.Model(&models.Chat{}).Where("id = ?", msg.ChatID).Update("updated_at", msg.CreatedAt)

	// 2. Lo repartimos entre los participantes del chat
	var participants []models.ChatParticipant
	config.DB.Where("chat_id = ?", msg.ChatID).Find(&participants)

	outbound, err := marshalEnvelope("chat_message", msg)
	if err != nil {
		slog.Error("No se pudo serializar el mensaje saliente", "error", err)
		return
	}

	var offline []models.User
	for _, p := range participants {
		if h.SendToUser(p.UserID, outbound) {
			continue
		}
		if p.UserID != msg.UserID {
			offline = append(offline, models.User{Model: gorm.Model{ID: p.UserID}})
		}
	}

	// 3. Los participantes desconectados se enteran por notificación
	if len(offline) > 0 {
		notifs, err := notifyUsers(config.DB, offline, msg.UserID, models.NotifNewMessage,
			"Nuevo mensaje de "+msg.User.FullName, msg.Content)
		if err != nil {
			slog.Error("No se pudieron crear las notificaciones de mensaje", "error", err)
			return
		}
		pushNotifications(notifs)
	}
}

// SendToUser entrega bytes ya serializados a un usuario conectado.
// Devuelve false si el usuario no tiene conexión activa.
func (h *Hub) SendToUser(userID uint, data []byte) bool {
	h.mu.Lock()
	client, ok := h.clients[userID]
	h.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case client.send <- data:
		return true
	default:
		return false
	}
}

// IsConnected indica si el usuario tiene una conexión websocket activa.
func (h *Hub) IsConnected(userID uint) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.clients[userID]
	return ok
}

func marshalEnvelope(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// ChatWSEndpoint actualiza la conexión HTTP a websocket y registra al cliente.
func ChatWSEndpoint(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("No se pudo actualizar la conexión a websocket", "error", err)
		return
	}

	client := &Client{hub: GlobalHub, conn: conn, send: make(chan []byte, 256), userID: userID}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.hub.broadcast <- message
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
