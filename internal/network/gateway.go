package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/annel0/spawnlight/internal/eventbus"
	"github.com/annel0/spawnlight/internal/logging"
	"github.com/annel0/spawnlight/internal/overlay"
	"github.com/annel0/spawnlight/internal/render"
	"github.com/annel0/spawnlight/internal/storage"
	"github.com/annel0/spawnlight/internal/vec"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	maxMessage   = 4096
	sendBuffer   = 64
)

// Конфигурация WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене следует ограничить доступ
	},
}

// frame исходящий websocket-фрейм
type frame struct {
	kind int
	data []byte
}

// Client представляет подключенного наблюдателя
type Client struct {
	conn     *websocket.Conn
	send     chan frame
	observer uuid.UUID // uuid.Nil до hello
	closed   bool
	mu       sync.Mutex
}

// enqueue ставит фрейм в очередь отправки; false, если очередь переполнена или закрыта
func (c *Client) enqueue(f frame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Gateway принимает websocket-подключения наблюдателей, управляет их сессиями
// оверлея и доставляет кадры ParticleBatch. Одновременно служит
// overlay.ObserverLocator: позиции берутся из репозитория позиций, мир один.
type Gateway struct {
	world     overlay.BlockSource
	positions *storage.MemoryPositionRepo
	bus       eventbus.EventBus
	projector *overlay.Projector

	clients map[uuid.UUID]*Client
	mu      sync.RWMutex

	onDisconnect func(uuid.UUID)
	sub          eventbus.Subscription
}

var _ overlay.ObserverLocator = (*Gateway)(nil)

// GatewayOption настраивает Gateway
type GatewayOption func(*Gateway)

// WithDisconnectHook задаёт функцию, вызываемую после отключения наблюдателя
func WithDisconnectHook(fn func(uuid.UUID)) GatewayOption {
	return func(g *Gateway) { g.onDisconnect = fn }
}

// NewGateway создаёт шлюз. Перед обслуживанием подключений нужно вызвать Bind.
func NewGateway(world overlay.BlockSource, positions *storage.MemoryPositionRepo, bus eventbus.EventBus, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		world:     world,
		positions: positions,
		bus:       bus,
		clients:   make(map[uuid.UUID]*Client),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bind связывает шлюз с Projector. Projector в свою очередь использует шлюз как locator.
func (g *Gateway) Bind(p *overlay.Projector) {
	g.projector = p
}

// Locate реализует overlay.ObserverLocator
func (g *Gateway) Locate(id uuid.UUID) (overlay.Observer, bool) {
	pos, ok := g.positions.Get(id)
	if !ok {
		return overlay.Observer{}, false
	}
	return overlay.Observer{Position: pos, World: g.world}, true
}

// Start подписывается на кадры оверлея и пересылает их клиентам
func (g *Gateway) Start(ctx context.Context) error {
	sub, err := g.bus.Subscribe(ctx, eventbus.Filter{Types: []string{render.EventParticleBatch}}, g.forward)
	if err != nil {
		return err
	}
	g.sub = sub
	logging.GetNetworkLogger().Info("🌐 Шлюз оверлея: подписка на кадры активирована")
	return nil
}

// Stop отписывается от шины и закрывает все соединения
func (g *Gateway) Stop() {
	if g.sub != nil {
		g.sub.Unsubscribe()
	}
	g.mu.Lock()
	for id, client := range g.clients {
		client.close()
		delete(g.clients, id)
	}
	g.mu.Unlock()
}

// forward отправляет кадр адресату бинарным фреймом без перекодирования
func (g *Gateway) forward(_ context.Context, ev *eventbus.Envelope) {
	id, err := uuid.Parse(ev.Metadata["observer"])
	if err != nil {
		logging.GetNetworkLogger().Warn("Кадр %s без адресата: %v", ev.ID, err)
		return
	}

	g.mu.RLock()
	client, ok := g.clients[id]
	g.mu.RUnlock()
	if !ok {
		return
	}

	if !client.enqueue(frame{kind: websocket.BinaryMessage, data: ev.Payload}) {
		logging.GetNetworkLogger().Debug("Кадр для %s пропущен: очередь отправки заполнена", id)
	}
}

// ConnectedClients возвращает количество наблюдателей, приславших hello
func (g *Gateway) ConnectedClients() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// ServeHTTP обрабатывает новое WebSocket подключение
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.GetNetworkLogger().Warn("Ошибка upgrade соединения: %v", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan frame, sendBuffer),
	}

	go g.writePump(client)
	go g.readPump(client)
}

// readPump читает команды клиента до разрыва соединения
func (g *Gateway) readPump(client *Client) {
	defer func() {
		g.disconnect(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessage)
	client.conn.SetReadDeadline(time.Now().Add(readTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.GetNetworkLogger().Debug("Ошибка чтения сообщения: %v", err)
			}
			return
		}
		client.conn.SetReadDeadline(time.Now().Add(readTimeout))

		msg, err := ParseClientMessage(data)
		if err != nil {
			g.reply(client, errorMessage("%v", err))
			continue
		}

		if reply := g.handle(client, msg); reply != nil {
			g.reply(client, reply)
		}
	}
}

// handle выполняет одну команду и возвращает ответ
func (g *Gateway) handle(client *Client, msg *ClientMessage) *ServerMessage {
	if msg.Type == MsgHello {
		return g.hello(client, msg)
	}

	// Все команды, кроме hello, требуют представиться
	if client.observer == uuid.Nil {
		return errorMessage("сначала отправьте hello")
	}

	ctx := context.Background()
	session := g.projector.Ensure(ctx, client.observer)

	switch msg.Type {
	case MsgMove:
		pos := vec.Vec3Float{X: msg.X, Y: msg.Y, Z: msg.Z}
		if err := g.positions.Save(ctx, client.observer, pos); err != nil {
			return errorMessage("%v", err)
		}
		return nil
	case MsgShow:
		session.Show()
	case MsgHide:
		session.Hide()
	case MsgToggle:
		previous := session.Toggle()
		state := stateMessage(client.observer, session)
		state.Previous = &previous
		return state
	case MsgMode:
		mode, err := overlay.ParseMode(msg.Mode)
		if err != nil {
			return errorMessage("%v", err)
		}
		session.SetMode(mode)
	case MsgCycle:
		session.CycleMode()
	default:
		return errorMessage("неизвестная команда %q", msg.Type)
	}
	return stateMessage(client.observer, session)
}

// hello регистрирует наблюдателя. Для пустого observer сервер выдаёт новый ID.
func (g *Gateway) hello(client *Client, msg *ClientMessage) *ServerMessage {
	if client.observer != uuid.Nil {
		return errorMessage("hello уже получен")
	}

	id := uuid.New()
	if msg.Observer != "" {
		parsed, err := uuid.Parse(msg.Observer)
		if err != nil || parsed == uuid.Nil {
			return errorMessage("некорректный observer %q", msg.Observer)
		}
		id = parsed
	}

	g.mu.Lock()
	if previous, ok := g.clients[id]; ok {
		// Повторное подключение того же наблюдателя вытесняет старое
		previous.close()
	}
	g.clients[id] = client
	g.mu.Unlock()

	client.observer = id
	if err := g.positions.Save(context.Background(), id, vec.Vec3Float{X: msg.X, Y: msg.Y, Z: msg.Z}); err != nil {
		logging.GetNetworkLogger().Warn("Не удалось сохранить начальную позицию %s: %v", id, err)
	}

	session := g.projector.Ensure(context.Background(), id)
	logging.GetNetworkLogger().Info("👤 Наблюдатель подключён: %s", id)
	return stateMessage(id, session)
}

// disconnect убирает наблюдателя вместе с его сессией. Настройки остаются в
// хранилище предпочтений и восстановятся при следующем hello.
func (g *Gateway) disconnect(client *Client) {
	client.close()

	id := client.observer
	if id == uuid.Nil {
		return
	}

	g.mu.Lock()
	if current, ok := g.clients[id]; ok && current == client {
		delete(g.clients, id)
		g.mu.Unlock()
		if err := g.positions.Delete(context.Background(), id); err != nil {
			logging.GetNetworkLogger().Debug("Позиция %s не удалена: %v", id, err)
		}
		if g.projector != nil {
			g.projector.Remove(id)
		}
		if g.onDisconnect != nil {
			g.onDisconnect(id)
		}
		logging.GetNetworkLogger().Info("👋 Наблюдатель отключён: %s", id)
		return
	}
	g.mu.Unlock()
}

func (g *Gateway) reply(client *Client, msg *ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.GetNetworkLogger().Error("Ошибка сериализации ответа: %v", err)
		return
	}
	client.enqueue(frame{kind: websocket.TextMessage, data: data})
}

func stateMessage(id uuid.UUID, s *overlay.Session) *ServerMessage {
	return &ServerMessage{
		Type:     MsgState,
		Observer: id.String(),
		Enabled:  s.IsEnabled(),
		Mode:     s.Mode().String(),
	}
}

// writePump асинхронно отправляет фреймы клиенту
func (g *Gateway) writePump(client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case f, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Канал закрыт
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(f.kind, f.data); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
