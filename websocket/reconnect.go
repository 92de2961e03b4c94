package websocket

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Nackshayan/MultilingualChatAssistant/logger"
)

const (
	// Initial delay before first reconnection attempt
	initialReconnectDelay = 1 * time.Second
	// Maximum delay between reconnection attempts
	maxReconnectDelay = 30 * time.Second
	// Factor to multiply delay after each failed attempt
	reconnectDelayMultiplier = 2
)

// ReconnectingClient is a consumer-side websocket connection that
// re-establishes itself with exponential backoff. The watch CLI uses it to
// follow the event feed across server restarts.
type ReconnectingClient struct {
	url *url.URL
	log *logger.Logger

	conn   *websocket.Conn
	connMu sync.RWMutex

	reconnectDelay time.Duration
	isConnected    bool
	connectMu      sync.Mutex

	receive   chan []byte
	reconnect chan struct{}

	onMessage func([]byte)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewReconnectingClient creates a client for the given ws:// URL.
func NewReconnectingClient(urlStr string) (*ReconnectingClient, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ReconnectingClient{
		url:            u,
		log:            logger.GetLogger().WithField("component", "ws-client"),
		reconnectDelay: initialReconnectDelay,
		receive:        make(chan []byte, 256),
		reconnect:      make(chan struct{}, 1),
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

// Start connects and begins the reconnection loop.
func (rc *ReconnectingClient) Start() error {
	go rc.reconnectLoop()

	if err := rc.connect(); err != nil {
		rc.scheduleReconnect()
		return err
	}
	return nil
}

// Stop tears the client down permanently.
func (rc *ReconnectingClient) Stop() {
	rc.cancel()
	rc.disconnect()
}

// Receive returns the channel carrying inbound messages.
func (rc *ReconnectingClient) Receive() <-chan []byte {
	return rc.receive
}

// SetOnMessage sets a callback invoked for every inbound message.
func (rc *ReconnectingClient) SetOnMessage(fn func([]byte)) {
	rc.onMessage = fn
}

// IsConnected reports the connection status.
func (rc *ReconnectingClient) IsConnected() bool {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()
	return rc.isConnected
}

func (rc *ReconnectingClient) connect() error {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()

	if rc.isConnected {
		return nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(rc.url.String(), nil)
	if err != nil {
		return err
	}

	rc.connMu.Lock()
	rc.conn = conn
	rc.connMu.Unlock()

	rc.isConnected = true
	rc.reconnectDelay = initialReconnectDelay

	go rc.readLoop(conn)

	rc.log.Infof("connected to %s", rc.url.String())
	return nil
}

func (rc *ReconnectingClient) disconnect() {
	rc.connectMu.Lock()
	defer rc.connectMu.Unlock()

	if !rc.isConnected {
		return
	}
	rc.isConnected = false

	rc.connMu.Lock()
	if rc.conn != nil {
		rc.conn.Close()
		rc.conn = nil
	}
	rc.connMu.Unlock()
}

func (rc *ReconnectingClient) scheduleReconnect() {
	select {
	case rc.reconnect <- struct{}{}:
	default:
	}
}

func (rc *ReconnectingClient) reconnectLoop() {
	for {
		select {
		case <-rc.ctx.Done():
			return
		case <-rc.reconnect:
			if rc.IsConnected() {
				continue
			}

			select {
			case <-time.After(rc.reconnectDelay):
			case <-rc.ctx.Done():
				return
			}

			if err := rc.connect(); err != nil {
				rc.log.Warnf("reconnection failed: %v", err)

				rc.reconnectDelay *= reconnectDelayMultiplier
				if rc.reconnectDelay > maxReconnectDelay {
					rc.reconnectDelay = maxReconnectDelay
				}
				rc.scheduleReconnect()
			}
		}
	}
}

func (rc *ReconnectingClient) readLoop(conn *websocket.Conn) {
	defer func() {
		rc.disconnect()
		rc.scheduleReconnect()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				rc.log.Warnf("read error: %v", err)
			}
			return
		}

		select {
		case rc.receive <- message:
		case <-rc.ctx.Done():
			return
		default:
			// Consumer is behind, drop the message
		}

		if rc.onMessage != nil {
			rc.onMessage(message)
		}
	}
}
