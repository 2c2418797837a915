package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"corevitals-go/internal/config"
	"corevitals-go/internal/middleware"
	"corevitals-go/internal/model"
	"corevitals-go/internal/service"
	"corevitals-go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // 允许所有来源，鉴权由 token 完成
		},
	}
)

const (
	wsReadLimit   = 1 << 20
	wsWriteWait   = 10 * time.Second
	wsPongWait    = 60 * time.Second
	wsPingPeriod  = wsPongWait * 9 / 10
	wsReplyType   = "reply"
	wsErrorType   = "error"
	wsReplyBudget = 2 * time.Minute
)

// ChatRequest 携带完整的对话历史，按时间顺序排列。
type ChatRequest struct {
	Messages []model.ChatTurn `json:"messages" binding:"required,dive"`
}

// chatFrame 是 WebSocket 下行消息。
type chatFrame struct {
	Type  string `json:"type"`
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// ChatHandler 负责健康助手的对话接口。
type ChatHandler struct {
	assistantService service.AssistantService
	limiter          *middleware.Limiter
}

// NewChatHandler 创建一个新的 ChatHandler。
// WebSocket 连接内的每条消息都单独计入限流，counter 为 nil 时不限流。
func NewChatHandler(assistantService service.AssistantService, counter middleware.Counter, rl config.RateLimitConfig) *ChatHandler {
	return &ChatHandler{
		assistantService: assistantService,
		limiter:          middleware.NewLimiter(counter, rl),
	}
}

// Chat 处理一次性的对话请求。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Chat", err)
		return
	}

	reply, err := h.assistantService.Reply(c.Request.Context(), req.Messages)
	if err != nil {
		respondError(c, "Chat", err)
		return
	}
	success(c, "success", gin.H{"reply": reply})
}

// Handle 处理一个 WebSocket 连接。每条上行消息都是一份完整的对话历史，
// 连接内的请求按顺序处理。
func (h *ChatHandler) Handle(c *gin.Context) {
	clientID := ""
	if claims, exists := middleware.Claims(c); exists {
		clientID = claims.ClientID
	}
	subject := middleware.RateLimitSubject(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立，客户端: %s", clientID)

	conn.SetReadLimit(wsReadLimit)
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go keepAlive(ctx, conn)

	for {
		// 回复可能耗时较长，每次读取前重新计算读超时
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("从 WebSocket 读取消息失败: %v", err)
			}
			return
		}

		frame := h.reply(ctx, clientID, subject, message)
		if err := h.write(conn, frame); err != nil {
			log.Warnf("写入 WebSocket 消息失败: %v", err)
			return
		}
	}
}

// reply 处理一条上行消息。无法解析或超出限流的消息只影响本条回复，不断开连接。
func (h *ChatHandler) reply(ctx context.Context, clientID, subject string, message []byte) chatFrame {
	q, err := h.limiter.Allow(ctx, subject)
	if err != nil {
		log.Warnw("限流计数失败，放行消息", "clientId", clientID, "error", err)
	} else if !q.Allowed {
		log.Warnw("WebSocket 消息触发限流", "clientId", clientID, "limit", q.Limit)
		return chatFrame{Type: wsErrorType, Error: middleware.MsgRateLimited}
	}

	var req ChatRequest
	if err := json.Unmarshal(message, &req); err != nil {
		log.Warnf("WebSocket 消息格式错误: %v", err)
		return chatFrame{Type: wsErrorType, Error: msgInvalidRequest}
	}

	replyCtx, cancel := context.WithTimeout(ctx, wsReplyBudget)
	defer cancel()
	reply, err := h.assistantService.Reply(replyCtx, req.Messages)
	if err != nil {
		status, msg := classify(err)
		log.Errorw("WebSocket 对话失败", "clientId", clientID, "status", status, "error", err)
		return chatFrame{Type: wsErrorType, Error: msg}
	}
	return chatFrame{Type: wsReplyType, Reply: reply}
}

// keepAlive 定期发送 ping，直到连接关闭。
func keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *ChatHandler) write(conn *websocket.Conn, frame chatFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(frame)
}
