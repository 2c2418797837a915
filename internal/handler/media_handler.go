package handler

import (
	"corevitals-go/internal/service"

	"github.com/gin-gonic/gin"
)

// MediaHandler 处理语音合成与个性化视频请求。
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler 创建一个新的 MediaHandler。
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// SpeechRequest 是语音合成请求。文本校验交给网关，以便返回具体原因。
type SpeechRequest struct {
	Text string `json:"text"`
}

// VideoRequest 是个性化视频请求。
type VideoRequest struct {
	Message       string `json:"message"`
	RecipientName string `json:"recipientName"`
}

// Speak 把文本合成为语音，返回可直接播放的音频地址。
func (h *MediaHandler) Speak(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Speak", err)
		return
	}

	audio, err := h.mediaService.Speak(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, "Speak", err)
		return
	}
	success(c, "success", audio)
}

// CreateVideo 提交个性化视频生成请求。
func (h *MediaHandler) CreateVideo(c *gin.Context) {
	var req VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "CreateVideo", err)
		return
	}

	videoURL, err := h.mediaService.PersonalizedVideo(c.Request.Context(), req.Message, req.RecipientName)
	if err != nil {
		respondError(c, "CreateVideo", err)
		return
	}
	success(c, "success", gin.H{"videoUrl": videoURL})
}

// ListReplicas 返回可用于生成视频的数字人形象。
func (h *MediaHandler) ListReplicas(c *gin.Context) {
	replicas, err := h.mediaService.Replicas(c.Request.Context())
	if err != nil {
		respondError(c, "ListReplicas", err)
		return
	}
	success(c, "success", replicas)
}
