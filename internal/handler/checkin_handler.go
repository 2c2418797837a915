package handler

import (
	"corevitals-go/internal/model"
	"corevitals-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckInHandler 处理每日打卡分析。
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler 创建一个新的 CheckInHandler。
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// Analyze 对一次打卡做跨系统分析，打卡数据本身不会被保存。
func (h *CheckInHandler) Analyze(c *gin.Context) {
	var req model.CheckIn
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AnalyzeCheckIn", err)
		return
	}

	analysis, err := h.checkInService.Analyze(c.Request.Context(), req)
	if err != nil {
		respondError(c, "AnalyzeCheckIn", err)
		return
	}
	success(c, "success", gin.H{"analysis": analysis})
}
