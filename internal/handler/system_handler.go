package handler

import (
	"corevitals-go/internal/model"
	"corevitals-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SystemHandler 提供身体系统目录的查询接口。
type SystemHandler struct {
	systemService service.SystemService
}

// NewSystemHandler 创建一个新的 SystemHandler。
func NewSystemHandler(systemService service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// List 返回系统列表，支持 ?status= 过滤。
func (h *SystemHandler) List(c *gin.Context) {
	systems, err := h.systemService.List(model.SystemStatus(c.Query("status")))
	if err != nil {
		respondError(c, "ListSystems", err)
		return
	}
	success(c, "success", systems)
}

// Get 返回单个系统的详情。
func (h *SystemHandler) Get(c *gin.Context) {
	system, err := h.systemService.Get(c.Param("id"))
	if err != nil {
		respondError(c, "GetSystem", err)
		return
	}
	success(c, "success", system)
}
