/*
 * @module api/controllers/cleansing_controller
 * @description 清洗运行控制器，提供运行触发与运行报告查询接口
 * @architecture 分层架构 - 控制器层
 * @documentReference dev_docs/silver_layer_design.md
 * @stateFlow HTTP请求 -> 参数验证 -> 管道调用 -> 响应返回
 * @rules 清洗核心不感知HTTP，控制器仅做参数转换与报告查询
 * @dependencies service/pipeline, service/models, service/meta
 * @refs api/routes.go
 */

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"silver-service/service"
	"silver-service/service/meta"
	"silver-service/service/models"
	"silver-service/service/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// CleansingController 清洗运行控制器
type CleansingController struct{}

// NewCleansingController 创建清洗运行控制器
func NewCleansingController() *CleansingController {
	return &CleansingController{}
}

// RunRequest 触发清洗运行请求
type RunRequest struct {
	// EntityTypes 指定要清洗的实体类型，为空时对全部实体执行全量刷新
	EntityTypes []string `json:"entity_types,omitempty" example:"[\"crm_customer\"]"`
}

// TriggerRun 触发一次清洗运行
// @Summary 触发清洗运行
// @Description 对指定实体（或全部实体）执行一次银层全量刷新，同步返回运行报告
// @Tags 清洗
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Router /cleansing/run [post]
func (c *CleansingController) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.JSON(w, r, BadRequestResponse("请求参数解析失败", err))
			return
		}
	}

	run, err := service.GlobalPipeline.Run(r.Context(), "manual", req.EntityTypes)
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			render.JSON(w, r, ErrorResponse(http.StatusConflict, "已有清洗运行正在进行中", nil))
			return
		}
		render.JSON(w, r, InternalErrorResponse("触发清洗运行失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("清洗运行完成", run))
}

// ListRuns 查询运行报告列表
// @Summary 查询清洗运行列表
// @Description 分页查询历史运行报告，按开始时间倒序
// @Tags 清洗
// @Produce json
// @Success 200 {object} PaginatedResponse
// @Router /cleansing/runs [get]
func (c *CleansingController) ListRuns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 || size > 100 {
		size = 10
	}

	var total int64
	if err := service.DB.Model(&models.CleansingRun{}).Count(&total).Error; err != nil {
		render.JSON(w, r, InternalErrorResponse("获取运行列表失败", err))
		return
	}

	var runs []models.CleansingRun
	err := service.DB.Order("start_time DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&runs).Error
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("获取运行列表失败", err))
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: 0,
		Msg:    "获取运行列表成功",
		Data:   runs,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetRun 查询单次运行报告
// @Summary 查询清洗运行详情
// @Description 返回指定运行及其分实体结果
// @Tags 清洗
// @Produce json
// @Success 200 {object} APIResponse
// @Router /cleansing/runs/{id} [get]
func (c *CleansingController) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		render.JSON(w, r, BadRequestResponse("运行ID不能为空", nil))
		return
	}

	var run models.CleansingRun
	err := service.DB.Preload("EntityResults").First(&run, "id = ?", runID).Error
	if err != nil {
		render.JSON(w, r, NotFoundResponse("获取运行详情失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取运行详情成功", run))
}

// GetEntityTypes 查询支持的实体类型
// @Summary 查询实体类型
// @Description 返回清洗管道支持的全部实体类型
// @Tags 清洗
// @Produce json
// @Success 200 {object} APIResponse
// @Router /cleansing/entity-types [get]
func (c *CleansingController) GetEntityTypes(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("获取实体类型成功", meta.AllEntityTypes()))
}
