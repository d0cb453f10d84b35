package controllers

import "net/http"

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Page   int         `json:"page" example:"1"`
	Size   int         `json:"size" example:"10"`
}

// SuccessResponse 构造成功响应
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// ErrorResponse 构造指定状态码的错误响应
func ErrorResponse(status int, msg string, err error) APIResponse {
	resp := APIResponse{Status: status, Msg: msg}
	if err != nil {
		resp.Data = err.Error()
	}
	return resp
}

// BadRequestResponse 构造请求参数错误响应
func BadRequestResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusBadRequest, msg, err)
}

// NotFoundResponse 构造资源不存在响应
func NotFoundResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusNotFound, msg, err)
}

// InternalErrorResponse 构造服务内部错误响应
func InternalErrorResponse(msg string, err error) APIResponse {
	return ErrorResponse(http.StatusInternalServerError, msg, err)
}
