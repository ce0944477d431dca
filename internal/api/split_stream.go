package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yolosplit/internal/splitter"
)

type splitStreamEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// SplitStream 执行划分（SSE 进度 + 完成后提供报告下载地址）
// POST /api/split/stream
func (h *Handler) SplitStream(c *gin.Context) {
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	opts, err := h.options(req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event splitStreamEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(splitStreamEvent{
		Type:    "start",
		Message: "开始划分",
		Data: map[string]any{
			"imageDir":   opts.ImageDir,
			"outputRoot": opts.OutputRoot,
			"fraction":   opts.Fraction,
		},
		Timestamp: time.Now(),
	})

	opts.Progress = func(p splitter.ProgressEvent) {
		send(splitStreamEvent{
			Type:      "progress",
			Message:   string(p.Stage),
			Data:      p,
			Timestamp: time.Now(),
		})
	}

	summary, err := h.run(opts)
	if err != nil {
		send(splitStreamEvent{
			Type:    "error",
			Message: "划分失败: " + err.Error(),
			Data: map[string]any{
				"runId":  summary.RunID,
				"status": statusFor(err),
			},
			Timestamp: time.Now(),
		})
		return
	}

	send(splitStreamEvent{
		Type:    "done",
		Message: "划分完成",
		Data: map[string]any{
			"percent":   100,
			"runId":     summary.RunID,
			"train":     len(summary.Result.Assignment.Train),
			"val":       len(summary.Result.Assignment.Val),
			"stats":     summary.Result.Stats,
			"reportUrl": summary.ReportURL,
		},
		Timestamp: time.Now(),
	})
}
