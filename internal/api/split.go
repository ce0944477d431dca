package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yolosplit/internal/logging"
	"yolosplit/internal/report"
	"yolosplit/internal/splitter"
)

type splitSummary struct {
	RunID     string           `json:"runId"`
	Result    *splitter.Result `json:"result,omitempty"`
	ReportURL string           `json:"reportUrl,omitempty"`
}

// Split 同步执行一次划分
// POST /api/split
func (h *Handler) Split(c *gin.Context) {
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

	summary, err := h.run(opts)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "runId": summary.RunID})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// run 串行执行划分并生成可下载的报告
func (h *Handler) run(opts splitter.Options) (splitSummary, error) {
	h.splitMu.Lock()
	defer h.splitMu.Unlock()

	summary := splitSummary{RunID: uuid.NewString()}
	started := time.Now()

	logging.Info("split requested", logging.Server,
		"run", summary.RunID, "images", opts.ImageDir, "output", opts.OutputRoot, "fraction", opts.Fraction)

	res, err := splitter.SplitAndCopy(opts)
	if err != nil {
		logging.Warn("split failed", logging.Server, "run", summary.RunID, "error", err)
		return summary, err
	}
	summary.Result = res

	url, err := h.publishReport(res, report.Meta{RunID: summary.RunID, CreatedAt: started})
	if err != nil {
		// 报告失败不影响已完成的划分
		logging.Warn("report failed", logging.Server, "run", summary.RunID, "error", err)
	} else {
		summary.ReportURL = url
	}
	return summary, nil
}

func (h *Handler) publishReport(res *splitter.Result, meta report.Meta) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("yolosplit_report_%s.xlsx", meta.RunID))
	if err := report.WriteFile(path, res, meta); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	token := h.downloads.put(path, meta.RunID, reportTTL)
	return "/api/report/download/" + token, nil
}

// DownloadReport 下载划分报告（一次性）
// GET /api/report/download/:token
func (h *Handler) DownloadReport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "报告文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"split-report-%s.xlsx\"", item.runID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
}
