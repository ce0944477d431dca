package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"yolosplit/internal/config"
	"yolosplit/internal/splitter"
)

const reportTTL = 10 * time.Minute

// Handler 划分 API 处理器
type Handler struct {
	cfg       *config.AppConfig
	downloads *reportStore

	// 同一时间只允许一个划分任务写输出目录
	splitMu sync.Mutex
}

// NewHandler 创建 API 处理器
func NewHandler(cfg *config.AppConfig) *Handler {
	return &Handler{
		cfg:       cfg,
		downloads: newReportStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/config", h.GetConfig)
	router.GET("/dirs", h.ListDirs)

	router.POST("/split", h.Split)
	router.POST("/split/stream", h.SplitStream)

	router.GET("/report/download/:token", h.DownloadReport)
}

// Close 清理未下载的报告文件
func (h *Handler) Close() {
	h.downloads.clear()
}

type splitRequest struct {
	ImageDir   string  `json:"imageDir"`
	LabelDir   string  `json:"labelDir"`
	OutputRoot string  `json:"outputRoot"`
	Fraction   float64 `json:"fraction"`
	DryRun     bool    `json:"dryRun"`
}

// options 校验请求并转换为划分选项
func (h *Handler) options(req splitRequest) (splitter.Options, error) {
	req.ImageDir = strings.TrimSpace(req.ImageDir)
	req.LabelDir = strings.TrimSpace(req.LabelDir)
	req.OutputRoot = strings.TrimSpace(req.OutputRoot)
	if req.ImageDir == "" || req.LabelDir == "" || req.OutputRoot == "" {
		return splitter.Options{}, errMissingField
	}

	fraction, err := h.cfg.Split.Resolve(req.Fraction)
	if err != nil {
		return splitter.Options{}, err
	}

	return splitter.Options{
		ImageDir:   req.ImageDir,
		LabelDir:   req.LabelDir,
		OutputRoot: req.OutputRoot,
		Fraction:   fraction,
		DryRun:     req.DryRun,
	}, nil
}

var errMissingField = errors.New("imageDir, labelDir and outputRoot are required")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingField), errors.Is(err, config.ErrFractionOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, splitter.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, splitter.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetConfig 返回界面需要的比例范围与选择器开关
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	s := h.cfg.Split
	c.JSON(http.StatusOK, gin.H{
		"defaultFraction": s.DefaultFraction,
		"minFraction":     s.MinFraction,
		"maxFraction":     s.MaxFraction,
		"fixed":           s.Fixed(),
		"directoryPicker": h.cfg.UI.DirectoryPicker,
		"seed":            splitter.Seed,
	})
}
