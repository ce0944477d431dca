package api

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"yolosplit/internal/splitter"
)

type dirListing struct {
	Path   string   `json:"path"`
	Parent string   `json:"parent"`
	Dirs   []string `json:"dirs"`
	Images int      `json:"images"`
}

// ListDirs 目录选择器：列出 path 下的子目录
// GET /api/dirs?path=
func (h *Handler) ListDirs(c *gin.Context) {
	if !h.cfg.UI.DirectoryPicker {
		c.JSON(http.StatusNotFound, gin.H{"error": "目录选择器未启用"})
		return
	}

	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		path = h.cfg.PickerRoot()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "目录不存在: " + abs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	listing := dirListing{
		Path:   abs,
		Parent: filepath.Dir(abs),
		Dirs:   []string{},
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			listing.Dirs = append(listing.Dirs, name)
			continue
		}
		if splitter.IsImage(name) {
			listing.Images++
		}
	}
	sort.Strings(listing.Dirs)

	c.JSON(http.StatusOK, listing)
}
