package util

import (
	"fmt"
	"strings"
)

// ProgressBar 渲染文本进度条，如 "[#####-----]  50%"
func ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if width <= 0 {
		return fmt.Sprintf("%3d%%", percent)
	}
	filled := width * percent / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), percent)
}

// FormatPercent 格式化比例为百分比
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}
