package splitter

const (
	percentPrepare = 10
	percentTree    = 30
)

// Stage 进度阶段
type Stage string

const (
	StagePrepare Stage = "prepare"
	StageTree    Stage = "tree"
	StageCopy    Stage = "copy"
)

// ProgressEvent 划分进度事件（用于 UI 展示）
type ProgressEvent struct {
	Percent   int    `json:"percent"`
	Stage     Stage  `json:"stage"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	File      string `json:"file,omitempty"`
	Bucket    Bucket `json:"bucket,omitempty"`
}

// copyPercent 第 completed 个文件复制完成后的百分比，从 30% 线性增长到 100%
func copyPercent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	return percentTree + (100-percentTree)*completed/total
}

func reportProgress(progress func(ProgressEvent), ev ProgressEvent) {
	if progress == nil {
		return
	}
	if ev.Percent < 0 {
		ev.Percent = 0
	}
	if ev.Percent > 100 {
		ev.Percent = 100
	}
	progress(ev)
}
