package splitter

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"yolosplit/internal/logging"
)

// TrainCount floor(fraction*n)，结果限制在 [0, n]
func TrainCount(n int, fraction float64) int {
	if n <= 0 || math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return n
	}
	k := int(math.Floor(fraction * float64(n)))
	if k > n {
		k = n
	}
	return k
}

// Plan 用给定种子洗牌并按比例切分，不修改 names
func Plan(names []string, fraction float64, seed int64) Assignment {
	shuffled := make([]string, len(names))
	copy(shuffled, names)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	k := TrainCount(len(shuffled), fraction)
	return Assignment{
		Train: shuffled[:k:k],
		Val:   shuffled[k:],
	}
}

// SplitAndCopy 将图片及同名标注按固定种子划分并复制到输出树
//
// 任一复制失败立即返回，已复制的文件保留。
func SplitAndCopy(opts Options) (*Result, error) {
	if err := requireDir(opts.ImageDir, "image directory"); err != nil {
		return nil, err
	}
	if err := requireDir(opts.LabelDir, "label directory"); err != nil {
		return nil, err
	}

	names, err := ListImages(opts.ImageDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%q: %w", opts.ImageDir, ErrEmptyInput)
	}
	reportProgress(opts.Progress, ProgressEvent{Percent: percentPrepare, Stage: StagePrepare, Total: len(names)})

	result := &Result{
		ImageDir:   opts.ImageDir,
		LabelDir:   opts.LabelDir,
		OutputRoot: opts.OutputRoot,
		Fraction:   opts.Fraction,
		Seed:       Seed,
		DryRun:     opts.DryRun,
		Assignment: Plan(names, opts.Fraction, Seed),
		Stats:      make(map[Bucket]BucketStats, len(Buckets)),
		Labeled:    make(map[string]bool),
	}
	for _, b := range Buckets {
		result.Stats[b] = BucketStats{}
	}

	logging.Info("split planned", logging.Splitter,
		"images", len(names),
		"train", len(result.Assignment.Train),
		"val", len(result.Assignment.Val),
		"fraction", opts.Fraction,
		"dryRun", opts.DryRun)

	if opts.DryRun {
		for _, b := range Buckets {
			st := BucketStats{Images: len(result.Assignment.Files(b))}
			for _, name := range result.Assignment.Files(b) {
				if fileExists(filepath.Join(opts.LabelDir, LabelName(name))) {
					st.Labels++
					result.Labeled[name] = true
				}
			}
			result.Stats[b] = st
		}
		return result, nil
	}

	if err := PrepareOutputTree(opts.OutputRoot); err != nil {
		return nil, err
	}
	reportProgress(opts.Progress, ProgressEvent{Percent: percentTree, Stage: StageTree, Total: len(names)})

	c := &copier{opts: opts, result: result, total: len(names)}
	for _, b := range Buckets {
		for _, name := range result.Assignment.Files(b) {
			if err := c.copyOne(b, name); err != nil {
				logging.Error("split aborted", logging.Splitter,
					"file", name, "completed", c.completed, "total", c.total, "error", err)
				return result, err
			}
		}
	}

	logging.Info("split finished", logging.Splitter,
		"output", opts.OutputRoot,
		"trainLabels", result.Stats[Train].Labels,
		"valLabels", result.Stats[Val].Labels)
	return result, nil
}

type copier struct {
	opts      Options
	result    *Result
	completed int
	total     int
}

func (c *copier) copyOne(b Bucket, name string) error {
	src := filepath.Join(c.opts.ImageDir, name)
	dst := ImagePath(c.opts.OutputRoot, b, name)
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copy %q: %w: %w", src, ErrIO, err)
	}

	st := c.result.Stats[b]
	st.Images++

	label := filepath.Join(c.opts.LabelDir, LabelName(name))
	if fileExists(label) {
		if err := copyFile(label, LabelPath(c.opts.OutputRoot, b, name)); err != nil {
			c.result.Stats[b] = st
			return fmt.Errorf("copy %q: %w: %w", label, ErrIO, err)
		}
		st.Labels++
		c.result.Labeled[name] = true
	} else {
		logging.Debug("label missing", logging.Splitter, "image", name)
	}
	c.result.Stats[b] = st

	c.completed++
	reportProgress(c.opts.Progress, ProgressEvent{
		Percent:   copyPercent(c.completed, c.total),
		Stage:     StageCopy,
		Completed: c.completed,
		Total:     c.total,
		File:      name,
		Bucket:    b,
	})
	return nil
}
