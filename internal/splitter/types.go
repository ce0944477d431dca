package splitter

import "errors"

// Seed 洗牌使用的固定种子，保证同一输入目录多次运行得到相同划分
const Seed int64 = 42

// Bucket 输出分区
type Bucket string

const (
	Train Bucket = "train"
	Val   Bucket = "val"
)

// Buckets 按复制顺序排列的分区
var Buckets = []Bucket{Train, Val}

var (
	// ErrNotFound 图片或标注源目录不存在
	ErrNotFound = errors.New("directory not found")
	// ErrEmptyInput 源目录中没有 .jpg/.png 图片
	ErrEmptyInput = errors.New("no images found")
	// ErrIO 创建目录或复制文件失败
	ErrIO = errors.New("io failure")
)

// Assignment 训练/验证划分，顺序为洗牌后的顺序
type Assignment struct {
	Train []string `json:"train"`
	Val   []string `json:"val"`
}

// Files 返回指定分区的文件名
func (a Assignment) Files(b Bucket) []string {
	if b == Train {
		return a.Train
	}
	return a.Val
}

// Total 总文件数
func (a Assignment) Total() int {
	return len(a.Train) + len(a.Val)
}

// Options 划分选项
type Options struct {
	ImageDir   string
	LabelDir   string
	OutputRoot string
	Fraction   float64

	// DryRun 只计算划分，不写文件
	DryRun bool

	Progress func(ProgressEvent)
}

// BucketStats 单个分区的复制统计
type BucketStats struct {
	Images int `json:"images"`
	Labels int `json:"labels"`
}

// Result 划分结果
type Result struct {
	ImageDir   string                 `json:"imageDir"`
	LabelDir   string                 `json:"labelDir"`
	OutputRoot string                 `json:"outputRoot"`
	Fraction   float64                `json:"fraction"`
	Seed       int64                  `json:"seed"`
	DryRun     bool                   `json:"dryRun"`
	Assignment Assignment             `json:"assignment"`
	Stats      map[Bucket]BucketStats `json:"stats"`

	// Labeled 已复制标注的图片文件名
	Labeled map[string]bool `json:"-"`
}

// HasLabel 图片是否复制了对应标注
func (r *Result) HasLabel(image string) bool {
	return r.Labeled[image]
}
