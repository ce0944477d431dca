package splitter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{
	".jpg": true,
	".png": true,
}

const labelExt = ".txt"

// IsImage 扩展名为 .jpg/.png（不区分大小写）
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// BaseName 去掉扩展名的文件名
func BaseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// LabelName 图片对应的标注文件名
func LabelName(image string) string {
	return BaseName(image) + labelExt
}

func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %q: %w", what, path, ErrNotFound)
		}
		return fmt.Errorf("stat %s %q: %w: %w", what, path, ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q is not a directory: %w", what, path, ErrNotFound)
	}
	return nil
}

// ListImages 列出目录下（不递归）的图片文件名，按字典序
func ListImages(dir string) ([]string, error) {
	if err := requireDir(dir, "image directory"); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %q: %w: %w", dir, ErrIO, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// PrepareOutputTree 创建 images/{train,val} 与 labels/{train,val}，已存在时不报错
func PrepareOutputTree(outputRoot string) error {
	for _, dir := range outputDirs(outputRoot) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %q: %w: %w", dir, ErrIO, err)
		}
	}
	return nil
}

func outputDirs(root string) []string {
	dirs := make([]string, 0, 4)
	for _, kind := range []string{"images", "labels"} {
		for _, b := range Buckets {
			dirs = append(dirs, filepath.Join(root, kind, string(b)))
		}
	}
	return dirs
}

// ImagePath 输出树中图片的路径
func ImagePath(root string, b Bucket, name string) string {
	return filepath.Join(root, "images", string(b), name)
}

// LabelPath 输出树中标注的路径
func LabelPath(root string, b Bucket, image string) string {
	return filepath.Join(root, "labels", string(b), LabelName(image))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// copyFile 复制文件内容，保留权限位与修改时间；目标存在时覆盖
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
