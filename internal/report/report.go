package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"yolosplit/internal/logging"
	"yolosplit/internal/splitter"
)

const (
	SummarySheet    = "Summary"
	AssignmentSheet = "Assignment"
)

// Meta 报告附加信息
type Meta struct {
	RunID     string
	CreatedAt time.Time
}

// Build 生成划分报告：Summary 汇总 + Assignment 明细
func Build(res *splitter.Result, meta Meta) (*excelize.File, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := fillSummary(f, res, meta); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", SummarySheet, err)
	}

	if _, err := f.NewSheet(AssignmentSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := fillAssignment(f, res); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", AssignmentSheet, err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile 生成报告并保存到 path
func WriteFile(path string, res *splitter.Result, meta Meta) error {
	f, err := Build(res, meta)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %q: %w", path, err)
	}
	logging.Info("report written", logging.Report, "path", path, "run", meta.RunID)
	return nil
}

func fillSummary(f *excelize.File, res *splitter.Result, meta Meta) error {
	rows := [][]interface{}{
		{"Run ID", meta.RunID},
		{"Created", meta.CreatedAt.Format(time.RFC3339)},
		{"Image directory", res.ImageDir},
		{"Label directory", res.LabelDir},
		{"Output root", res.OutputRoot},
		{"Split fraction", res.Fraction},
		{"Seed", res.Seed},
		{"Dry run", res.DryRun},
		{},
		{"Bucket", "Images", "Labels"},
	}
	for _, b := range splitter.Buckets {
		st := res.Stats[b]
		rows = append(rows, []interface{}{string(b), st.Images, st.Labels})
	}
	total := res.Stats[splitter.Train].Images + res.Stats[splitter.Val].Images
	labels := res.Stats[splitter.Train].Labels + res.Stats[splitter.Val].Labels
	rows = append(rows, []interface{}{"total", total, labels})

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 24)
}

func fillAssignment(f *excelize.File, res *splitter.Result) error {
	header := []interface{}{"Bucket", "Image", "Label"}
	if err := f.SetSheetRow(AssignmentSheet, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, b := range splitter.Buckets {
		for _, name := range res.Assignment.Files(b) {
			values := []interface{}{string(b), name}
			if res.HasLabel(name) {
				values = append(values, splitter.LabelName(name))
			}
			if err := f.SetSheetRow(AssignmentSheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			row++
		}
	}
	return f.SetColWidth(AssignmentSheet, "B", "C", 32)
}
