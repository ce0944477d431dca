package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"yolosplit/internal/config"
	"yolosplit/internal/logging"
	"yolosplit/internal/report"
	"yolosplit/internal/server"
	"yolosplit/internal/splitter"
	"yolosplit/internal/util"
)

var (
	imageDir   = flag.String("images", "", "图片目录")
	labelDir   = flag.String("labels", "", "标注目录 (.txt)")
	outDir     = flag.String("out", "", "输出根目录")
	split      = flag.Float64("split", 0, "训练集比例 (未指定时使用 config.toml 的 default_fraction)")
	dryRun     = flag.Bool("dry-run", false, "只输出划分结果，不复制文件")
	reportPath = flag.String("report", "", "划分报告输出路径 (.xlsx)")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录的 config.toml)")
	serve      = flag.Bool("serve", false, "启动本地界面")
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	verbose    = flag.Bool("v", false, "输出调试日志")
)

func main() {
	flag.Parse()

	logging.Setup(os.Stderr, *verbose || *devMode)

	// 加载配置
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if *configPath != "" {
		cfg, info, err = config.LoadConfigFrom(*configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		logging.Warn("加载配置失败，使用默认配置", logging.Config, "path", info.Path, "error", err)
		cfg = config.DefaultConfig()
	} else {
		logging.Debug("config loaded", logging.Config, "path", info.Path, "found", info.FileFound)
	}

	if *serve {
		runServer(cfg, info)
		return
	}
	os.Exit(runSplit(cfg))
}

func runSplit(cfg *config.AppConfig) int {
	if *imageDir == "" || *labelDir == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "请同时指定 -images、-labels 和 -out")
		flag.Usage()
		return 2
	}

	fraction, err := cfg.Split.Resolve(*split)
	if err != nil {
		fmt.Fprintf(os.Stderr, "训练集比例无效: %v\n", err)
		return 2
	}

	runID := uuid.NewString()
	started := time.Now()
	logging.Info("split started", logging.CLI, "run", runID, "fraction", fraction)

	res, err := splitter.SplitAndCopy(splitter.Options{
		ImageDir:   *imageDir,
		LabelDir:   *labelDir,
		OutputRoot: *outDir,
		Fraction:   fraction,
		DryRun:     *dryRun,
		Progress: func(p splitter.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "\r%s %d/%d", util.ProgressBar(p.Percent, 30), p.Completed, p.Total)
		},
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "处理文件失败: %v\n", err)
		return 1
	}

	fmt.Printf("训练集比例: %s (seed %d)\n", util.FormatPercent(res.Fraction), res.Seed)
	for _, b := range splitter.Buckets {
		st := res.Stats[b]
		fmt.Printf("%-5s images=%d labels=%d\n", b, st.Images, st.Labels)
	}
	if *dryRun {
		for _, b := range splitter.Buckets {
			for _, name := range res.Assignment.Files(b) {
				fmt.Printf("%s\t%s\n", b, name)
			}
		}
	}

	out := *reportPath
	if out == "" && cfg.Report.Enabled {
		out = filepath.Join(cfg.Report.Dir, fmt.Sprintf("split-report-%s.xlsx", runID))
	}
	if out != "" {
		if err := report.WriteFile(out, res, report.Meta{RunID: runID, CreatedAt: started}); err != nil {
			fmt.Fprintf(os.Stderr, "写入报告失败: %v\n", err)
			return 1
		}
		fmt.Printf("报告: %s\n", out)
	}
	return 0
}

func runServer(cfg *config.AppConfig, info config.LoadConfigInfo) {
	fmt.Println("==========================================")
	fmt.Println("  yolosplit - YOLO 数据集划分工具")
	fmt.Println("==========================================")

	if err := config.ApplyEnv(cfg); err != nil {
		log.Printf("环境变量无效: %v", err)
	}
	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	srv := server.NewServer(cfg)
	defer srv.Close()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowser(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}
