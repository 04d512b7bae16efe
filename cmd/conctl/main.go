// conctl 是管理控制台后端的命令行客户端。
//
// 用法:
//
//	conctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-s, --server   后端基础地址（含 API 前缀，如 https://console.example.com/api）
//	-c, --config   配置文件路径（YAML/JSON，console 段）
//	-t, --timeout  请求超时时间 (默认: 10s)
//	    --log-file 日志文件路径（滚动写入；缺省输出到 stderr）
//
// 命令:
//
//	captcha        获取验证码图片并打印 key
//	login          登录并持久化本地会话
//	logout         登出并清空本地会话
//	whoami         查看当前登录用户
//	menu           查看服务端菜单树
//	info           查看系统展示信息
//	open <path>    按路由守卫与菜单树解析路径
//	interactive    交互模式（REPL）
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（网络错误、认证失败、业务错误等）
//	2: 参数错误（缺少必需参数、地址无效、未知命令等）
//
// 示例:
//
//	conctl -s https://console.example.com/api captcha -o /tmp/captcha.jpg
//	conctl -s https://console.example.com/api login -u admin -p secret --captcha ab3d --captcha-key <key>
//	conctl -s https://console.example.com/api menu --json
//	conctl -c /etc/conkit/conctl.yaml interactive
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

// defaultTimeout 默认请求超时。
const defaultTimeout = 10 * time.Second

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "conctl",
		Usage:   "管理控制台命令行客户端",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "后端基础地址（含 API 前缀）",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "请求超时时间",
				Value:   defaultTimeout,
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件路径（滚动写入）",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if _, ok := err.(cli.ExitCoder); ok {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}

// usageError 表示参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
