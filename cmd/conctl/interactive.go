package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// cmdInteractive 交互模式（REPL）。
func cmdInteractive(ctx context.Context, env *appEnv, w io.Writer) error {
	fmt.Fprintln(w, "conctl 交互模式")
	fmt.Fprintln(w, "输入 'help' 查看可用命令，'quit' 或 'exit' 退出")
	fmt.Fprintln(w)

	return runREPL(ctx, env, w)
}

// startInputReader 启动输入读取 goroutine。
// 设计决策: inputCh 无缓冲，使用 select 保护发送，
// 防止 context 取消后 goroutine 在 inputCh 发送端永久阻塞。
func startInputReader(ctx context.Context) (<-chan string, <-chan error) {
	inputCh := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
		close(inputCh)
	}()

	return inputCh, errCh
}

// runREPL 运行 REPL 循环。
// 使用 goroutine + channel 实现可取消的输入读取，确保 Ctrl+C 能立即退出。
func runREPL(ctx context.Context, env *appEnv, w io.Writer) error {
	inputCh, errCh := startInputReader(ctx)

	for {
		fmt.Fprint(w, "conctl> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case err := <-errCh:
			return fmt.Errorf("读取输入失败: %w", err)
		case line, ok := <-inputCh:
			if !ok {
				fmt.Fprintln(w)
				return nil
			}
			if quit := dispatch(ctx, env, w, line); quit {
				return nil
			}
		}
	}
}

// dispatch 执行一行交互命令，返回是否退出。
func dispatch(ctx context.Context, env *appEnv, w io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var err error
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		printREPLHelp(w)
	case "login":
		err = replLogin(ctx, env, w, fields[1:])
	case "logout":
		err = cmdLogout(ctx, env, w)
	case "whoami":
		err = cmdWhoami(ctx, env, w)
	case "menu":
		err = cmdMenu(ctx, env, false, w)
	case "info":
		err = cmdInfo(ctx, env, w)
	case "open":
		if len(fields) < 2 {
			fmt.Fprintln(w, "用法: open <path>")
			return false
		}
		err = cmdOpen(ctx, env, fields[1], w)
	case "captcha":
		out := "captcha.jpg"
		if len(fields) >= 2 {
			out = fields[1]
		}
		err = cmdCaptcha(ctx, env, out, w)
	default:
		fmt.Fprintf(w, "未知命令: %s（输入 'help' 查看可用命令）\n", fields[0])
	}
	if err != nil {
		fmt.Fprintf(w, "错误: %v\n", err)
	}
	return false
}

// replLogin 交互式登录：login <user> <password> [captcha] [captchaKey]。
func replLogin(ctx context.Context, env *appEnv, w io.Writer, args []string) error {
	la := loginArgs{}
	switch len(args) {
	case 4:
		la.captchaKey = args[3]
		fallthrough
	case 3:
		la.captcha = args[2]
		fallthrough
	case 2:
		la.user, la.password = args[0], args[1]
	default:
		fmt.Fprintln(w, "用法: login <user> <password> [captcha] [captchaKey]")
		return nil
	}
	return cmdLogin(ctx, env, la, w)
}

func printREPLHelp(w io.Writer) {
	fmt.Fprint(w, `可用命令:
  login <user> <password> [captcha] [captchaKey]  登录
  logout                                          登出
  whoami                                          查看当前用户
  menu                                            查看菜单树
  info                                            查看系统信息
  open <path>                                     解析路径
  captcha [out]                                   获取验证码图片
  quit / exit                                     退出
`)
}
