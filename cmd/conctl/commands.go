package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/conkit/pkg/config/xconf"
	"github.com/omeyang/conkit/pkg/console/xguard"
	"github.com/omeyang/conkit/pkg/console/xmenu"
	"github.com/omeyang/conkit/pkg/console/xpassport"
	"github.com/omeyang/conkit/pkg/console/xrest"
	"github.com/omeyang/conkit/pkg/console/xsession"
	"github.com/omeyang/conkit/pkg/console/xshell"
	"github.com/omeyang/conkit/pkg/util/xfile"
)

// captchaFilePerm 验证码图片文件权限。
const captchaFilePerm = 0o644

// outWriter 返回命令输出目标，未显式设置时退回 stdout。
func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// appEnv 一次命令执行所需的全部已装配组件。
type appEnv struct {
	settings xconf.Settings
	logger   *slog.Logger
	session  *xsession.Store
	nav      *xrest.MemoryNavigator
	client   *xrest.Client
	api      *xpassport.API
	shell    *xshell.Shell
}

// buildEnv 按全局选项装配组件。
// 优先级：命令行 flag > 环境变量 > 配置文件 > 缺省值。
func buildEnv(cmd *cli.Command) (*appEnv, error) {
	var cfg xconf.Config
	if path := cmd.String("config"); path != "" {
		loaded, err := xconf.New(path)
		if err != nil {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
		cfg = loaded
	}

	settings, err := xconf.ResolveSettings(cfg)
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	base := settings.APIBase
	if v := cmd.String("server"); v != "" {
		base = v
	}
	if u, perr := url.Parse(base); perr != nil || u.Scheme == "" || u.Host == "" {
		return nil, &usageError{msg: fmt.Sprintf(
			"后端地址 %q 无效: 需要含协议与主机的完整地址（-s 或配置 console.api_base）", base)}
	}

	timeout := settings.RequestTimeout
	if cmd.IsSet("timeout") || timeout <= 0 {
		timeout = cmd.Duration("timeout")
	}

	logger := buildLogger(cmd.String("log-file"), settings.LogFile)

	sessionOpts := []xsession.Option{xsession.WithLogger(logger)}
	if settings.SessionFile != "" {
		sessionOpts = append(sessionOpts, xsession.WithPath(settings.SessionFile))
	}
	session, err := xsession.New(sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("初始化会话存储失败: %w", err)
	}

	nav := xrest.NewMemoryNavigator(xrest.HomePath)
	client, err := xrest.NewClient(&xrest.Config{BaseURL: base, Timeout: timeout},
		xrest.WithSession(session),
		xrest.WithNavigator(nav),
		xrest.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化客户端失败: %w", err)
	}

	api, err := xpassport.NewAPI(client, session, logger)
	if err != nil {
		return nil, err
	}
	shell, err := xshell.New(client,
		xshell.WithLogger(logger),
		xshell.WithDefaultTitle(settings.AppTitle),
	)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		settings: settings,
		logger:   logger,
		session:  session,
		nav:      nav,
		client:   client,
		api:      api,
		shell:    shell,
	}, nil
}

// buildLogger 装配日志。flag 优先于配置；有文件路径时滚动写入，否则 stderr。
func buildLogger(flagPath, cfgPath string) *slog.Logger {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	var w io.Writer = os.Stderr
	if path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     30, // 天
			Compress:   true,
		}
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createCaptchaCommand(),
		createLoginCommand(),
		createLogoutCommand(),
		createWhoamiCommand(),
		createMenuCommand(),
		createInfoCommand(),
		createOpenCommand(),
		createInteractiveCommand(),
	}
}

// createCaptchaCommand 创建 captcha 子命令：拉取验证码图片并打印 key。
func createCaptchaCommand() *cli.Command {
	return &cli.Command{
		Name:  "captcha",
		Usage: "获取验证码图片并打印 key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "图片保存路径",
				Value:   "captcha.jpg",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdCaptcha(ctx, env, cmd.String("out"), outWriter(cmd))
		},
	}
}

// createLoginCommand 创建 login 子命令。
func createLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "登录并持久化本地会话",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "用户名"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "密码"},
			&cli.StringFlag{Name: "captcha", Usage: "验证码文本"},
			&cli.StringFlag{Name: "captcha-key", Usage: "验证码 key（captcha 命令打印）"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdLogin(ctx, env, loginArgs{
				user:       cmd.String("user"),
				password:   cmd.String("password"),
				captcha:    cmd.String("captcha"),
				captchaKey: cmd.String("captcha-key"),
			}, outWriter(cmd))
		},
	}
}

// createLogoutCommand 创建 logout 子命令。
func createLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "登出并清空本地会话",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdLogout(ctx, env, outWriter(cmd))
		},
	}
}

// createWhoamiCommand 创建 whoami 子命令。
func createWhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "查看当前登录用户",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdWhoami(ctx, env, outWriter(cmd))
		},
	}
}

// createMenuCommand 创建 menu 子命令。
func createMenuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "查看服务端菜单树",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "以 JSON 输出"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdMenu(ctx, env, cmd.Bool("json"), outWriter(cmd))
		},
	}
}

// createInfoCommand 创建 info 子命令。
func createInfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "查看系统展示信息",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdInfo(ctx, env, outWriter(cmd))
		},
	}
}

// createOpenCommand 创建 open 子命令。
func createOpenCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "按路由守卫与菜单树解析路径",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return &usageError{msg: "open 需要一个路径参数"}
			}
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdOpen(ctx, env, path, outWriter(cmd))
		},
	}
}

// createInteractiveCommand 创建 interactive 子命令。
func createInteractiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "交互模式（REPL）",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := buildEnv(cmd)
			if err != nil {
				return err
			}
			return cmdInteractive(ctx, env, outWriter(cmd))
		},
	}
}

// =============================================================================
// 命令实现
// =============================================================================

func cmdCaptcha(ctx context.Context, env *appEnv, out string, w io.Writer) error {
	captcha, err := xpassport.NewCaptcha(env.client)
	if err != nil {
		return err
	}
	img, err := captcha.Image(ctx)
	if err != nil {
		return fmt.Errorf("获取验证码图片失败: %w", err)
	}
	if err := xfile.WriteAtomic(out, img, captchaFilePerm); err != nil {
		return fmt.Errorf("保存验证码图片失败: %w", err)
	}
	fmt.Fprintf(w, "验证码图片已保存: %s\n", out)
	fmt.Fprintf(w, "key: %s\n", captcha.Key())
	return nil
}

type loginArgs struct {
	user       string
	password   string
	captcha    string
	captchaKey string
}

func cmdLogin(ctx context.Context, env *appEnv, args loginArgs, w io.Writer) error {
	if args.user == "" {
		return &usageError{msg: "缺少用户名（-u）"}
	}
	if args.password == "" {
		return &usageError{msg: "缺少密码（-p）"}
	}

	user, err := env.api.Login(ctx, xpassport.LoginRequest{
		UserID:     args.user,
		Password:   args.password,
		Platform:   xpassport.Platform,
		Captcha:    args.captcha,
		CaptchaKey: args.captchaKey,
	})
	if err != nil {
		return fmt.Errorf("登录失败: %w", err)
	}
	fmt.Fprintf(w, "登录成功: %s\n", displayName(user))
	return nil
}

func cmdLogout(ctx context.Context, env *appEnv, w io.Writer) error {
	if err := env.api.Logout(ctx); err != nil {
		// 本地会话已清空，服务端失败只提示
		fmt.Fprintf(w, "本地会话已清空（服务端登出失败: %v）\n", err)
		return nil
	}
	fmt.Fprintln(w, "已登出")
	return nil
}

func cmdWhoami(ctx context.Context, env *appEnv, w io.Writer) error {
	if !env.session.IsAuthenticated() {
		return errors.New("未登录")
	}
	user, err := env.api.UserInfo(ctx)
	if err != nil {
		// 服务端不可达时退回本地会话记录
		local, ok := env.session.CurrentUser()
		if !ok {
			return fmt.Errorf("获取用户信息失败: %w", err)
		}
		fmt.Fprintf(w, "%s（本地缓存，服务端不可达）\n", displayName(local))
		return nil
	}
	fmt.Fprintf(w, "用户: %s\n", displayName(user))
	if user.Role != "" {
		fmt.Fprintf(w, "角色: %s\n", user.Role)
	}
	if user.Domain != "" {
		fmt.Fprintf(w, "域:   %s\n", user.Domain)
	}
	return nil
}

func cmdMenu(ctx context.Context, env *appEnv, asJSON bool, w io.Writer) error {
	if err := env.shell.Mount(ctx); err != nil {
		env.logger.Warn("conctl: mount partial failure", slog.Any("error", err))
	}
	menu := env.shell.Menu()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(menu)
	}
	printTree(w, menu, 0)
	return nil
}

func cmdInfo(ctx context.Context, env *appEnv, w io.Writer) error {
	if err := env.shell.Mount(ctx); err != nil {
		env.logger.Warn("conctl: mount partial failure", slog.Any("error", err))
	}
	info := env.shell.Info()
	fmt.Fprintf(w, "名称: %s\n", info.Name)
	if info.Version != "" {
		fmt.Fprintf(w, "版本: %s\n", info.Version)
	}
	if info.Copyright != "" {
		fmt.Fprintf(w, "版权: %s\n", info.Copyright)
	}
	return nil
}

func cmdOpen(ctx context.Context, env *appEnv, path string, w io.Writer) error {
	if d := xguard.RequireAuth(env.session); !d.Allowed {
		fmt.Fprintf(w, "未登录，改道: %s\n", d.RedirectTo)
		return nil
	}
	if err := env.shell.Mount(ctx); err != nil {
		env.logger.Warn("conctl: mount partial failure", slog.Any("error", err))
	}
	selected, open := env.shell.SyncRoute(path)
	if selected == "" {
		fmt.Fprintf(w, "路径不在菜单树中: %s\n", path)
		return nil
	}
	node, _ := xmenu.FindByPath(env.shell.Menu(), path)
	fmt.Fprintf(w, "选中: %s (%s)\n", node.Label, selected)
	if len(open) > 0 {
		fmt.Fprintf(w, "展开: %s\n", strings.Join(open, " > "))
	}
	return nil
}

// printTree 按层级缩进打印菜单树。
func printTree(w io.Writer, nodes []xmenu.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.HasPath() {
			fmt.Fprintf(w, "%s- %s  %s\n", indent, n.Label, n.Path)
		} else {
			fmt.Fprintf(w, "%s- %s\n", indent, n.Label)
		}
		printTree(w, n.Children, depth+1)
	}
}

func displayName(u xsession.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
