package xconf

import (
	"os"
	"time"
)

// =============================================================================
// 控制台设置
// =============================================================================

// 环境变量 Key。
const (
	// EnvKeyAPIBase API 基础路径环境变量。
	EnvKeyAPIBase = "CONKIT_API_BASE"

	// EnvKeyAppTitle 应用标题环境变量。
	EnvKeyAppTitle = "CONKIT_APP_TITLE"
)

// 缺省值。
const (
	// DefaultAPIBase 缺省 API 基础路径。
	DefaultAPIBase = "/api"

	// DefaultAppTitle 缺省应用标题。
	DefaultAppTitle = "管理控制台"
)

// Settings 控制台客户端设置。
// 对应配置文件的 console 段：
//
//	console:
//	  api_base: "https://console.example.com/api"
//	  app_title: "运维管理平台"
//	  request_timeout: 10s
//	  session_file: "/var/lib/conkit/session.json"
//	  log_file: "/var/log/conkit/conctl.log"
type Settings struct {
	// APIBase API 基础路径，所有后端调用的前缀。
	APIBase string `koanf:"api_base"`

	// AppTitle 应用标题，展示在终端界面/日志中。
	AppTitle string `koanf:"app_title"`

	// RequestTimeout 单次请求超时；0 时使用 xrest 缺省值。
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// SessionFile 会话持久化文件路径；为空时使用 xsession 缺省路径。
	SessionFile string `koanf:"session_file"`

	// LogFile 日志文件路径；为空时日志输出到 stderr。
	LogFile string `koanf:"log_file"`
}

// ResolveSettings 从配置实例解析控制台设置。
// cfg 为 nil 时只应用环境变量与缺省值。
// 取值优先级：环境变量 > 配置文件 console 段 > 缺省值。
func ResolveSettings(cfg Config) (Settings, error) {
	var s Settings
	if cfg != nil {
		if err := cfg.Unmarshal("console", &s); err != nil {
			return Settings{}, err
		}
	}

	if v := os.Getenv(EnvKeyAPIBase); v != "" {
		s.APIBase = v
	}
	if v := os.Getenv(EnvKeyAppTitle); v != "" {
		s.AppTitle = v
	}

	if s.APIBase == "" {
		s.APIBase = DefaultAPIBase
	}
	if s.AppTitle == "" {
		s.AppTitle = DefaultAppTitle
	}
	return s, nil
}
