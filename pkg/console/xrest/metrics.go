package xrest

// 指标名称常量。
const (
	// MetricsComponent 组件名称。
	MetricsComponent = "xrest"

	// MetricsOpRequest HTTP 请求操作名。
	MetricsOpRequest = "Request"

	// 属性 Key
	MetricsAttrHTTPMethod = "http.method"
	MetricsAttrHTTPPath   = "http.path"
)
