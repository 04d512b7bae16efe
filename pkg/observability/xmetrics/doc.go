// Package xmetrics 提供统一观测接口（指标 + 追踪）。
//
// conkit 的各客户端组件通过 Observer 接口上报每次后端调用的跨度与耗时，
// 业务方可注入基于 OpenTelemetry 的实现（NewOTelObserver），
// 或保持默认的 NoopObserver（零开销）。
//
// # 使用方式
//
//	observer, err := xmetrics.NewOTelObserver()
//	if err != nil { ... }
//	client, err := xrest.NewClient(cfg, xrest.WithObserver(observer))
//
// # 设计约束
//
//   - Observer 的任何实现不得 panic，observed 调用路径上的失败只影响观测数据；
//   - Span.End 幂等，重复调用只记录一次指标；
//   - nil context、nil Span 均由包级 Start 兜底，调用方无需判空。
package xmetrics
