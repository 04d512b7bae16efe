// Package xshell 提供控制台外壳的装配与路由同步。
//
// Mount 并发拉取菜单树与系统展示信息，两者互不阻塞、可独立失败：
// 菜单失败退回内置缺省菜单（xmenu 兜底），系统信息失败退回缺省文案。
// SyncRoute 按当前路径求选中菜单键与展开的祖先键链。
package xshell
