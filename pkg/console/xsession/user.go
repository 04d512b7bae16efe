package xsession

// User 当前登录用户的身份记录。
type User struct {
	// Domain 用户所属域。
	Domain string `json:"domain"`

	// ID 用户标识。
	ID string `json:"id"`

	// Name 显示名称。
	Name string `json:"name"`

	// Avatar 头像地址。
	Avatar string `json:"avatar"`

	// Role 角色名称。
	Role string `json:"role"`

	// Status 账号状态。
	Status string `json:"status"`
}
