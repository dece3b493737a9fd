package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // access token 有效期（秒）
	User         UserResponse `json:"user"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=32"`
}

// ForgotPasswordVerifyRequest 忘记密码身份验证请求
// 以学号 + 注册手机号核对身份
type ForgotPasswordVerifyRequest struct {
	Username string `json:"username" binding:"required"`
	Phone    string `json:"phone"    binding:"required"`
}

// ForgotPasswordResetRequest 忘记密码重设请求
type ForgotPasswordResetRequest struct {
	Username    string `json:"username"     binding:"required"`
	Phone       string `json:"phone"        binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=32"`
}
