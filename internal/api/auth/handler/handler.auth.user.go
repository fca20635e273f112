// Package authhdl - handler đăng ký / đăng nhập / đăng xuất và CRUD người dùng.
package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "biz_metrics/internal/api/auth/dto"
	models "biz_metrics/internal/api/auth/models"
	authsvc "biz_metrics/internal/api/auth/service"
	basehdl "biz_metrics/internal/api/base/handler"
	"biz_metrics/internal/common"
	"biz_metrics/internal/logger"
	"biz_metrics/internal/utility"
)

// UserHandler xử lý các endpoint auth và user CRUD
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	userService    *authsvc.UserService
	sessionService *authsvc.SessionService
}

// NewUserHandler tạo mới UserHandler cùng các service phụ thuộc
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}

	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return nil, err
	}

	return &UserHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput](userService),
		userService:    userService,
		sessionService: sessionService,
	}, nil
}

// HandleRegister đăng ký người dùng mới.
// Body theo quy ước {schema: UserRegisterInput}.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req struct {
			Schema authdto.UserRegisterInput `json:"schema"`
		}
		if err := h.ParseRequestBody(c, &req); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		if err := h.ValidateInput(&req.Schema); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		user, err := h.userService.Register(c.Context(), &req.Schema)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.GetAuditLogger().WithField("username", user.Username).Info("Đăng ký người dùng mới")
		return basehdl.HandleResponse(c, user, nil)
	})
}

// HandleLogin đăng nhập: xác thực mật khẩu, mở phiên và phát token đầu tiên.
// Token nằm trong trường accessToken của envelope, user trả về không có password.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req struct {
			Schema authdto.UserLoginInput `json:"schema"`
		}
		if err := h.ParseRequestBody(c, &req); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		if err := h.ValidateInput(&req.Schema); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		user, err := h.userService.Authenticate(c.Context(), &req.Schema)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.sessionService.StartSession(c.Context(), user, c.IP(), c.Get("User-Agent"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		// Token mới đi ra qua envelope như mọi request đã xác thực khác
		c.Locals("access_token", result.AccessToken)

		logger.GetAuditLogger().WithField("username", user.Username).
			WithField("sessionId", result.Session.ID.Hex()).
			Info("Đăng nhập thành công")
		return basehdl.HandleResponse(c, user, nil)
	})
}

// HandleLogout đăng xuất: xóa phiên hiện tại của người gọi
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		sessionIDStr, ok := c.Locals("session_id").(string)
		if !ok || sessionIDStr == "" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		if err := h.sessionService.EndSession(c.Context(), utility.String2ObjectID(sessionIDStr)); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		// Phiên đã chấm dứt, không trả lại token nữa
		c.Locals("access_token", "")

		logger.GetAuditLogger().WithField("sessionId", sessionIDStr).Info("Đăng xuất")
		return basehdl.HandleResponse(c, nil, nil)
	})
}

// InsertOne tạo người dùng qua CRUD đi qua luồng Register để
// mật khẩu được hash và username/email được giữ chỗ duy nhất.
func (h *UserHandler) InsertOne(c fiber.Ctx) error {
	return h.HandleRegister(c)
}
