// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authdto "biz_metrics/internal/api/auth/dto"
	models "biz_metrics/internal/api/auth/models"
	basesvc "biz_metrics/internal/api/base/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
)

// UserService xử lý nghiệp vụ người dùng: đăng ký, xác thực, CRUD
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	reservationService *basesvc.BaseServiceMongoImpl[models.UsernameEmailSet]
}

// NewUserService tạo mới UserService từ các collection đã đăng ký
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	setCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UsernameEmailSets)
	if !exist {
		return nil, fmt.Errorf("failed to get username_email_sets collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
		reservationService:   basesvc.NewBaseServiceMongo[models.UsernameEmailSet](setCollection),
	}, nil
}

// Register đăng ký người dùng mới.
// Username và email được giữ chỗ trong username_email_sets trước khi insert user:
// unique index trên value biến cuộc đua đăng ký trùng tên thành lỗi duplicate.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (models.User, error) {
	var zero models.User

	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.reservationService.InsertOne(ctx, models.UsernameEmailSet{
		Kind:  models.SetKindUsername,
		Value: username,
	}); err != nil {
		return zero, s.classifyReservationError(err, "Username đã được sử dụng")
	}

	if _, err := s.reservationService.InsertOne(ctx, models.UsernameEmailSet{
		Kind:  models.SetKindEmail,
		Value: email,
	}); err != nil {
		// Nhả lại giữ chỗ username khi email đã có người dùng
		_ = s.reservationService.DeleteOne(ctx, map[string]interface{}{"value": username})
		return zero, s.classifyReservationError(err, "Email đã được sử dụng")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	user := models.User{
		Username:      username,
		Email:         email,
		Password:      string(hashed),
		FullName:      input.FullName,
		JobPosition:   input.JobPosition,
		StoreLocation: input.StoreLocation,
		Department:    input.Department,
		Roles:         []string{"user"},
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// classifyReservationError đổi lỗi duplicate của giữ chỗ thành thông báo nghiệp vụ
func (s *UserService) classifyReservationError(err error, message string) error {
	converted := common.ConvertMongoError(err)
	var appErr *common.Error
	if errors.As(converted, &appErr) && appErr.StatusCode == common.StatusConflict {
		return common.NewError(common.ErrCodeBusinessOperation, message, common.StatusConflict, nil)
	}
	return converted
}

// Authenticate kiểm tra thông tin đăng nhập, trả về user khi khớp.
// Sai username hay sai password trả cùng một lỗi, không tiết lộ bên nào sai.
func (s *UserService) Authenticate(ctx context.Context, input *authdto.UserLoginInput) (models.User, error) {
	var zero models.User

	username := strings.ToLower(strings.TrimSpace(input.Username))
	user, err := s.FindOne(ctx, map[string]interface{}{"username": username}, nil)
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) && appErr.StatusCode == common.StatusNotFound {
			return zero, common.ErrInvalidCredentials
		}
		return zero, common.ConvertMongoError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return zero, common.ErrInvalidCredentials
	}

	return user, nil
}
