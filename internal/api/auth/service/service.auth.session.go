// Package authsvc - service phiên đăng nhập và xoay vòng access token.
//
// Access token sống rất ngắn (mặc định 5 giây) nên gần như mọi request đã
// xác thực đều đi qua nhánh "token hết hạn nhưng chữ ký hợp lệ" và nhận
// token mới. Tính đúng đắn dựa trên so khớp token trình lên với
// currentlyActiveToken của phiên: khớp thì xoay vòng, lệch thì phiên bị xóa.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "biz_metrics/internal/api/auth/models"
	basesvc "biz_metrics/internal/api/base/service"
	"biz_metrics/internal/common"
	"biz_metrics/internal/global"
	"biz_metrics/internal/utility"
)

// SessionStore là phần hẹp của base service mà state machine cần đến.
// Tách interface để test được với fake store trong bộ nhớ.
type SessionStore interface {
	InsertOne(ctx context.Context, data models.Session) (models.Session, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Session, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.Session, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// SessionService quản lý vòng đời phiên đăng nhập và access token
type SessionService struct {
	store      SessionStore
	secret     []byte
	accessTTL  time.Duration
	sessionTTL time.Duration
}

// RefreshResult là kết quả của một lần xoay vòng token thành công
type RefreshResult struct {
	AccessToken string              // Token mới vừa ký, client phải dùng cho request kế tiếp
	Claims      *models.AccessClaims // Danh tính giải mã từ token trình lên
	Session     models.Session      // Phiên sau khi đã cập nhật token/IP/UA
}

// NewSessionService tạo mới SessionService từ collection đã đăng ký và config
func NewSessionService() (*SessionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AuthSessions)
	if !exist {
		return nil, fmt.Errorf("failed to get auth_sessions collection: %v", common.ErrNotFound)
	}

	cfg := global.ServerConfig
	return NewSessionServiceWithStore(
		basesvc.NewBaseServiceMongo[models.Session](collection),
		[]byte(cfg.JwtSecret),
		time.Duration(cfg.AccessTokenTTLSeconds)*time.Second,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
	), nil
}

// NewSessionServiceWithStore tạo SessionService với store tùy ý (phục vụ test)
func NewSessionServiceWithStore(store SessionStore, secret []byte, accessTTL, sessionTTL time.Duration) *SessionService {
	return &SessionService{
		store:      store,
		secret:     secret,
		accessTTL:  accessTTL,
		sessionTTL: sessionTTL,
	}
}

// signToken ký access token HS256 với claims danh tính và TTL cấu hình.
// jti bắt buộc phải có: iat/exp chỉ có độ phân giải giây, hai token ký
// trong cùng một giây cho cùng phiên sẽ trùng byte nếu thiếu jti,
// và so khớp currentlyActiveToken mất tác dụng.
func (s *SessionService) signToken(userID, username string, roles []string, sessionID string) (string, error) {
	now := time.Now()
	claims := &models.AccessClaims{
		UserID:    userID,
		Username:  username,
		Roles:     roles,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	return signed, nil
}

// parseToken xác minh chữ ký token mà KHÔNG xét hạn sử dụng.
// Token hết hạn nhưng chữ ký hợp lệ vẫn đi tiếp vào state machine,
// vì xoay vòng token là hành vi mong đợi trên mỗi request.
func (s *SessionService) parseToken(rawToken string) (*models.AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &models.AccessClaims{}
	if _, err := parser.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}); err != nil {
		return nil, common.ErrTokenInvalid
	}

	if claims.UserID == "" || claims.SessionID == "" {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// StartSession tạo phiên mới cho user vừa đăng nhập và ký token đầu tiên
func (s *SessionService) StartSession(ctx context.Context, user models.User, ip, userAgent string) (*RefreshResult, error) {
	session := models.Session{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Username:  user.Username,
		AddressIP: ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	token, err := s.signToken(user.ID.Hex(), user.Username, user.Roles, session.ID.Hex())
	if err != nil {
		return nil, err
	}
	session.CurrentlyActiveToken = token

	created, err := s.store.InsertOne(ctx, session)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return &RefreshResult{
		AccessToken: token,
		Claims: &models.AccessClaims{
			UserID:    user.ID.Hex(),
			Username:  user.Username,
			Roles:     user.Roles,
			SessionID: created.ID.Hex(),
		},
		Session: created,
	}, nil
}

// Refresh thực hiện chu trình xác thực + xoay vòng token cho một request:
//  1. token rỗng → lỗi xác thực
//  2. xác minh chữ ký (bỏ qua hạn sử dụng) → sai chữ ký là tín hiệu giả mạo
//  3. giải mã danh tính từ claims
//  4. tra phiên theo sessionId → không còn là phiên đã hết hạn, yêu cầu đăng nhập lại
//  5. so token trình lên với currentlyActiveToken → lệch là phiên bị chiếm
//     hoặc bị request song song vượt mặt: xóa phiên
//  6. ký token mới, ghi đè currentlyActiveToken cùng IP/UA hiện tại
//  7. trả token mới + danh tính cho middleware gắn vào request
//
// Mọi kết cục đều là terminal, không retry.
func (s *SessionService) Refresh(ctx context.Context, rawToken, ip, userAgent string) (*RefreshResult, error) {
	if rawToken == "" {
		return nil, common.ErrTokenMissing
	}

	claims, err := s.parseToken(rawToken)
	if err != nil {
		return nil, err
	}

	sessionID := utility.String2ObjectID(claims.SessionID)
	if sessionID.IsZero() {
		return nil, common.ErrTokenInvalid
	}

	session, err := s.store.FindOneById(ctx, sessionID)
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) && appErr.StatusCode == common.StatusNotFound {
			return nil, common.ErrSessionExpired
		}
		return nil, common.ConvertMongoError(err)
	}

	if session.CurrentlyActiveToken != rawToken {
		// Token stale: phiên không còn tin được, xóa luôn
		_ = s.store.DeleteById(ctx, session.ID)
		return nil, common.ErrSessionInvalidated
	}

	newToken, err := s.signToken(claims.UserID, claims.Username, claims.Roles, claims.SessionID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateById(ctx, session.ID, map[string]interface{}{
		"currentlyActiveToken": newToken,
		"addressIP":            ip,
		"userAgent":            userAgent,
	})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return &RefreshResult{
		AccessToken: newToken,
		Claims:      claims,
		Session:     updated,
	}, nil
}

// EndSession xóa phiên (logout). Phiên không tồn tại không phải là lỗi.
func (s *SessionService) EndSession(ctx context.Context, sessionID primitive.ObjectID) error {
	err := s.store.DeleteById(ctx, sessionID)
	if err != nil {
		var appErr *common.Error
		if errors.As(err, &appErr) && appErr.StatusCode == common.StatusNotFound {
			return nil
		}
		return common.ConvertMongoError(err)
	}
	return nil
}
