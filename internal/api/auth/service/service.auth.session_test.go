// Test state machine xoay vòng access token với fake store trong bộ nhớ:
// chữ ký sai không bao giờ xoay token, token stale xóa phiên,
// xoay vòng tuần tự hai lần dùng được token của lần trước.
package authsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "biz_metrics/internal/api/auth/models"
	"biz_metrics/internal/common"
)

// fakeSessionStore giữ session trong map, đủ cho state machine chạy
type fakeSessionStore struct {
	sessions map[primitive.ObjectID]models.Session
	updates  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[primitive.ObjectID]models.Session)}
}

func (f *fakeSessionStore) InsertOne(_ context.Context, data models.Session) (models.Session, error) {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	f.sessions[data.ID] = data
	return data, nil
}

func (f *fakeSessionStore) FindOneById(_ context.Context, id primitive.ObjectID) (models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return models.Session{}, common.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return models.Session{}, common.ErrNotFound
	}

	fields, ok := data.(map[string]interface{})
	if !ok {
		return models.Session{}, common.ErrInvalidInput
	}
	if token, ok := fields["currentlyActiveToken"].(string); ok {
		session.CurrentlyActiveToken = token
	}
	if ip, ok := fields["addressIP"].(string); ok {
		session.AddressIP = ip
	}
	if ua, ok := fields["userAgent"].(string); ok {
		session.UserAgent = ua
	}

	f.sessions[id] = session
	f.updates++
	return session, nil
}

func (f *fakeSessionStore) DeleteById(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.sessions[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

var testSecret = []byte("bi-mat-chi-dung-cho-test")

func newTestService(store *fakeSessionStore) *SessionService {
	return NewSessionServiceWithStore(store, testSecret, 5*time.Second, 12*time.Hour)
}

func newTestUser() models.User {
	return models.User{
		ID:       primitive.NewObjectID(),
		Username: "an.nguyen",
		Roles:    []string{"user"},
	}
}

func TestRefresh_ThieuTokenTraLoiXacThuc(t *testing.T) {
	svc := newTestService(newFakeSessionStore())

	_, err := svc.Refresh(context.Background(), "", "1.2.3.4", "test-agent")

	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("muốn *common.Error, nhận được %T", err)
	}
	if !appErr.TriggerLogout {
		t.Error("thiếu token phải bật TriggerLogout")
	}
	if appErr.StatusCode != common.StatusUnauthorized {
		t.Errorf("StatusCode = %d, muốn %d", appErr.StatusCode, common.StatusUnauthorized)
	}
}

func TestRefresh_ChuKySaiKhongXoayToken(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestService(store)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}
	tokenBefore := store.sessions[result.Session.ID].CurrentlyActiveToken

	// Token ký bằng secret khác: chữ ký không hợp lệ với server
	forged := signWithSecret(t, result.Claims.SessionID, []byte("secret-khac"))

	_, err = svc.Refresh(context.Background(), forged, "1.2.3.4", "test-agent")
	if err == nil {
		t.Fatal("token giả mạo phải bị từ chối")
	}

	if store.updates != 0 {
		t.Error("chữ ký sai không được ghi gì vào store")
	}
	if store.sessions[result.Session.ID].CurrentlyActiveToken != tokenBefore {
		t.Error("currentlyActiveToken không được thay đổi khi chữ ký sai")
	}
}

func TestRefresh_TokenStaleXoaPhien(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestService(store)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}
	staleToken := result.AccessToken

	// Xoay vòng một lần: token ban đầu trở thành stale
	if _, err := svc.Refresh(context.Background(), staleToken, "1.2.3.4", "test-agent"); err != nil {
		t.Fatalf("lần xoay vòng đầu phải thành công: %v", err)
	}

	// Trình lại token stale
	_, err = svc.Refresh(context.Background(), staleToken, "1.2.3.4", "test-agent")
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("muốn *common.Error, nhận được %T", err)
	}
	if !appErr.TriggerLogout {
		t.Error("token stale phải bật TriggerLogout")
	}

	// Phiên đã bị xóa: tra cứu tiếp theo phải not-found
	if _, ok := store.sessions[result.Session.ID]; ok {
		t.Error("phiên phải bị xóa sau khi trình token stale")
	}
}

func TestRefresh_XoayVongTuanTuHaiLan(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestService(store)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}

	first, err := svc.Refresh(context.Background(), result.AccessToken, "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("lần xoay vòng 1 lỗi: %v", err)
	}
	if first.AccessToken == result.AccessToken {
		t.Error("token sau xoay vòng phải khác token ban đầu")
	}

	second, err := svc.Refresh(context.Background(), first.AccessToken, "5.6.7.8", "agent-khac")
	if err != nil {
		t.Fatalf("lần xoay vòng 2 với token của lần 1 lỗi: %v", err)
	}

	session := store.sessions[result.Session.ID]
	if session.CurrentlyActiveToken != second.AccessToken {
		t.Error("currentlyActiveToken sau lần 2 phải là token của lần 2")
	}
	if session.AddressIP != "5.6.7.8" || session.UserAgent != "agent-khac" {
		t.Error("IP/UA của phiên phải được cập nhật theo request hiện tại")
	}
}

func TestRefresh_TokenMoiKhacTokenCuTrongCungMotGiay(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestService(store)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}

	// Xoay vòng liên tiếp ngay lập tức: iat/exp chỉ có độ phân giải giây
	// nên nếu token thiếu jti, các lần ký trong cùng giây sẽ trùng byte
	// và việc so khớp currentlyActiveToken tự vô hiệu.
	token := result.AccessToken
	seen := map[string]bool{token: true}
	for i := 0; i < 3; i++ {
		refreshed, err := svc.Refresh(context.Background(), token, "1.2.3.4", "test-agent")
		if err != nil {
			t.Fatalf("lần xoay vòng %d lỗi: %v", i+1, err)
		}
		if seen[refreshed.AccessToken] {
			t.Fatalf("lần xoay vòng %d trả lại token đã từng phát hành", i+1)
		}
		seen[refreshed.AccessToken] = true
		token = refreshed.AccessToken
	}
}

func TestRefresh_PhienKhongTonTaiLaSessionExpired(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestService(store)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}

	// Phiên bị xóa (logout hoặc TTL sweep) trong khi token vẫn còn
	delete(store.sessions, result.Session.ID)

	_, err = svc.Refresh(context.Background(), result.AccessToken, "1.2.3.4", "test-agent")
	if !errors.Is(err, common.ErrSessionExpired) {
		t.Errorf("muốn ErrSessionExpired, nhận được %v", err)
	}
}

func TestRefresh_TokenHetHanNhungChuKyDungVanXoayDuoc(t *testing.T) {
	store := newFakeSessionStore()
	// TTL âm: token vừa ký đã hết hạn ngay
	svc := NewSessionServiceWithStore(store, testSecret, -1*time.Second, 12*time.Hour)

	result, err := svc.StartSession(context.Background(), newTestUser(), "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("StartSession lỗi: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), result.AccessToken, "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("token hết hạn nhưng chữ ký đúng phải xoay vòng được: %v", err)
	}
	if refreshed.AccessToken == result.AccessToken {
		t.Error("phải nhận được token mới")
	}
}

func TestEndSession_PhienKhongTonTaiKhongPhaiLoi(t *testing.T) {
	svc := newTestService(newFakeSessionStore())

	if err := svc.EndSession(context.Background(), primitive.NewObjectID()); err != nil {
		t.Errorf("logout phiên không tồn tại phải trả nil, nhận được %v", err)
	}
}

// signWithSecret ký một token có sessionId hợp lệ bằng secret tùy ý
func signWithSecret(t *testing.T, sessionID string, secret []byte) string {
	t.Helper()

	claims := &models.AccessClaims{
		UserID:    primitive.NewObjectID().Hex(),
		Username:  "an.nguyen",
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Second)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("không ký được token test: %v", err)
	}
	return signed
}
