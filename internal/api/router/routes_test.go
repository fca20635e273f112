// Test khung đăng ký route: middleware của một resource group phải chạy
// đúng MỘT lần cho mỗi request (auth middleware xoay vòng token, chạy lặp
// sẽ tự hủy phiên), và middleware của route lẻ không được lan sang các
// route khác cùng prefix cha.
package router

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// fakeCRUDHandler đếm số lần từng handler được gọi
type fakeCRUDHandler struct {
	hits map[string]int
}

func newFakeCRUDHandler() *fakeCRUDHandler {
	return &fakeCRUDHandler{hits: map[string]int{}}
}

func (f *fakeCRUDHandler) hit(c fiber.Ctx, name string) error {
	f.hits[name]++
	return c.SendStatus(fiber.StatusOK)
}

func (f *fakeCRUDHandler) InsertOne(c fiber.Ctx) error          { return f.hit(c, "InsertOne") }
func (f *fakeCRUDHandler) InsertMany(c fiber.Ctx) error         { return f.hit(c, "InsertMany") }
func (f *fakeCRUDHandler) FindWithQuery(c fiber.Ctx) error      { return f.hit(c, "FindWithQuery") }
func (f *fakeCRUDHandler) FindOne(c fiber.Ctx) error            { return f.hit(c, "FindOne") }
func (f *fakeCRUDHandler) FindOneById(c fiber.Ctx) error        { return f.hit(c, "FindOneById") }
func (f *fakeCRUDHandler) FindManyByIds(c fiber.Ctx) error      { return f.hit(c, "FindManyByIds") }
func (f *fakeCRUDHandler) FindWithPagination(c fiber.Ctx) error { return f.hit(c, "FindWithPagination") }
func (f *fakeCRUDHandler) UpdateOne(c fiber.Ctx) error          { return f.hit(c, "UpdateOne") }
func (f *fakeCRUDHandler) UpdateMany(c fiber.Ctx) error         { return f.hit(c, "UpdateMany") }
func (f *fakeCRUDHandler) UpdateById(c fiber.Ctx) error         { return f.hit(c, "UpdateById") }
func (f *fakeCRUDHandler) DeleteOne(c fiber.Ctx) error          { return f.hit(c, "DeleteOne") }
func (f *fakeCRUDHandler) DeleteMany(c fiber.Ctx) error         { return f.hit(c, "DeleteMany") }
func (f *fakeCRUDHandler) DeleteById(c fiber.Ctx) error         { return f.hit(c, "DeleteById") }
func (f *fakeCRUDHandler) CountDocuments(c fiber.Ctx) error     { return f.hit(c, "CountDocuments") }
func (f *fakeCRUDHandler) DocumentExists(c fiber.Ctx) error     { return f.hit(c, "DocumentExists") }

func countingMiddleware(counter *int) fiber.Handler {
	return func(c fiber.Ctx) error {
		*counter++
		return c.Next()
	}
}

func newCRUDTestApp(t *testing.T, authRuns, queryRuns *int) (*fiber.App, *fakeCRUDHandler) {
	t.Helper()

	app := fiber.New()
	v1 := app.Group("/api/v1")
	h := newFakeCRUDHandler()
	r := NewRouter(app)
	r.RegisterCRUDRoutes(v1, "/thing", h, ReadWriteConfig, countingMiddleware(authRuns), countingMiddleware(queryRuns))
	return app, h
}

func TestRegisterCRUDRoutes_MiddlewareChayDungMotLanMoiRequest(t *testing.T) {
	var authRuns, queryRuns int
	app, h := newCRUDTestApp(t, &authRuns, &queryRuns)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/thing/", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, muốn %d", resp.StatusCode, fiber.StatusOK)
	}

	if authRuns != 1 {
		t.Errorf("auth middleware chạy %d lần, muốn đúng 1 lần", authRuns)
	}
	if queryRuns != 1 {
		t.Errorf("query middleware chạy %d lần, muốn đúng 1 lần", queryRuns)
	}
	if h.hits["FindWithQuery"] != 1 {
		t.Errorf("FindWithQuery được gọi %d lần, muốn 1", h.hits["FindWithQuery"])
	}
}

func TestRegisterCRUDRoutes_RouteTheoIdCungChiChayMiddlewareMotLan(t *testing.T) {
	var authRuns, queryRuns int
	app, h := newCRUDTestApp(t, &authRuns, &queryRuns)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/thing/66f0c0ffee0000000000aaaa", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, muốn %d", resp.StatusCode, fiber.StatusOK)
	}

	if authRuns != 1 {
		t.Errorf("auth middleware chạy %d lần cho route :id, muốn đúng 1 lần", authRuns)
	}
	if h.hits["DeleteById"] != 1 {
		t.Errorf("DeleteById được gọi %d lần, muốn 1", h.hits["DeleteById"])
	}
}

func TestRegisterCRUDRoutes_KhongSlashCuoiVanKhopRoute(t *testing.T) {
	var authRuns, queryRuns int
	app, h := newCRUDTestApp(t, &authRuns, &queryRuns)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/thing", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("đường dẫn không có slash cuối phải khớp route, status = %d", resp.StatusCode)
	}
	if h.hits["FindWithQuery"] != 1 {
		t.Errorf("FindWithQuery được gọi %d lần, muốn 1", h.hits["FindWithQuery"])
	}
}

func TestRegisterRouteWithMiddleware_KhongLanSangRouteCungPrefix(t *testing.T) {
	app := fiber.New()
	var protectedRuns int
	okHandler := func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	RegisterRouteWithMiddleware(app, "/auth", "POST", "/login", nil, okHandler)
	RegisterRouteWithMiddleware(app, "/auth", "POST", "/logout", []fiber.Handler{countingMiddleware(&protectedRuns)}, okHandler)

	resp, err := app.Test(httptest.NewRequest("POST", "/auth/login", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status login = %d, muốn %d", resp.StatusCode, fiber.StatusOK)
	}
	if protectedRuns != 0 {
		t.Errorf("middleware của /auth/logout chạy %d lần cho /auth/login, muốn 0", protectedRuns)
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/auth/logout", nil))
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status logout = %d, muốn %d", resp.StatusCode, fiber.StatusOK)
	}
	if protectedRuns != 1 {
		t.Errorf("middleware của /auth/logout chạy %d lần, muốn 1", protectedRuns)
	}
}
