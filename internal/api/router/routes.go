// Package router - khung đăng ký route cho API.
//
// LƯU Ý FIBER V3: middleware KHÔNG được truyền trực tiếp vào route
// (router.Get(path, middleware, handler) sẽ bỏ qua middleware).
// Phải tạo group rồi .Use() middleware. Use khớp theo PREFIX đường dẫn,
// không theo group object: hai group cùng prefix mà cùng Use một middleware
// thì middleware đó chạy hai lần cho mỗi request khớp prefix. Vì vậy mỗi
// resource prefix chỉ được dựng group + Use đúng một lần (NewResourceGroup),
// route lẻ có middleware thì group trên chính đường dẫn đầy đủ của route
// (RegisterRouteWithMiddleware).
package router

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	authsvc "biz_metrics/internal/api/auth/service"
	"biz_metrics/internal/api/middleware"
)

// CRUDHandler định nghĩa interface cho các handler CRUD
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	FindWithQuery(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi resource
type CRUDConfig struct {
	// Create
	InsOne  bool // POST /            - Insert One ({schema: ...})
	InsMany bool // POST /insert-many - Insert Many

	// Read
	List     bool // GET /          - danh sách qua QueryDescriptor
	FindOne  bool // GET /find-one  - document đầu tiên khớp filter
	FindById bool // GET /:id       - Find By Id
	FindIds  bool // GET /by-ids    - Find Many By Ids (ids=a,b,c)
	Paginate bool // GET /paginate  - Find With Pagination

	// Update
	UpdOne  bool // PATCH /update-one
	UpdById bool // PATCH /:id - Update By Id ({documentUpdate: ...})
	UpdMany bool // PATCH /update-many

	// Delete
	DelOne  bool // DELETE /delete-one
	DelById bool // DELETE /:id
	DelMany bool // DELETE /delete-many

	// Other
	Count  bool // GET /count
	Exists bool // GET /exists
}

// Config dùng chung cho các domain
var (
	// ReadOnlyConfig chỉ cho phép đọc
	ReadOnlyConfig = CRUDConfig{
		List: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		Count: true, Exists: true,
	}

	// ReadWriteConfig cho phép đầy đủ CRUD
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		List: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdById: true, UpdMany: true,
		DelOne: true, DelById: true, DelMany: true,
		Count: true, Exists: true,
	}
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// NewResourceGroup tạo group cho một resource prefix và gắn middleware
// đúng MỘT lần. Mọi route của cùng resource phải đăng ký trên group này;
// dựng group thứ hai trên cùng prefix sẽ làm middleware chạy lặp.
func NewResourceGroup(router fiber.Router, prefix string, middlewares ...fiber.Handler) fiber.Router {
	grp := router.Group(prefix)
	for _, mw := range middlewares {
		if mw != nil {
			grp.Use(mw)
		}
	}
	return grp
}

// registerMethod gắn handler vào router theo tên method HTTP
func registerMethod(router fiber.Router, method string, path string, handler fiber.Handler) {
	switch method {
	case "GET":
		router.Get(path, handler)
	case "POST":
		router.Post(path, handler)
	case "PUT":
		router.Put(path, handler)
	case "PATCH":
		router.Patch(path, handler)
	case "DELETE":
		router.Delete(path, handler)
	}
}

// joinPath ghép prefix và path thành đường dẫn đầy đủ của route
func joinPath(prefix string, path string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

// RegisterRouteWithMiddleware đăng ký một route lẻ. Có middleware thì group
// trên chính đường dẫn đầy đủ của route rồi .Use() — middleware chỉ khớp
// subtree của route đó, không lan sang các route cùng prefix cha
// (vd authMw của /auth/logout không được chạy cho /auth/login).
// Route thuộc một resource CRUD thì dùng group trả về từ RegisterCRUDRoutes
// thay vì hàm này.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	full := joinPath(prefix, path)

	if len(middlewares) == 0 {
		registerMethod(router, method, full, handler)
		return
	}

	routeGroup := router.Group(full)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}
	registerMethod(routeGroup, method, "/", handler)
}

// RegisterCRUDRoutes đăng ký các route CRUD cho một resource trên MỘT group
// duy nhất: authMw và queryMw được Use đúng một lần nên chạy đúng một lần
// cho mỗi request (authMw xoay vòng token, chạy lặp sẽ tự hủy phiên do so
// khớp currentlyActiveToken). Các path cố định (insert-many, find-one,
// paginate, count, ...) đăng ký trước path có param :id.
// Trả về group để domain gắn thêm route riêng trên cùng prefix.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, authMw fiber.Handler, queryMw fiber.Handler) fiber.Router {
	grp := NewResourceGroup(router, prefix, authMw, queryMw)

	// Create
	if config.InsOne {
		grp.Post("/", h.InsertOne)
	}
	if config.InsMany {
		grp.Post("/insert-many", h.InsertMany)
	}

	// Read - path cố định trước
	if config.FindOne {
		grp.Get("/find-one", h.FindOne)
	}
	if config.FindIds {
		grp.Get("/by-ids", h.FindManyByIds)
	}
	if config.Paginate {
		grp.Get("/paginate", h.FindWithPagination)
	}
	if config.Count {
		grp.Get("/count", h.CountDocuments)
	}
	if config.Exists {
		grp.Get("/exists", h.DocumentExists)
	}
	if config.List {
		grp.Get("/", h.FindWithQuery)
	}

	// Update
	if config.UpdOne {
		grp.Patch("/update-one", h.UpdateOne)
	}
	if config.UpdMany {
		grp.Patch("/update-many", h.UpdateMany)
	}

	// Delete - delete-one/delete-many trước :id
	if config.DelOne {
		grp.Delete("/delete-one", h.DeleteOne)
	}
	if config.DelMany {
		grp.Delete("/delete-many", h.DeleteMany)
	}

	// Các route theo :id
	if config.FindById {
		grp.Get("/:id", h.FindOneById)
	}
	if config.UpdById {
		grp.Patch("/:id", h.UpdateById)
	}
	if config.DelById {
		grp.Delete("/:id", h.DeleteById)
	}

	return grp
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
// app dùng cho các route ngoài /api/v1 (vd /auth), v1 cho CRUD resource.
type RegisterFunc func(app *fiber.App, v1 fiber.Router, r *Router, authMw fiber.Handler, queryMw fiber.Handler) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Middleware auth và query normalizer được dựng một lần rồi chia cho
// các domain; caller truyền lần lượt Register của từng domain để tránh
// import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	sessionService, err := authsvc.NewSessionService()
	if err != nil {
		return err
	}
	authMw := middleware.AuthMiddleware(sessionService)
	queryMw := middleware.QueryNormalizer()

	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(app, v1, r, authMw, queryMw); err != nil {
			return err
		}
	}
	return nil
}
