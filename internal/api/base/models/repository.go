// Package models chứa các kiểu dùng chung cho layer repository/base
// (kết quả phân trang, kết quả query có tổng số documents).
package models

// PaginateResult đại diện cho kết quả phân trang
type PaginateResult[T any] struct {
	// Trang hiện tại
	Page int64 `json:"page" bson:"page"`
	// Số lượng mục trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Số lượng mục trong trang hiện tại
	ItemCount int64 `json:"itemCount" bson:"itemCount"`
	// Danh sách các mục
	Items []T `json:"items" bson:"items"`
	// Tổng số mục
	Total int64 `json:"total" bson:"total"`
	// Tổng số trang
	TotalPage int64 `json:"totalPage" bson:"totalPage"`
}

// ResultMeta cho phép layer handler trích danh sách records và thông tin
// phân trang từ kết quả truy vấn mà không cần biết kiểu model cụ thể.
type ResultMeta interface {
	ResultItems() []interface{}
	ResultPages() int64
	ResultTotal() int64
}

// ResultItems trả về danh sách items dưới dạng []interface{}
func (r *PaginateResult[T]) ResultItems() []interface{} {
	items := make([]interface{}, len(r.Items))
	for i := range r.Items {
		items[i] = r.Items[i]
	}
	return items
}

// ResultPages trả về tổng số trang
func (r *PaginateResult[T]) ResultPages() int64 {
	return r.TotalPage
}

// ResultTotal trả về tổng số documents
func (r *PaginateResult[T]) ResultTotal() int64 {
	return r.Total
}

// QueryResult đại diện cho kết quả trả về của một query có đếm tổng:
// danh sách records của trang hiện tại kèm tổng số documents khớp filter.
type QueryResult[T any] struct {
	// Danh sách records của trang hiện tại
	Records []T `json:"records" bson:"records"`
	// Tổng số documents khớp filter (không giới hạn theo trang)
	TotalDocuments int64 `json:"totalDocuments" bson:"totalDocuments"`
	// Tổng số trang tính theo limit của query
	Pages int64 `json:"pages" bson:"pages"`
}

// ResultItems trả về danh sách records dưới dạng []interface{}
func (r *QueryResult[T]) ResultItems() []interface{} {
	items := make([]interface{}, len(r.Records))
	for i := range r.Records {
		items[i] = r.Records[i]
	}
	return items
}

// ResultPages trả về tổng số trang
func (r *QueryResult[T]) ResultPages() int64 {
	return r.Pages
}

// ResultTotal trả về tổng số documents
func (r *QueryResult[T]) ResultTotal() int64 {
	return r.TotalDocuments
}
