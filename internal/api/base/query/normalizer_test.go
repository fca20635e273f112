// Package basequery - Test chuẩn hóa query string thành QueryDescriptor.
package basequery

import (
	"errors"
	"net/url"
	"testing"

	"biz_metrics/internal/common"
)

func TestNormalize_QueryRongTraVeDescriptorMacDinh(t *testing.T) {
	d, err := Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi với query rỗng: %v", err)
	}
	if d.Limit != DefaultLimit || d.Options.Limit != DefaultLimit {
		t.Errorf("limit mặc định phải là %d, có Limit=%d Options.Limit=%d", DefaultLimit, d.Limit, d.Options.Limit)
	}
	if d.Options.Skip != 0 {
		t.Errorf("skip mặc định phải là 0, có %d", d.Options.Skip)
	}
	if len(d.Filter) != 0 {
		t.Errorf("filter mặc định phải rỗng, có %v", d.Filter)
	}
	if len(d.Projection) != 0 {
		t.Errorf("projection mặc định phải rỗng, có %v", d.Projection)
	}
	assertDefaultSort(t, d)
}

func TestNormalize_ThieuSortDungSortMacDinh(t *testing.T) {
	d, err := Normalize(url.Values{"storeLocation": {"Calgary"}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	assertDefaultSort(t, d)
}

func TestNormalize_MotSortFieldDuocThemTieBreakTheoId(t *testing.T) {
	d, err := Normalize(url.Values{"sort[year]": {"1"}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(d.Options.Sort) != 2 {
		t.Fatalf("sort phải có đúng 2 key, có %d: %v", len(d.Options.Sort), d.Options.Sort)
	}
	if d.Options.Sort[0].Key != "year" || d.Options.Sort[0].Value != 1 {
		t.Errorf("sort key đầu phải là year:1, có %v", d.Options.Sort[0])
	}
	if d.Options.Sort[1].Key != "_id" || d.Options.Sort[1].Value != -1 {
		t.Errorf("tie-break phải là _id:-1, có %v", d.Options.Sort[1])
	}
}

func TestNormalize_NhieuSortFieldKhongThemTieBreak(t *testing.T) {
	d, err := Normalize(url.Values{
		"sort[year]":  {"1"},
		"sort[month]": {"-1"},
	})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(d.Options.Sort) != 2 {
		t.Fatalf("sort phải giữ nguyên 2 key caller truyền, có %d: %v", len(d.Options.Sort), d.Options.Sort)
	}
	for _, e := range d.Options.Sort {
		if e.Key == "_id" {
			t.Errorf("không được thêm _id khi caller đã truyền nhiều sort field: %v", d.Options.Sort)
		}
	}
}

func TestNormalize_SkipTinhTheoPageVaLimit(t *testing.T) {
	cases := []struct {
		name     string
		values   url.Values
		wantSkip int64
	}{
		{"page và limit mặc định", url.Values{}, 0},
		{"page 3 limit mặc định", url.Values{"page": {"3"}}, 20},
		{"page 2 limit 25", url.Values{"page": {"2"}, "limit": {"25"}}, 25},
		{"page 5 limit 7", url.Values{"page": {"5"}, "limit": {"7"}}, 28},
	}
	for _, tc := range cases {
		d, err := Normalize(tc.values)
		if err != nil {
			t.Fatalf("%s: Normalize trả về lỗi: %v", tc.name, err)
		}
		if d.Options.Skip != tc.wantSkip {
			t.Errorf("%s: skip phải là %d, có %d", tc.name, tc.wantSkip, d.Options.Skip)
		}
	}
}

func TestNormalize_LimitGhiVaoCaHaiNoi(t *testing.T) {
	d, err := Normalize(url.Values{"limit": {"42"}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if d.Limit != 42 {
		t.Errorf("Limit top-level phải là 42, có %d", d.Limit)
	}
	if d.Options.Limit != 42 {
		t.Errorf("Options.Limit phải là 42, có %d", d.Options.Limit)
	}
}

func TestNormalize_ProjectionTachPhayVaPrefixLoaiTru(t *testing.T) {
	d, err := Normalize(url.Values{"projection": {"a,b"}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(d.Projection) != 2 || d.Projection[0] != "-a" || d.Projection[1] != "-b" {
		t.Errorf("projection 'a,b' phải thành [-a -b], có %v", d.Projection)
	}
}

func TestNormalize_OptionsPassthroughKhongVaoFilter(t *testing.T) {
	d, err := Normalize(url.Values{
		"maxTimeMS": {"5000"},
		"comment":   {"dashboard"},
	})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if d.Options.Extra["maxTimeMS"] != "5000" || d.Options.Extra["comment"] != "dashboard" {
		t.Errorf("options passthrough thiếu giá trị, có %v", d.Options.Extra)
	}
	if len(d.Filter) != 0 {
		t.Errorf("options passthrough không được lọt vào filter, có %v", d.Filter)
	}
}

func TestNormalize_BodyPassthroughGomVaoBody(t *testing.T) {
	d, err := Normalize(url.Values{
		"fields":       {"revenue"},
		"newQueryFlag": {"true"},
	})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if d.Body["fields"] != "revenue" || d.Body["newQueryFlag"] != "true" {
		t.Errorf("body passthrough thiếu giá trị, có %v", d.Body)
	}
	if len(d.Filter) != 0 {
		t.Errorf("body passthrough không được lọt vào filter, có %v", d.Filter)
	}
}

func TestNormalize_ToanTuLogicAppendThanhMang(t *testing.T) {
	d, err := Normalize(url.Values{
		"$or": {`{"year":2025}`, `{"year":2026}`},
	})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	clauses, ok := d.Filter["$or"].([]any)
	if !ok {
		t.Fatalf("$or phải là mảng, có %T", d.Filter["$or"])
	}
	if len(clauses) != 2 {
		t.Errorf("$or phải có 2 phần tử, có %d: %v", len(clauses), clauses)
	}
}

func TestNormalize_KeyConLaiVaoFilter(t *testing.T) {
	d, err := Normalize(url.Values{
		"storeLocation": {"Edmonton"},
		"year":          {`{"$gte":2024}`},
	})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if d.Filter["storeLocation"] != "Edmonton" {
		t.Errorf("equality match phải giữ nguyên string, có %v", d.Filter["storeLocation"])
	}
	cond, ok := d.Filter["year"].(map[string]any)
	if !ok {
		t.Fatalf("điều kiện JSON phải decode thành map, có %T", d.Filter["year"])
	}
	if _, ok := cond["$gte"]; !ok {
		t.Errorf("điều kiện thiếu $gte, có %v", cond)
	}
}

func TestNormalize_GiaTriKhongPhaiSoTraVeLoiValidation(t *testing.T) {
	cases := []url.Values{
		{"limit": {"abc"}},
		{"page": {"xyz"}},
		{"sort[year]": {"desc"}},
		{"limit": {"0"}},
		{"page": {"-1"}},
	}
	for _, values := range cases {
		_, err := Normalize(values)
		if err == nil {
			t.Errorf("Normalize phải trả về lỗi với input %v", values)
			continue
		}
		var appErr *common.Error
		if !errors.As(err, &appErr) {
			t.Errorf("lỗi phải là *common.Error, có %T", err)
			continue
		}
		if appErr.StatusCode != common.StatusBadRequest {
			t.Errorf("lỗi validation phải có status %d, có %d", common.StatusBadRequest, appErr.StatusCode)
		}
	}
}

func TestNormalize_GiaTriRongBiDrop(t *testing.T) {
	d, err := Normalize(url.Values{"storeLocation": {""}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(d.Filter) != 0 {
		t.Errorf("giá trị rỗng phải bị drop, có filter %v", d.Filter)
	}
}

func TestNormalize_ToanTuLogicRongKhongVaoFilter(t *testing.T) {
	d, err := Normalize(url.Values{"$and": {""}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if _, ok := d.Filter["$and"]; ok {
		t.Errorf("$and không có clause nào không được ghi vào filter, có %v", d.Filter["$and"])
	}
}

func TestNormalize_ToanTuLogicBoQuaPhanTuRong(t *testing.T) {
	d, err := Normalize(url.Values{"$or": {"", `{"year": 2025}`}})
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	clauses, ok := d.Filter["$or"].([]any)
	if !ok || len(clauses) != 1 {
		t.Fatalf("$or phải có đúng 1 clause, có %v", d.Filter["$or"])
	}
}

func assertDefaultSort(t *testing.T, d *QueryDescriptor) {
	t.Helper()
	if len(d.Options.Sort) != 2 {
		t.Fatalf("sort mặc định phải có 2 key, có %v", d.Options.Sort)
	}
	if d.Options.Sort[0].Key != "createdAt" || d.Options.Sort[0].Value != -1 {
		t.Errorf("sort mặc định key đầu phải là createdAt:-1, có %v", d.Options.Sort[0])
	}
	if d.Options.Sort[1].Key != "_id" || d.Options.Sort[1].Value != -1 {
		t.Errorf("sort mặc định key hai phải là _id:-1, có %v", d.Options.Sort[1])
	}
}
