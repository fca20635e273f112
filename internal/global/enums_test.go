// Test bảng enum nhúng sẵn: deployment không cấu hình ENUMS_DATA_FILE
// vẫn phải chấp nhận các giá trị jobPosition/storeLocation/department hợp lệ.
package global

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsEnumValue_BangNhungSanDungDuocNgayKhiKhongNapFile(t *testing.T) {
	cases := []struct {
		table string
		value string
	}{
		{"jobPositions", "Store Manager"},
		{"storeLocations", "Edmonton"},
		{"departments", "Accounting"},
	}
	for _, tc := range cases {
		if !IsEnumValue(tc.table, tc.value) {
			t.Errorf("IsEnumValue(%q, %q) = false, bảng nhúng sẵn phải chứa giá trị này", tc.table, tc.value)
		}
	}

	if IsEnumValue("storeLocations", "Toronto") {
		t.Error("giá trị ngoài bảng phải bị từ chối")
	}
	if IsEnumValue("khong-ton-tai", "Edmonton") {
		t.Error("bảng không tồn tại phải trả false")
	}
}

func TestLoadEnums_PathRongGiuNguyenBangNhungSan(t *testing.T) {
	if err := LoadEnums(""); err != nil {
		t.Fatalf("LoadEnums(\"\") lỗi: %v", err)
	}
	if !IsEnumValue("departments", "Sales") {
		t.Error("sau LoadEnums(\"\") bảng nhúng sẵn phải còn nguyên")
	}
}

func TestLoadEnums_FileThieuBangTraLoi(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.json")
	if err := os.WriteFile(path, []byte(`{"jobPositions": ["Store Manager"]}`), 0644); err != nil {
		t.Fatalf("không ghi được file test: %v", err)
	}

	if err := LoadEnums(path); err == nil {
		t.Fatal("file thiếu bảng phải trả lỗi")
	}
	// Bảng đang dùng không được thay đổi dở dang
	if !IsEnumValue("storeLocations", "Calgary") {
		t.Error("nạp thất bại không được phá bảng hiện tại")
	}
}
