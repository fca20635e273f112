// Test dựng response body thống nhất: phân loại kind/status, bọc data thành mảng,
// cờ triggerLogout cho lỗi xác thực và hành vi not-found trả về success rỗng.
package basehdl

import (
	"errors"
	"testing"

	basemodels "biz_metrics/internal/api/base/models"
	"biz_metrics/internal/common"
)

func TestBuildResponse_ThanhCongVoiMotDocument(t *testing.T) {
	type user struct {
		Username string `json:"username"`
	}

	resp := BuildResponse("token-moi", &user{Username: "an.nguyen"}, nil)

	if resp.Kind != KindSuccess {
		t.Errorf("Kind = %q, muốn %q", resp.Kind, KindSuccess)
	}
	if resp.Status != common.StatusOK {
		t.Errorf("Status = %d, muốn %d", resp.Status, common.StatusOK)
	}
	if resp.AccessToken != "token-moi" {
		t.Errorf("AccessToken = %q, muốn token đã truyền vào", resp.AccessToken)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("Data phải là mảng 1 phần tử, nhận được %d", len(resp.Data))
	}
	if resp.TotalDocuments != 1 || resp.Pages != 1 {
		t.Errorf("TotalDocuments/Pages = %d/%d, muốn 1/1", resp.TotalDocuments, resp.Pages)
	}
	if resp.TriggerLogout {
		t.Error("TriggerLogout phải là false khi thành công")
	}
}

func TestBuildResponse_DataNilVanLaMangRong(t *testing.T) {
	resp := BuildResponse("", nil, nil)

	if resp.Data == nil {
		t.Fatal("Data không được là nil, phải là mảng rỗng")
	}
	if len(resp.Data) != 0 {
		t.Errorf("Data phải rỗng, nhận được %d phần tử", len(resp.Data))
	}
	if resp.TotalDocuments != 0 || resp.Pages != 0 {
		t.Errorf("TotalDocuments/Pages = %d/%d, muốn 0/0", resp.TotalDocuments, resp.Pages)
	}
}

func TestBuildResponse_KetQuaQueryGiuNguyenPhanTrang(t *testing.T) {
	result := &basemodels.QueryResult[string]{
		Records:        []string{"a", "b", "c"},
		TotalDocuments: 25,
		Pages:          3,
	}

	resp := BuildResponse("", result, nil)

	if len(resp.Data) != 3 {
		t.Errorf("Data có %d phần tử, muốn 3", len(resp.Data))
	}
	if resp.TotalDocuments != 25 {
		t.Errorf("TotalDocuments = %d, muốn 25", resp.TotalDocuments)
	}
	if resp.Pages != 3 {
		t.Errorf("Pages = %d, muốn 3", resp.Pages)
	}
}

func TestBuildResponse_LoiXacThucBatTriggerLogout(t *testing.T) {
	resp := BuildResponse("", nil, common.ErrTokenInvalid)

	if resp.Kind != KindError {
		t.Errorf("Kind = %q, muốn %q", resp.Kind, KindError)
	}
	if resp.Status != common.StatusUnauthorized {
		t.Errorf("Status = %d, muốn %d", resp.Status, common.StatusUnauthorized)
	}
	if !resp.TriggerLogout {
		t.Error("TriggerLogout phải là true với lỗi xác thực")
	}
	if len(resp.Data) != 0 {
		t.Errorf("Data phải rỗng khi lỗi, nhận được %d phần tử", len(resp.Data))
	}
}

func TestBuildResponse_NotFoundTraVeSuccessRong(t *testing.T) {
	resp := BuildResponse("", nil, common.ErrNotFound)

	if resp.Kind != KindSuccess {
		t.Errorf("Kind = %q, muốn %q (not-found không phải là lỗi)", resp.Kind, KindSuccess)
	}
	if resp.Status != common.StatusOK {
		t.Errorf("Status = %d, muốn %d", resp.Status, common.StatusOK)
	}
	if len(resp.Data) != 0 {
		t.Errorf("Data phải rỗng với not-found, nhận được %d phần tử", len(resp.Data))
	}
	if resp.TriggerLogout {
		t.Error("TriggerLogout phải là false với not-found")
	}
}

func TestBuildResponse_LoiKhongXacDinhKhongLoChiTiet(t *testing.T) {
	resp := BuildResponse("", nil, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	if resp.Kind != KindError {
		t.Errorf("Kind = %q, muốn %q", resp.Kind, KindError)
	}
	if resp.Status != common.StatusInternalServerError {
		t.Errorf("Status = %d, muốn %d", resp.Status, common.StatusInternalServerError)
	}
	if resp.Message != common.MsgInternalError {
		t.Errorf("Message = %q, không được lộ chi tiết lỗi nội bộ", resp.Message)
	}
}

func TestBuildResponse_LoiTrungLapTraVeConflict(t *testing.T) {
	resp := BuildResponse("", nil, common.ErrDuplicate)

	if resp.Status != common.StatusConflict {
		t.Errorf("Status = %d, muốn %d", resp.Status, common.StatusConflict)
	}
	if resp.Kind != KindError {
		t.Errorf("Kind = %q, muốn %q", resp.Kind, KindError)
	}
}

func TestWrapData_BocSliceVaGiaTriDon(t *testing.T) {
	if got := wrapData([]int{1, 2, 3}); len(got) != 3 {
		t.Errorf("wrapData(slice) có %d phần tử, muốn 3", len(got))
	}
	if got := wrapData(42); len(got) != 1 {
		t.Errorf("wrapData(giá trị đơn) có %d phần tử, muốn 1", len(got))
	}
	var nilPtr *int
	if got := wrapData(nilPtr); len(got) != 0 {
		t.Errorf("wrapData(con trỏ nil) phải rỗng, nhận được %d phần tử", len(got))
	}
}
