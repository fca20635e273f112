// Package basesvc - Test dispatch toán tử update và chuyển đổi UpdateData.
package basesvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildUpdateDocument_ToanTuFieldHopLe(t *testing.T) {
	for _, op := range []string{"$set", "$inc", "$min", "$max", "$mul", "$rename", "$setOnInsert", "$unset", "$currentDate"} {
		doc, err := BuildUpdateDocument(DocumentUpdate{
			UpdateKind:     "field",
			UpdateOperator: op,
			Fields:         map[string]any{"year": 2026},
		})
		if err != nil {
			t.Errorf("toán tử field %s phải hợp lệ, có lỗi: %v", op, err)
			continue
		}
		fields, ok := doc[op].(bson.M)
		if !ok {
			t.Errorf("update document phải có key %s kiểu bson.M, có %v", op, doc)
			continue
		}
		if fields["year"] != 2026 {
			t.Errorf("fields phải giữ nguyên giá trị, có %v", fields)
		}
	}
}

func TestBuildUpdateDocument_ToanTuArrayHopLe(t *testing.T) {
	for _, op := range []string{"$addToSet", "$pop", "$pull", "$push", "$pullAll"} {
		_, err := BuildUpdateDocument(DocumentUpdate{
			UpdateKind:     "array",
			UpdateOperator: op,
			Fields:         map[string]any{"months": bson.M{"month": "January"}},
		})
		if err != nil {
			t.Errorf("toán tử array %s phải hợp lệ, có lỗi: %v", op, err)
		}
	}
}

func TestBuildUpdateDocument_ToanTuSaiNhom(t *testing.T) {
	cases := []DocumentUpdate{
		{UpdateKind: "field", UpdateOperator: "$push", Fields: map[string]any{"a": 1}},
		{UpdateKind: "array", UpdateOperator: "$set", Fields: map[string]any{"a": 1}},
		{UpdateKind: "nested", UpdateOperator: "$set", Fields: map[string]any{"a": 1}},
	}
	for _, du := range cases {
		if _, err := BuildUpdateDocument(du); err == nil {
			t.Errorf("phải trả về lỗi với kind=%s operator=%s", du.UpdateKind, du.UpdateOperator)
		}
	}
}

func TestBuildUpdateDocument_FieldsRongTraVeLoi(t *testing.T) {
	if _, err := BuildUpdateDocument(DocumentUpdate{
		UpdateKind:     "field",
		UpdateOperator: "$set",
		Fields:         map[string]any{},
	}); err == nil {
		t.Error("fields rỗng phải trả về lỗi")
	}
}

func TestToUpdateData_MapThuongWrapTrongSet(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{"username": "staff01"})
	if err != nil {
		t.Fatalf("ToUpdateData trả về lỗi: %v", err)
	}
	if update.Set == nil || update.Set["username"] != "staff01" {
		t.Errorf("map thường phải được wrap trong $set, có %+v", update)
	}
}

func TestToUpdateData_GiuNguyenUpdateData(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"a": 1}}
	update, err := ToUpdateData(original)
	if err != nil {
		t.Fatalf("ToUpdateData trả về lỗi: %v", err)
	}
	if update != original {
		t.Error("UpdateData truyền vào phải được trả về nguyên vẹn")
	}
}

func TestBuildProjection_LoaiTruVaBaoGom(t *testing.T) {
	projection := BuildProjection([]string{"-password", "-salt", "username"})
	if projection["password"] != 0 || projection["salt"] != 0 {
		t.Errorf("field prefix '-' phải thành 0, có %v", projection)
	}
	if projection["username"] != 1 {
		t.Errorf("field không prefix phải thành 1, có %v", projection)
	}
}

func TestTotalPages_LamTronLen(t *testing.T) {
	cases := []struct {
		total, limit, want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 7, 4},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) phải là %d, có %d", tc.total, tc.limit, tc.want, got)
		}
	}
}
