// Test handler UpdateById với fake service: body {documentUpdate: ...}
// phải được dựng thành update document MongoDB và giao cho service,
// toán tử sai nhóm phải trả envelope lỗi mà không đụng tới service.
package basehdl

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "biz_metrics/internal/api/base/models"
	basequery "biz_metrics/internal/api/base/query"
	"biz_metrics/internal/common"
)

type testDoc struct {
	ID   primitive.ObjectID `json:"id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

type testDocInput struct {
	Name string `json:"name" validate:"required"`
}

// fakeDocService ghi lại lời gọi UpdateById, các method khác không dùng tới
type fakeDocService struct {
	updateByIdCalls int
	lastID          primitive.ObjectID
	lastUpdate      interface{}
	doc             testDoc
}

func (f *fakeDocService) InsertOne(_ context.Context, data testDoc) (testDoc, error)    { return data, nil }
func (f *fakeDocService) InsertMany(_ context.Context, data []testDoc) ([]testDoc, error) {
	return data, nil
}
func (f *fakeDocService) FindOne(_ context.Context, _ interface{}, _ *options.FindOneOptions) (testDoc, error) {
	return f.doc, nil
}
func (f *fakeDocService) Find(_ context.Context, _ interface{}, _ *options.FindOptions) ([]testDoc, error) {
	return []testDoc{f.doc}, nil
}
func (f *fakeDocService) UpdateOne(_ context.Context, _ interface{}, _ interface{}, _ *options.UpdateOptions) (testDoc, error) {
	return f.doc, nil
}
func (f *fakeDocService) UpdateMany(_ context.Context, _ interface{}, _ interface{}, _ *options.UpdateOptions) (int64, error) {
	return 0, nil
}
func (f *fakeDocService) DeleteOne(_ context.Context, _ interface{}) error           { return nil }
func (f *fakeDocService) DeleteMany(_ context.Context, _ interface{}) (int64, error) { return 0, nil }
func (f *fakeDocService) FindOneAndUpdate(_ context.Context, _ interface{}, _ interface{}, _ *options.FindOneAndUpdateOptions) (testDoc, error) {
	return f.doc, nil
}
func (f *fakeDocService) CountDocuments(_ context.Context, _ interface{}) (int64, error) { return 0, nil }
func (f *fakeDocService) FindOneById(_ context.Context, _ primitive.ObjectID) (testDoc, error) {
	return f.doc, nil
}
func (f *fakeDocService) FindManyByIds(_ context.Context, _ []primitive.ObjectID) ([]testDoc, error) {
	return []testDoc{f.doc}, nil
}
func (f *fakeDocService) FindWithPagination(_ context.Context, _ interface{}, _, _ int64, _ *options.FindOptions) (*basemodels.PaginateResult[testDoc], error) {
	return &basemodels.PaginateResult[testDoc]{}, nil
}
func (f *fakeDocService) FindWithQuery(_ context.Context, _ *basequery.QueryDescriptor) (*basemodels.QueryResult[testDoc], error) {
	return &basemodels.QueryResult[testDoc]{}, nil
}
func (f *fakeDocService) UpdateById(_ context.Context, id primitive.ObjectID, data interface{}) (testDoc, error) {
	f.updateByIdCalls++
	f.lastID = id
	f.lastUpdate = data
	return f.doc, nil
}
func (f *fakeDocService) DeleteById(_ context.Context, _ primitive.ObjectID) error { return nil }
func (f *fakeDocService) Upsert(_ context.Context, _ interface{}, _ interface{}) (testDoc, error) {
	return f.doc, nil
}
func (f *fakeDocService) DocumentExists(_ context.Context, _ interface{}) (bool, error) { return false, nil }

func newUpdateByIdTestApp(fake *fakeDocService) *fiber.App {
	handler := NewBaseHandler[testDoc, testDocInput, testDocInput](fake)
	app := fiber.New()
	app.Patch("/doc/:id", handler.UpdateById)
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) *Response {
	t.Helper()
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("không đọc được body: %v", err)
	}
	resp := &Response{}
	if err := json.Unmarshal(raw, resp); err != nil {
		t.Fatalf("body không phải envelope JSON: %v", err)
	}
	return resp
}

func TestUpdateById_DocumentUpdateDuocDungThanhUpdateDoc(t *testing.T) {
	fake := &fakeDocService{doc: testDoc{ID: primitive.NewObjectID(), Name: "sau-update"}}
	app := newUpdateByIdTestApp(fake)

	id := primitive.NewObjectID()
	body := `{"documentUpdate": {"updateKind": "field", "updateOperator": "$set", "fields": {"name": "sau-update"}}}`
	req := httptest.NewRequest("PATCH", "/doc/"+id.Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}
	if httpResp.StatusCode != fiber.StatusOK {
		t.Fatalf("transport status = %d, muốn %d", httpResp.StatusCode, fiber.StatusOK)
	}

	envelope := decodeEnvelope(t, httpResp.Body)
	if envelope.Kind != KindSuccess {
		t.Errorf("kind = %q, muốn %q (message: %q)", envelope.Kind, KindSuccess, envelope.Message)
	}

	if fake.updateByIdCalls != 1 {
		t.Fatalf("UpdateById của service được gọi %d lần, muốn 1", fake.updateByIdCalls)
	}
	if fake.lastID != id {
		t.Errorf("service nhận id %s, muốn %s", fake.lastID.Hex(), id.Hex())
	}

	update, ok := fake.lastUpdate.(bson.M)
	if !ok {
		t.Fatalf("update doc phải là bson.M, nhận được %T", fake.lastUpdate)
	}
	fields, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("update doc phải có $set, nhận được %v", update)
	}
	if got, _ := fields["name"].(string); got != "sau-update" {
		t.Errorf("$set.name = %v, muốn sau-update", fields["name"])
	}
}

func TestUpdateById_ToanTuSaiNhomTraLoiKhongGoiService(t *testing.T) {
	fake := &fakeDocService{}
	app := newUpdateByIdTestApp(fake)

	// $push thuộc nhóm array, khai báo field là sai nhóm
	body := `{"documentUpdate": {"updateKind": "field", "updateOperator": "$push", "fields": {"tags": "x"}}}`
	req := httptest.NewRequest("PATCH", "/doc/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test lỗi: %v", err)
	}

	envelope := decodeEnvelope(t, httpResp.Body)
	if envelope.Kind != KindError {
		t.Errorf("kind = %q, muốn %q", envelope.Kind, KindError)
	}
	if envelope.Status != common.StatusBadRequest {
		t.Errorf("status = %d, muốn %d", envelope.Status, common.StatusBadRequest)
	}
	if fake.updateByIdCalls != 0 {
		t.Error("toán tử sai nhóm không được gọi tới service")
	}
}
