// Test gắn option passthrough của QueryDescriptor vào FindOptions
package basesvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestApplyExtraFindOptions_GanDungCacOptionHoTro(t *testing.T) {
	opts := options.Find()

	ApplyExtraFindOptions(opts, map[string]string{
		"hint":         "userId_1_year_1",
		"comment":      "bao-cao-thang",
		"maxTimeMS":    "2500",
		"batchSize":    "50",
		"allowDiskUse": "true",
	})

	if opts.Hint != "userId_1_year_1" {
		t.Errorf("Hint = %v, muốn userId_1_year_1", opts.Hint)
	}
	if opts.Comment == nil || *opts.Comment != "bao-cao-thang" {
		t.Errorf("Comment = %v, muốn bao-cao-thang", opts.Comment)
	}
	if opts.MaxTime == nil || *opts.MaxTime != 2500*time.Millisecond {
		t.Errorf("MaxTime = %v, muốn 2.5s", opts.MaxTime)
	}
	if opts.BatchSize == nil || *opts.BatchSize != 50 {
		t.Errorf("BatchSize = %v, muốn 50", opts.BatchSize)
	}
	if opts.AllowDiskUse == nil || !*opts.AllowDiskUse {
		t.Errorf("AllowDiskUse = %v, muốn true", opts.AllowDiskUse)
	}
}

func TestApplyExtraFindOptions_GiaTriHongBiBoQua(t *testing.T) {
	opts := options.Find()

	ApplyExtraFindOptions(opts, map[string]string{
		"maxTimeMS":    "khong-phai-so",
		"batchSize":    "-5",
		"allowDiskUse": "co",
		"hint":         "",
		"tailable":     "true", // không có tương ứng trong driver
	})

	if opts.MaxTime != nil {
		t.Error("maxTimeMS không phải số phải bị bỏ qua")
	}
	if opts.BatchSize != nil {
		t.Error("batchSize âm phải bị bỏ qua")
	}
	if opts.AllowDiskUse != nil {
		t.Error("allowDiskUse không parse được phải bị bỏ qua")
	}
	if opts.Hint != nil {
		t.Error("hint rỗng phải bị bỏ qua")
	}
}

func TestApplyExtraFindOptions_ExtraRongKhongLamGi(t *testing.T) {
	opts := options.Find()
	ApplyExtraFindOptions(opts, nil)

	if opts.Hint != nil || opts.Comment != nil || opts.MaxTime != nil {
		t.Error("extra rỗng không được đụng vào options")
	}
}
