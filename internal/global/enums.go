package global

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// EnumTables chứa các bảng giá trị enum của hệ thống,
// nạp từ file JSON để vận hành có thể chỉnh mà không cần build lại.
type EnumTables struct {
	JobPositions   []string `json:"jobPositions"`   // Các chức danh công việc
	StoreLocations []string `json:"storeLocations"` // Các địa điểm cửa hàng
	Departments    []string `json:"departments"`    // Các phòng ban
}

// defaultEnumTables là bảng nhúng sẵn trong binary, dùng khi không cấu hình
// ENUMS_DATA_FILE. File JSON (config/data/enums.json) chỉ để vận hành
// override mà không cần build lại.
var defaultEnumTables = EnumTables{
	JobPositions: []string{
		"Chief Executive Officer",
		"Chief Operations Officer",
		"Chief Financial Officer",
		"Chief Technology Officer",
		"Regional Manager",
		"Store Manager",
		"Shift Supervisor",
		"Office Administrator",
		"Accountant",
		"Human Resources Manager",
		"Sales Representative",
		"Customer Service Representative",
		"Repair Technician",
		"Field Service Technician",
		"Logistics Coordinator",
		"Inventory Clerk",
		"Warehouse Associate",
		"Maintenance Worker",
	},
	StoreLocations: []string{
		"All Locations",
		"Edmonton",
		"Calgary",
		"Vancouver",
	},
	Departments: []string{
		"Executive Management",
		"Store Administration",
		"Office Administration",
		"Accounting",
		"Human Resources",
		"Sales",
		"Marketing",
		"Information Technology",
		"Repair Technicians",
		"Field Service Technicians",
		"Logistics and Inventory",
		"Customer Service",
		"Maintenance",
	},
}

var (
	enumTables = defaultEnumTables
	enumSets   = buildEnumSets(defaultEnumTables)
	enumsMu    sync.RWMutex
)

// LoadEnums nạp các bảng enum từ file JSON. Path rỗng giữ nguyên bảng
// nhúng sẵn. Path có cấu hình mà file hỏng/thiếu bảng thì trả lỗi —
// caller phải fail khởi động thay vì chạy với bảng nửa vời.
// Phải được gọi khi khởi động server, trước khi nhận request.
func LoadEnums(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enums file %s: %w", path, err)
	}

	var tables EnumTables
	if err := json.Unmarshal(data, &tables); err != nil {
		return fmt.Errorf("failed to parse enums file %s: %w", path, err)
	}

	if len(tables.JobPositions) == 0 || len(tables.StoreLocations) == 0 || len(tables.Departments) == 0 {
		return fmt.Errorf("enums file %s is missing required tables", path)
	}

	enumsMu.Lock()
	defer enumsMu.Unlock()

	enumTables = tables
	enumSets = buildEnumSets(tables)

	return nil
}

func buildEnumSets(tables EnumTables) map[string]map[string]bool {
	return map[string]map[string]bool{
		"jobPositions":   toSet(tables.JobPositions),
		"storeLocations": toSet(tables.StoreLocations),
		"departments":    toSet(tables.Departments),
	}
}

// GetEnumTables trả về bản copy các bảng enum hiện tại
func GetEnumTables() EnumTables {
	enumsMu.RLock()
	defer enumsMu.RUnlock()
	return enumTables
}

// IsEnumValue kiểm tra value có thuộc bảng enum table không
func IsEnumValue(table string, value string) bool {
	enumsMu.RLock()
	defer enumsMu.RUnlock()

	set, ok := enumSets[table]
	if !ok {
		return false
	}
	return set[value]
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
