package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Tất cả giá trị được đọc từ environment variables (file env theo GO_ENV hoặc env của process).
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký access token
	AccessTokenTTLSeconds int    `env:"ACCESS_TOKEN_TTL_SECONDS" envDefault:"5"`   // Thời gian sống access token (ngắn có chủ đích - ép rotate mỗi request)
	SessionTTLHours       int    `env:"SESSION_TTL_HOURS" envDefault:"12"`         // Thời gian sống tuyệt đối của session (TTL index trong MongoDB)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	UploadDir             string `env:"UPLOAD_DIR" envDefault:"uploads"`           // Thư mục lưu file upload
	UploadMaxBytes        int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`    // Kích thước file upload tối đa (10MB)
	EnumsDataFile         string `env:"ENUMS_DATA_FILE"`                           // Đường dẫn file JSON override các bảng enum (rỗng = dùng bảng nhúng sẵn)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường.
// Tìm thư mục config/env từ thư mục hiện tại đi lên dần các thư mục cha.
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env (nếu có) rồi parse từ environment variables.
// Không tìm thấy file env không phải lỗi chết người: cho phép chạy hoàn toàn bằng env của process
// (ví dụ trong container), miễn là các biến required có mặt.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
