package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu và các dịch vụ bên ngoài (scraper, vector search, LLM)
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Chế độ khởi tạo
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật JWT
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting
	// Giới hạn cho khách (anonymous session)
	GuestVideoLimit   int `env:"GUEST_VIDEO_LIMIT" envDefault:"3"`     // Số video tối đa một guest session được lưu
	GuestSessionTTL   int `env:"GUEST_SESSION_TTL_DAYS" envDefault:"30"` // Số ngày không hoạt động trước khi dọn dẹp session
	// External collaborators (REST)
	ScraperBaseURL   string `env:"SCRAPER_BASE_URL,required"`                  // Base URL của dịch vụ trích xuất metadata/transcript
	ScraperAPIKey    string `env:"SCRAPER_API_KEY"`                            // API key cho scraper (optional)
	VectorBaseURL    string `env:"VECTOR_BASE_URL"`                            // Base URL của dịch vụ semantic search (optional, fallback text search)
	VectorAPIKey     string `env:"VECTOR_API_KEY"`                             // API key cho vector search (optional)
	LLMBaseURL       string `env:"LLM_BASE_URL,required"`                      // Base URL của dịch vụ LLM (Q&A, summary)
	LLMAPIKey        string `env:"LLM_API_KEY"`                                // API key cho LLM
	LLMModel         string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`         // Model mặc định cho Q&A
	ClientTimeoutSec int    `env:"CLIENT_TIMEOUT_SECONDS" envDefault:"30"`     // Timeout gọi dịch vụ ngoài (giây)
	// Worker xử lý video
	ProcessingWorkers     int `env:"PROCESSING_WORKERS" envDefault:"2"`        // Số goroutine xử lý video song song
	ProcessingMaxAttempts int `env:"PROCESSING_MAX_ATTEMPTS" envDefault:"3"`   // Số lần retry trích xuất trước khi đánh dấu failed
	// Firebase Configuration (provider login)
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`       // Firebase Project ID
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"` // Đường dẫn đến service account JSON
	// SMTP (gửi export qua email)
	SMTPHost     string `env:"SMTP_HOST"`                                    // SMTP server host
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`                   // SMTP server port
	SMTPUser     string `env:"SMTP_USER"`                                    // SMTP username
	SMTPPassword string `env:"SMTP_PASSWORD"`                                // SMTP password
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"noreply@localhost"`     // Địa chỉ gửi
	// Frontend URL
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"` // URL frontend
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
