package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"knowledge_miner_tests/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForHealth chờ server sẵn sàng, skip toàn bộ test nếu server chưa chạy
func waitForHealth(baseURL string, attempts int, delay time.Duration, t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < attempts; i++ {
		resp, err := client.Get(baseURL + "/system/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(delay)
	}
	t.Skipf("⚠️ Server chưa chạy tại %s, bỏ qua API test", baseURL)
}

func parseEnvelope(t *testing.T, body []byte) map[string]interface{} {
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result), "Phải parse được JSON response: %s", string(body))
	return result
}

// TestGuestLibraryInvariants kiểm tra các ràng buộc của phiên khách:
// video trùng bị từ chối, hạn mức video của guest, migrate một lần duy nhất.
func TestGuestLibraryInvariants(t *testing.T) {
	baseURL := "http://localhost:8080/api"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	client := utils.NewHTTPClient(baseURL, 10)

	// Tạo anonymous session mới cho cả flow
	var sessionID string
	resp, body, err := client.POST("/auth/session", nil)
	require.NoError(t, err, "❌ Lỗi khi tạo anonymous session")
	require.Equal(t, http.StatusOK, resp.StatusCode, "Tạo session thất bại: %s", string(body))
	result := parseEnvelope(t, body)
	if data, ok := result["data"].(map[string]interface{}); ok {
		sessionID, _ = data["sessionId"].(string)
	}
	require.NotEmpty(t, sessionID, "Response phải chứa sessionId")
	client.SetAnonymousSession(sessionID)
	fmt.Printf("✅ Tạo anonymous session: %s\n", sessionID)

	// submitVideo gửi một URL YouTube, chờ một nhịp cho bộ đếm video cập nhật
	submitVideo := func(youtubeID string) (*http.Response, map[string]interface{}) {
		payload := map[string]interface{}{
			"url": "https://www.youtube.com/watch?v=" + youtubeID,
		}
		resp, body, err := client.POST("/videos", payload)
		require.NoError(t, err, "❌ Lỗi khi submit video")
		time.Sleep(300 * time.Millisecond)
		return resp, parseEnvelope(t, body)
	}

	t.Run("🎬 Video trùng youtubeId bị từ chối", func(t *testing.T) {
		resp, result := submitVideo("TestVid0001")
		require.Equal(t, http.StatusOK, resp.StatusCode, "Submit đầu tiên phải thành công: %v", result)
		assert.Equal(t, "success", result["status"])

		resp, result = submitVideo("TestVid0001")
		assert.Equal(t, http.StatusConflict, resp.StatusCode, "Submit trùng phải trả về 409")
		assert.Equal(t, "DB_002", result["code"], "Mã lỗi duplicate phải là DB_002")
		fmt.Printf("✅ Video trùng bị từ chối đúng mã lỗi\n")
	})

	t.Run("🚧 Guest đạt hạn mức video bị chặn", func(t *testing.T) {
		// GUEST_VIDEO_LIMIT mặc định là 3, session đã có 1 video từ test trước
		for _, id := range []string{"TestVid0002", "TestVid0003"} {
			resp, result := submitVideo(id)
			require.Equal(t, http.StatusOK, resp.StatusCode, "Submit trong hạn mức phải thành công: %v", result)
		}

		resp, result := submitVideo("TestVid0004")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "Submit vượt hạn mức phải trả về 403")
		assert.Equal(t, "BIZ_002", result["code"], "Mã lỗi hạn mức phải là BIZ_002")
		fmt.Printf("✅ Hạn mức guest được áp dụng\n")
	})

	t.Run("🔁 Migrate session một lần duy nhất", func(t *testing.T) {
		// Đăng ký tài khoản mới rồi đăng nhập lấy token
		email := fmt.Sprintf("apitest%d@example.com", time.Now().UnixNano())
		registerPayload := map[string]interface{}{
			"name":     "API Test User",
			"email":    email,
			"password": "MatKhau@123",
			"hwid":     "api-test-device",
		}
		resp, body, err := client.POST("/auth/register", registerPayload)
		require.NoError(t, err, "❌ Lỗi khi đăng ký")
		require.Equal(t, http.StatusOK, resp.StatusCode, "Đăng ký thất bại: %s", string(body))

		resp, body, err = client.POST("/auth/login", map[string]interface{}{
			"email":    email,
			"password": "MatKhau@123",
			"hwid":     "api-test-device",
		})
		require.NoError(t, err, "❌ Lỗi khi đăng nhập")
		require.Equal(t, http.StatusOK, resp.StatusCode, "Đăng nhập thất bại: %s", string(body))

		var token string
		loginResult := parseEnvelope(t, body)
		if data, ok := loginResult["data"].(map[string]interface{}); ok {
			token, _ = data["token"].(string)
		}
		require.NotEmpty(t, token, "Login phải trả về token")
		client.SetToken(token)

		// Migrate lần đầu: thành công, trả về số bản ghi đã chuyển
		resp, body, err = client.POST("/auth/migrate", map[string]interface{}{"sessionId": sessionID})
		require.NoError(t, err, "❌ Lỗi khi migrate")
		migrateResult := parseEnvelope(t, body)
		require.Equal(t, http.StatusOK, resp.StatusCode, "Migrate lần đầu phải thành công: %v", migrateResult)
		assert.Equal(t, "success", migrateResult["status"])
		fmt.Printf("✅ Migrate lần đầu thành công\n")

		// Migrate lần hai: session đã được migrate, phải bị từ chối
		resp, body, err = client.POST("/auth/migrate", map[string]interface{}{"sessionId": sessionID})
		require.NoError(t, err, "❌ Lỗi khi migrate lần hai")
		secondResult := parseEnvelope(t, body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode, "Migrate lần hai phải trả về 409")
		assert.Equal(t, "BIZ_002", secondResult["code"], "Mã lỗi migrate lặp phải là BIZ_002")
		fmt.Printf("✅ Migrate lần hai bị từ chối\n")
	})
}
