package utility

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// tokenClaims chứa data được mã hóa trong JWT token
type tokenClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token cho user.
// Token không tự hết hạn phía JWT - vòng đời do bản ghi user quản lý
// (logout xóa token khỏi document user nên token cũ không còn tra được).
//
// Returns:
//   - map với key "token" chứa chuỗi JWT đã ký
func CreateToken(secret string, userID string, timeHex string, randomNumber string) (map[string]string, error) {
	claims := tokenClaims{
		UserID:       userID,
		Time:         timeHex,
		RandomNumber: randomNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return map[string]string{"token": signed}, nil
}

// ParseToken giải mã JWT token và trả về userID bên trong.
// Chỉ dùng để kiểm tra chữ ký/cấu trúc; quyền truy cập thực tế
// vẫn phải tra token trên bản ghi user.
func ParseToken(secret string, tokenString string) (string, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	return claims.UserID, nil
}
