package utility

import (
	"strings"
	"testing"
)

func TestCreateTokenAndParseToken(t *testing.T) {
	secret := "test-secret"
	userID := "656f1b2a9d3e4c0012345678"

	tokenMap, err := CreateToken(secret, userID, "18f3a2b", "42")
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	signed, ok := tokenMap["token"]
	if !ok || signed == "" {
		t.Fatal("CreateToken phải trả về map có key 'token' khác rỗng")
	}
	if strings.Count(signed, ".") != 2 {
		t.Errorf("JWT phải có 3 phần, được: %q", signed)
	}

	parsedUserID, err := ParseToken(secret, signed)
	if err != nil {
		t.Fatalf("ParseToken lỗi: %v", err)
	}
	if parsedUserID != userID {
		t.Errorf("ParseToken trả về userID %q, muốn %q", parsedUserID, userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenMap, err := CreateToken("secret-a", "user-1", "0", "0")
	if err != nil {
		t.Fatalf("CreateToken lỗi: %v", err)
	}
	if _, err := ParseToken("secret-b", tokenMap["token"]); err == nil {
		t.Error("ParseToken với secret sai phải trả về lỗi")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("secret", "not-a-jwt"); err == nil {
		t.Error("ParseToken với chuỗi rác phải trả về lỗi")
	}
}
