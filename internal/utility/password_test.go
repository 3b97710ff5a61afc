package utility

import "testing"

func TestHashPasswordDeterministic(t *testing.T) {
	salt := "a1b2c3"
	h1 := HashPassword("secret", salt)
	h2 := HashPassword("secret", salt)
	if h1 != h2 {
		t.Error("HashPassword cùng input phải cho cùng output")
	}
	if h1 == HashPassword("secret", "khac") {
		t.Error("HashPassword với salt khác phải cho hash khác")
	}
	if h1 == HashPassword("khac", salt) {
		t.Error("HashPassword với password khác phải cho hash khác")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt lỗi: %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("salt hex phải dài 32 ký tự, được %d", len(salt))
	}

	hash := HashPassword("my-password", salt)
	if !VerifyPassword("my-password", salt, hash) {
		t.Error("VerifyPassword phải chấp nhận password đúng")
	}
	if VerifyPassword("wrong-password", salt, hash) {
		t.Error("VerifyPassword phải từ chối password sai")
	}
	if VerifyPassword("my-password", "other-salt", hash) {
		t.Error("VerifyPassword phải từ chối salt sai")
	}
}

func TestGenerateSaltUnique(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt lỗi: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt lỗi: %v", err)
	}
	if s1 == s2 {
		t.Error("hai salt liên tiếp không được trùng nhau")
	}
}
