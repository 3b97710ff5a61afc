package registry

import (
	"errors"
	"sync"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("counter", 1)
	if err != nil {
		t.Fatalf("Register lỗi: %v", err)
	}
	if !isNew {
		t.Error("Register lần đầu phải trả về isNew=true")
	}

	isNew, err = r.Register("counter", 2)
	if err != nil {
		t.Fatalf("Register lỗi: %v", err)
	}
	if isNew {
		t.Error("Register ghi đè phải trả về isNew=false")
	}

	value, exists := r.Get("counter")
	if !exists {
		t.Fatal("Get key đã đăng ký phải trả về exists=true")
	}
	if value != 2 {
		t.Errorf("Get trả về %d, muốn 2 (giá trị sau khi ghi đè)", value)
	}

	if _, exists := r.Get("missing"); exists {
		t.Error("Get key chưa đăng ký phải trả về exists=false")
	}
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry[string]()
	if _, err := r.Register("", "x"); err == nil {
		t.Error("Register với name rỗng phải trả về lỗi")
	}
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry[string]()

	created := 0
	creator := func() (string, error) {
		created++
		return "value", nil
	}

	v1, err := r.GetOrCreate("k", creator)
	if err != nil {
		t.Fatalf("GetOrCreate lỗi: %v", err)
	}
	v2, err := r.GetOrCreate("k", creator)
	if err != nil {
		t.Fatalf("GetOrCreate lỗi: %v", err)
	}
	if v1 != "value" || v2 != "value" {
		t.Errorf("GetOrCreate trả về %q/%q, muốn \"value\"", v1, v2)
	}
	if created != 1 {
		t.Errorf("creator phải chỉ được gọi 1 lần, được gọi %d lần", created)
	}

	wantErr := errors.New("tạo thất bại")
	if _, err := r.GetOrCreate("bad", func() (string, error) { return "", wantErr }); err == nil {
		t.Error("GetOrCreate phải truyền lỗi của creator ra ngoài")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Register("shared", n)
			r.Get("shared")
		}(i)
	}
	wg.Wait()

	if _, exists := r.Get("shared"); !exists {
		t.Error("key phải tồn tại sau khi đăng ký đồng thời")
	}
}
