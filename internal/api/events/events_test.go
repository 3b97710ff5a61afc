package events

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDocument struct {
	Status             string
	AnonymousSessionID string
	OwnerID            *primitive.ObjectID
	CreatedAt          int64
	Attempts           int
}

type fakeDocumentValueOwner struct {
	OwnerID primitive.ObjectID
}

func TestEmitDataChanged(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_emit_videos" {
			received <- e
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "test_emit_videos",
		Operation:      OpInsert,
		Document:       &fakeDocument{Status: "pending"},
	})

	select {
	case e := <-received:
		if e.Operation != OpInsert {
			t.Errorf("Operation phải là %s, nhận được %s", OpInsert, e.Operation)
		}
		if GetStringField(e.Document, "Status") != "pending" {
			t.Error("Document trong event phải giữ nguyên dữ liệu")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Handler không nhận được event sau 2 giây")
	}
}

func TestEmitDataChangedRecoversPanic(t *testing.T) {
	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_panic_videos" {
			panic("handler lỗi")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "test_panic_videos" {
			received <- struct{}{}
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "test_panic_videos",
		Operation:      OpDelete,
	})

	select {
	case <-received:
		// Handler thứ hai vẫn chạy dù handler đầu panic
	case <-time.After(2 * time.Second):
		t.Fatal("Panic trong một handler không được chặn các handler khác")
	}
}

func TestGetStringField(t *testing.T) {
	doc := &fakeDocument{Status: "completed", AnonymousSessionID: "anon-abc"}

	if got := GetStringField(doc, "Status"); got != "completed" {
		t.Errorf("GetStringField(Status) = %q, muốn completed", got)
	}
	if got := GetStringField(*doc, "AnonymousSessionID"); got != "anon-abc" {
		t.Errorf("GetStringField trên value phải hoạt động như pointer, nhận được %q", got)
	}
	if got := GetStringField(doc, "KhongTonTai"); got != "" {
		t.Errorf("Field không tồn tại phải trả về chuỗi rỗng, nhận được %q", got)
	}
	if got := GetStringField(doc, "CreatedAt"); got != "" {
		t.Error("Field không phải string phải trả về chuỗi rỗng")
	}
	if got := GetStringField(nil, "Status"); got != "" {
		t.Error("Document nil phải trả về chuỗi rỗng")
	}
	var nilDoc *fakeDocument
	if got := GetStringField(nilDoc, "Status"); got != "" {
		t.Error("Pointer nil phải trả về chuỗi rỗng")
	}
}

func TestGetInt64Field(t *testing.T) {
	doc := &fakeDocument{CreatedAt: 1755252600, Attempts: 3}

	if got := GetInt64Field(doc, "CreatedAt"); got != 1755252600 {
		t.Errorf("GetInt64Field(CreatedAt) = %d, muốn 1755252600", got)
	}
	if got := GetInt64Field(doc, "Attempts"); got != 3 {
		t.Errorf("Field kiểu int phải được chuyển sang int64, nhận được %d", got)
	}
	if got := GetInt64Field(doc, "Status"); got != 0 {
		t.Error("Field không phải số phải trả về 0")
	}
	if got := GetInt64Field(nil, "CreatedAt"); got != 0 {
		t.Error("Document nil phải trả về 0")
	}
}

func TestGetOwnerIDFromDocument(t *testing.T) {
	owner := primitive.NewObjectID()

	if got := GetOwnerIDFromDocument(&fakeDocument{OwnerID: &owner}); got != owner {
		t.Errorf("OwnerID kiểu pointer: nhận được %s, muốn %s", got.Hex(), owner.Hex())
	}
	if got := GetOwnerIDFromDocument(&fakeDocumentValueOwner{OwnerID: owner}); got != owner {
		t.Errorf("OwnerID kiểu value: nhận được %s, muốn %s", got.Hex(), owner.Hex())
	}
	if got := GetOwnerIDFromDocument(&fakeDocument{}); !got.IsZero() {
		t.Error("OwnerID nil phải trả về zero ObjectID")
	}
	if got := GetOwnerIDFromDocument(nil); !got.IsZero() {
		t.Error("Document nil phải trả về zero ObjectID")
	}
	if got := GetOwnerIDFromDocument("không phải struct"); !got.IsZero() {
		t.Error("Document không phải struct phải trả về zero ObjectID")
	}
}
