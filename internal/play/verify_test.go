package play

import (
	"strings"
	"testing"
)

func TestVerifyDetailsPage_OK(t *testing.T) {
	html := readFixture(t, "details.html")
	u, err := VerifyDetailsPage(html, "com.example.app")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if u != "https://play.google.com/store/apps/details?id=com.example.app" {
		t.Fatalf("canonical 不符合预期：%q", u)
	}
}

func TestVerifyDetailsPage_IDMismatch(t *testing.T) {
	html := readFixture(t, "details.html")
	_, err := VerifyDetailsPage(html, "com.other.app")
	if err == nil {
		t.Fatalf("期望错误（id 不匹配），但得到 nil")
	}
	if !strings.Contains(err.Error(), "不匹配") {
		t.Fatalf("错误信息不符合预期：%v", err)
	}
}

func TestVerifyDetailsPage_NoCanonical(t *testing.T) {
	html := []byte(`<html><head><title>blocked</title></head><body>robot check</body></html>`)
	if _, err := VerifyDetailsPage(html, "com.example.app"); err == nil {
		t.Fatalf("期望错误（无 canonical），但得到 nil")
	}
}

func TestVerifyDetailsPage_EmptyInput(t *testing.T) {
	if _, err := VerifyDetailsPage(nil, "com.example.app"); err == nil {
		t.Fatalf("期望错误（html 为空），但得到 nil")
	}
	html := readFixture(t, "details.html")
	if _, err := VerifyDetailsPage(html, ""); err == nil {
		t.Fatalf("期望错误（packageID 为空），但得到 nil")
	}
}
