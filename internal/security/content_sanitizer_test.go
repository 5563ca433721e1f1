package security

import (
	"strings"
	"testing"
)

// scriptタグが除去されることを検証
func TestSanitizeContent_RemovesScript(t *testing.T) {
	s := NewContentSanitizer()

	got := s.SanitizeContent(`<p>hello</p><script>alert("xss")</script>`)
	if strings.Contains(got, "script") {
		t.Errorf("script tag should be removed, got %q", got)
	}
	if !strings.Contains(got, "<p>hello</p>") {
		t.Errorf("allowed tag should be preserved, got %q", got)
	}
}

// on*イベント属性が除去されることを検証
func TestSanitizeContent_RemovesEventAttrs(t *testing.T) {
	s := NewContentSanitizer()

	got := s.SanitizeContent(`<p onclick="alert(1)">text</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("event attribute should be removed, got %q", got)
	}
}

// imgタグのsrcがhttpsのみ許可されることを検証
func TestSanitizeContent_ImgHTTPSOnly(t *testing.T) {
	s := NewContentSanitizer()

	got := s.SanitizeContent(`<img src="https://example.com/a.png" alt="ok">`)
	if !strings.Contains(got, `src="https://example.com/a.png"`) {
		t.Errorf("https image should be preserved, got %q", got)
	}

	got = s.SanitizeContent(`<img src="javascript:alert(1)">`)
	if strings.Contains(got, "javascript") {
		t.Errorf("javascript scheme should be removed, got %q", got)
	}
}

// 空文字列の入力に空文字列を返すことを検証
func TestSanitizeContent_Empty(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.SanitizeContent(""); got != "" {
		t.Errorf("SanitizeContent(\"\") = %q, want \"\"", got)
	}
}

// 同一入力に対して同一出力を返すことを検証（冪等性）
func TestSanitizeContent_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>text <strong>bold</strong></p><iframe src="https://evil.example"></iframe>`
	first := s.SanitizeContent(input)
	second := s.SanitizeContent(first)
	if first != second {
		t.Errorf("sanitize should be idempotent: first %q, second %q", first, second)
	}
}

// SanitizeTextが全てのタグを除去することを検証
func TestSanitizeText_StripsAllTags(t *testing.T) {
	s := NewContentSanitizer()

	got := s.SanitizeText(`I am a <strong>software</strong> engineer<script>x()</script>`)
	if strings.Contains(got, "<") {
		t.Errorf("all tags should be stripped, got %q", got)
	}
	if !strings.Contains(got, "software") {
		t.Errorf("text content should be preserved, got %q", got)
	}
}
