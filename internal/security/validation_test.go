package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/image.png", false},
		{"HTTPS://example.com/a.jpg", false},
		{"", true},
		{"http://example.com/image.png", true},
		{"ftp://example.com/image.png", true},
		{"https:///image.png", true},
		{"https://localhost/image.png", true},
		{"https://127.0.0.1/image.png", true},
		{"https://10.1.2.3/image.png", true},
		{"https://172.20.0.1/image.png", true},
		{"https://192.168.1.1/image.png", true},
		{"https://169.254.169.254/latest", true},
		{"https://[::1]/image.png", true},
		{"https://[fd00::1]/image.png", true},
		{"https://8.8.8.8/image.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		data, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello"), 5))
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("ReadAll() = %q, want %q", data, "hello")
		}
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello world"), 5))
		if !errors.Is(err, ErrSizeLimit) {
			t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
		}
	})
}
