package objectstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeLocal, false},
		{"LOCAL", ModeLocal, false},
		{" gcs ", ModeGCS, false},
		{"s3", ModeS3, false},
		{"ftp", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("ParseMode(%q): expected ConfigError, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseMode(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestValidateRequiresModeSpecificFields(t *testing.T) {
	if err := Validate(Config{Mode: ModeLocal}); err == nil {
		t.Fatalf("local without root should fail")
	}
	if err := Validate(Config{Mode: ModeS3, Bucket: "b"}); err == nil {
		t.Fatalf("s3 without region should fail")
	}
	if err := Validate(Config{Mode: ModeGCS, Bucket: "b"}); err != nil {
		t.Fatalf("gcs with bucket: %v", err)
	}
}

func TestLocalStorePutDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(logger.Nop(), Config{Mode: ModeLocal, Root: root, PublicBaseURL: "/media"})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	key := "recipes/images/abc.png"
	if err := store.Put(ctx, key, bytes.NewReader([]byte("png-bytes"))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(root, "recipes", "images", "abc.png"))
	if err != nil || string(raw) != "png-bytes" {
		t.Fatalf("stored bytes: %q err=%v", raw, err)
	}
	if got := store.URL(key); got != "/media/recipes/images/abc.png" {
		t.Fatalf("URL: %q", got)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete missing should be a no-op: %v", err)
	}
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(logger.Nop(), Config{Mode: ModeLocal, Root: root})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := store.Put(context.Background(), "../../etc/x.png", bytes.NewReader(nil)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "etc", "x.png")); err != nil {
		t.Fatalf("escaping key should be confined to root: %v", err)
	}
}
