package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "My cool movie.mov", want: "My_cool_movie.mov"},
		{in: "../../../etc/passwd", want: "etc_passwd"},
		{in: `C:\Users\me\song.mp3`, want: "C_Users_me_song.mp3"},
		{in: "Con te partirò.wav", want: "Con_te_partiro.wav"},
		{in: "   spaced   out  .mp3", want: "spaced_out_.mp3"},
		{in: "__.hidden", want: "hidden"},
		{in: "ошибка", want: "upload"},
		{in: "", want: "upload"},
		{in: "a$b%c!.mp3", want: "abc.mp3"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := SanitizeFilename(tc.in); got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLocal_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocal(dir)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}

	first, err := store.Save(context.Background(), "../song.mp3", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := store.Save(context.Background(), "../song.mp3", strings.NewReader("defg"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if first.Name == second.Name {
		t.Fatalf("expected unique names, both %q", first.Name)
	}
	if !strings.HasSuffix(first.Name, "_song.mp3") {
		t.Errorf("name %q should keep sanitized filename", first.Name)
	}
	if filepath.Dir(first.Path) != dir {
		t.Errorf("path %q escaped upload dir %q", first.Path, dir)
	}
	if first.Size != 3 || second.Size != 4 {
		t.Errorf("sizes: got %d and %d", first.Size, second.Size)
	}

	data, err := os.ReadFile(second.Path)
	if err != nil {
		t.Fatalf("read stored: %v", err)
	}
	if string(data) != "defg" {
		t.Errorf("content: got %q", data)
	}

	if err := store.Remove(first.Name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(first.Path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err %v", first.Path, err)
	}
	if err := store.Remove(first.Name); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
}

func TestLocal_SaveCanceled(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Save(ctx, "x.wav", strings.NewReader("a")); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}
