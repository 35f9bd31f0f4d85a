package fileserver

import "testing"

func TestResolvePath_TraversalRejected(t *testing.T) {
	_, herr, ok := resolvePath("/../etc/passwd", "/srv")
	if ok {
		t.Fatal("expected rejection")
	}
	if herr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", herr.StatusCode)
	}
}

func TestResolvePath_EncodedTraversalRejected(t *testing.T) {
	_, herr, ok := resolvePath("/%2e%2e/etc/passwd", "/srv")
	if ok {
		t.Fatal("expected rejection")
	}
	if herr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", herr.StatusCode)
	}
}

func TestResolvePath_NulByteRejected(t *testing.T) {
	_, herr, ok := resolvePath("/a%00b", "/srv")
	if ok {
		t.Fatal("expected rejection")
	}
	if herr.StatusCode != 400 {
		t.Errorf("status = %d, want 400", herr.StatusCode)
	}
}

func TestResolvePath_StaysUnderRoot(t *testing.T) {
	resolved, _, ok := resolvePath("/a/b/c.txt", "/srv")
	if !ok {
		t.Fatal("expected success")
	}
	want := "/srv/a/b/c.txt"
	if resolved.fsPath != want {
		t.Errorf("fsPath = %q, want %q", resolved.fsPath, want)
	}
}

func TestResolvePath_TrailingSlashDetected(t *testing.T) {
	resolved, _, ok := resolvePath("/a/b/", "/srv")
	if !ok {
		t.Fatal("expected success")
	}
	if !resolved.trailingSlash {
		t.Error("expected trailingSlash = true")
	}

	resolved2, _, ok := resolvePath("/a/b", "/srv")
	if !ok {
		t.Fatal("expected success")
	}
	if resolved2.trailingSlash {
		t.Error("expected trailingSlash = false")
	}
}

func TestResolvePath_EmptyIsNotTrailingSlash(t *testing.T) {
	resolved, _, ok := resolvePath("", "/srv")
	if !ok {
		t.Fatal("expected success")
	}
	if resolved.trailingSlash {
		t.Error("expected trailingSlash = false for empty path")
	}
}

func TestCheckDotfiles_LegacyOnlyChecksLeadingSegment(t *testing.T) {
	if _, ok := checkDotfiles(DotfilesLegacy, []string{".git", "config"}); ok {
		t.Error("leading dotfile segment should be rejected under legacy policy")
	}
	if _, ok := checkDotfiles(DotfilesLegacy, []string{"a", ".hidden", "file.txt"}); !ok {
		t.Error("nested dotfile segment should be allowed under legacy policy")
	}
}

func TestCheckDotfiles_DenyChecksAllSegments(t *testing.T) {
	if _, ok := checkDotfiles(DotfilesDeny, []string{"a", ".hidden", "file.txt"}); ok {
		t.Error("nested dotfile segment should be rejected under deny policy")
	}
}

func TestCheckDotfiles_AllowPermitsEverything(t *testing.T) {
	if _, ok := checkDotfiles(DotfilesAllow, []string{".git", ".hidden"}); !ok {
		t.Error("allow policy should permit dotfiles at any depth")
	}
}

func TestCheckDotfiles_IgnoreReturns404(t *testing.T) {
	herr, ok := checkDotfiles(DotfilesIgnore, []string{".hidden"})
	if ok {
		t.Fatal("expected rejection")
	}
	if herr.StatusCode != 404 {
		t.Errorf("status = %d, want 404", herr.StatusCode)
	}
}
