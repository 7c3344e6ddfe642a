package capability

import (
	"net/url"
	"strings"
	"testing"
)

func TestBackendPath(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "plain key",
			key:  "abc",
			want: "/r/abc/orchestration",
		},
		{
			name: "key with slash stays one segment",
			key:  "a/b",
			want: "/r/a%2Fb/orchestration",
		},
		{
			name: "key with query characters",
			key:  "a?b=c",
			want: "/r/a%3Fb=c/orchestration",
		},
		{
			name: "key with fragment character",
			key:  "a#b",
			want: "/r/a%23b/orchestration",
		},
		{
			name: "key with percent",
			key:  "100%",
			want: "/r/100%25/orchestration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BackendPath(tt.key, OrchestrationResource)
			if got != tt.want {
				t.Errorf("BackendPath(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestBackendPathRoundTrip(t *testing.T) {
	keys := []string{
		"abc",
		"a/b",
		"a/b/c",
		"../../etc/passwd",
		"key with spaces",
		"100%",
		"a?status=pending#frag",
		"ключ",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			path := BackendPath(key, OrchestrationResource)

			if !strings.HasPrefix(path, "/r/") {
				t.Fatalf("path %q does not start with /r/", path)
			}
			if !strings.HasSuffix(path, "/"+OrchestrationResource) {
				t.Fatalf("path %q does not end with /%s", path, OrchestrationResource)
			}

			segment := strings.TrimSuffix(strings.TrimPrefix(path, "/r/"), "/"+OrchestrationResource)
			if strings.Contains(segment, "/") {
				t.Errorf("encoded key %q introduces an extra path level", segment)
			}

			decoded, err := url.PathUnescape(segment)
			if err != nil {
				t.Fatalf("failed to decode segment %q: %v", segment, err)
			}
			if decoded != key {
				t.Errorf("round trip = %q, want %q", decoded, key)
			}
		})
	}
}
