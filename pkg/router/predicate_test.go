package router

import (
	"testing"

	"github.com/vango-dev/liveview/pkg/request"
)

func TestPredicates(t *testing.T) {
	get := request.New(request.MethodGet, "/submit?x=1", nil, nil)
	post := request.New(request.MethodPost, "/submit", nil, []byte("message=hi"))

	tests := []struct {
		name string
		pred Predicate
		req  *request.Request
		want bool
	}{
		{"always", Always(), get, true},
		{"method match", Method(request.MethodGet), get, true},
		{"method miss", Method(request.MethodGet), post, false},
		{"path ignores query", Path("/submit"), get, true},
		{"path miss", Path("/read"), get, false},
		{"method path", MethodPath(request.MethodPost, "/submit"), post, true},
		{"method path wrong method", MethodPath(request.MethodPost, "/submit"), get, false},
		{"all empty", All(), get, true},
		{"any empty", Any(), get, false},
		{"any second", Any(Path("/nope"), Path("/submit")), get, true},
		{"func", Func(func(r *request.Request) bool { return r.Query().Get("x") == "1" }), get, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := tt.pred(tt.req); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllMergesParams(t *testing.T) {
	req := request.New(request.MethodGet, "/users/7/posts/hello", nil, nil)
	pred := All(Method(request.MethodGet), Path("/users/{id:uint}/posts/{slug}"))

	params, ok := pred(req)
	if !ok {
		t.Fatal("predicate rejected request")
	}
	if id, _ := params.Uint("id"); id != 7 {
		t.Errorf("id = %d, want 7", id)
	}
	if slug, _ := params.String("slug"); slug != "hello" {
		t.Errorf("slug = %q, want hello", slug)
	}
}

func TestPathPanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Path did not panic for invalid pattern")
		}
	}()
	Path("no-leading-slash")
}
