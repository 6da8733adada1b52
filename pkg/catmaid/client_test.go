package catmaid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arborlabs/arbor/pkg/cache"
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

const compactDetail = `[
	[
		[1, null, 5, 0, 0, 0, 1200, 5],
		[2, 1, 5, 1000, 0, 0, -1, 5],
		[3, 2, 5, 2000, 0, 0, -1, 5],
		[4, 3, 5, 3000, 1000, 0, -1, 5],
		[5, 3, 5, 3000, -1000, 0, -1, 5]
	],
	[
		[4, 100, 0, 3000, 1000, 0],
		[5, 101, 1, 3000, -1000, 0],
		[5, 102, 2, 3000, -1000, 0]
	],
	{"soma": [1], "not a branch": [4]}
]`

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, Token: "tok", Project: 12}
	return NewClient(cfg, nil, 0, log.New(io.Discard)), srv
}

func TestGetSkeleton(t *testing.T) {
	var gotAuth string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-Authorization")
		if r.URL.Path != "/12/skeletons/16/compact-detail" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, compactDetail)
	}))

	sk, err := c.GetSkeleton(context.Background(), 16)
	if err != nil {
		t.Fatalf("GetSkeleton() error = %v", err)
	}

	if gotAuth != "Token tok" {
		t.Errorf("X-Authorization = %q, want %q", gotAuth, "Token tok")
	}
	if sk.ID != 16 || sk.NodeCount() != 5 {
		t.Errorf("skeleton id %d with %d nodes, want 16 with 5", sk.ID, sk.NodeCount())
	}
	if root, err := sk.Root(); err != nil || root.ID != 1 {
		t.Errorf("Root() = %v, %v; want node 1", root, err)
	}
	// Gap junction connector 102 is dropped, the synaptic two survive.
	if got := len(sk.Connectors()); got != 2 {
		t.Errorf("connectors = %d, want 2", got)
	}
	if n, _ := sk.Node(4); !n.HasSynapse || n.Role != skeleton.RoleEnd {
		t.Errorf("node 4 = %+v, want synapse-bearing end", n)
	}
	if got, err := sk.Resolve(skeleton.ByTag("soma")); err != nil || got != 1 {
		t.Errorf("Resolve(soma) = %d, %v; want 1", got, err)
	}
}

func TestGetSkeleton_Caches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, compactDetail)
	}))
	t.Cleanup(srv.Close)

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(Config{BaseURL: srv.URL, Project: 12}, store, time.Hour, log.New(io.Discard))

	for i := 0; i < 3; i++ {
		if _, err := c.GetSkeleton(context.Background(), 16); err != nil {
			t.Fatalf("GetSkeleton() #%d error = %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestGetSkeleton_NotFound(t *testing.T) {
	c, _ := testClient(t, http.NotFoundHandler())

	_, err := c.GetSkeleton(context.Background(), 999)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("GetSkeleton() error = %v, want NOT_FOUND", err)
	}
}

func TestGetSkeleton_RetriesServerErrors(t *testing.T) {
	calls := 0
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls++; calls < 2 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		io.WriteString(w, compactDetail)
	}))

	if _, err := c.GetSkeleton(context.Background(), 16); err != nil {
		t.Fatalf("GetSkeleton() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestGetConnectorDetails(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/12/connector/skeletons" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `[
			[100, {"presynaptic_to": 16, "presynaptic_to_node": 4,
			       "postsynaptic_to": [77], "postsynaptic_to_node": [888]}]
		]`)
	}))

	details, err := c.GetConnectorDetails(context.Background(), []int64{100})
	if err != nil {
		t.Fatalf("GetConnectorDetails() error = %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d details, want 1", len(details))
	}
	d := details[0]
	if d.ConnectorID != 100 || d.PresynapticTo != 16 || d.PresynapticToNode != 4 {
		t.Errorf("detail = %+v", d)
	}
	if len(d.PostsynapticTo) != 1 || d.PostsynapticTo[0] != 77 {
		t.Errorf("PostsynapticTo = %v, want [77]", d.PostsynapticTo)
	}
}

func TestGetConnectorDetails_Empty(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent for empty id list")
	}))

	details, err := c.GetConnectorDetails(context.Background(), nil)
	if err != nil || details != nil {
		t.Errorf("GetConnectorDetails(nil) = %v, %v; want nil, nil", details, err)
	}
}

func TestGetVolume(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/12/volumes/":
			io.WriteString(w, `{"columns": ["id", "name"], "data": [[3, "LH_L"], [7, "LH_R"]]}`)
		case "/12/volumes/7/":
			io.WriteString(w, `{"id": 7, "name": "LH_R",
				"mesh": "<X3D><Shape><IndexedFaceSet coordIndex='0 1 2'><Coordinate point='0 0 0 1000 0 0 0 1000 0'/></IndexedFaceSet></Shape></X3D>"}`)
		default:
			http.NotFound(w, r)
		}
	}))

	vol, err := c.GetVolume(context.Background(), "LH_R")
	if err != nil {
		t.Fatalf("GetVolume() error = %v", err)
	}
	if vol.ID != 7 || vol.Name != "LH_R" {
		t.Errorf("volume = %+v", vol)
	}
	if len(vol.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(vol.Vertices))
	}
	if v := vol.Vertices[1]; v.X != 1000 || v.Y != 0 || v.Z != 0 {
		t.Errorf("vertex 1 = %v, want (1000, 0, 0)", v)
	}
}

func TestGetVolume_UnknownName(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"columns": ["id", "name"], "data": []}`)
	}))

	_, err := c.GetVolume(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("GetVolume() error = %v, want NOT_FOUND", err)
	}
}
