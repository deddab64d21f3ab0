package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"xref-api/internal/label"
	"xref-api/internal/reftype"
	"xref-api/internal/service"
	"xref-api/internal/storage"
)

// newTestServer wires the full stack against a temp sqlite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := storage.NewDocumentRepo(db)
	rules := []reftype.InferenceRule{
		reftype.EquationRule("eqref", reftype.DefaultEquationEnvironments()),
	}
	types, err := reftype.NewRegistry(reftype.DefaultDescriptors(), "ref", rules)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	router := NewRouter(&Deps{
		XrefService:   service.NewXrefService(store, label.NewRegistry(), types),
		DocumentStore: store,
		DB:            db,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func createDocument(t *testing.T, srv *httptest.Server, name, content string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"name": name, "content": content})
	resp, err := http.Post(srv.URL+"/api/v1/documents", "application/json", strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return doc.ID
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode GET %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestRouter_HealthAndTypes(t *testing.T) {
	srv := newTestServer(t)

	if code := getJSON(t, srv, "/health", nil); code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", code)
	}

	var types []reftype.Descriptor
	if code := getJSON(t, srv, "/api/v1/reftypes", &types); code != http.StatusOK {
		t.Fatalf("/reftypes status = %d, want 200", code)
	}
	if len(types) != 9 || types[0].Tag != "ref" {
		t.Errorf("reftypes = %+v, want 9 entries starting with ref", types)
	}
}

func TestRouter_DocumentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	content := "Intro text.\n\\label{fig1}\nSee above.\n"
	id := createDocument(t, srv, "paper.org", content)

	var docs []struct {
		Name string `json:"name"`
	}
	if code := getJSON(t, srv, "/api/v1/documents", &docs); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(docs) != 1 || docs[0].Name != "paper.org" {
		t.Errorf("list = %+v", docs)
	}

	var doc struct {
		Content string `json:"content"`
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id, &doc); code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if doc.Content != content {
		t.Errorf("content round-trip mismatch: %q", doc.Content)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/documents/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id, nil); code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", code)
	}
}

func TestRouter_LabelsAndResolve(t *testing.T) {
	srv := newTestServer(t)
	id := createDocument(t, srv, "paper.org", "Intro.\n\\label{fig1}\n<<sec-intro>>\n")

	var index []struct {
		Name string `json:"name"`
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id+"/labels", &index); code != http.StatusOK {
		t.Fatalf("labels status = %d", code)
	}
	if len(index) != 2 {
		t.Fatalf("labels = %+v, want fig1 and sec-intro", index)
	}

	var pos struct {
		Offset int `json:"offset"`
		Line   int `json:"line"`
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id+"/resolve?label=fig1", &pos); code != http.StatusOK {
		t.Fatalf("resolve status = %d", code)
	}
	if pos.Line != 2 {
		t.Errorf("resolve line = %d, want 2", pos.Line)
	}

	if code := getJSON(t, srv, "/api/v1/documents/"+id+"/resolve?label=ghost", nil); code != http.StatusNotFound {
		t.Errorf("resolve missing label status = %d, want 404", code)
	}
}

func TestRouter_InferAndValidate(t *testing.T) {
	srv := newTestServer(t)
	content := "\\begin{equation}\n\\label{eq:mass}\nE = mc^2\n\\end{equation}\n"
	id := createDocument(t, srv, "physics.org", content)

	var inferred struct {
		Tag         string `json:"tag"`
		Environment string `json:"environment"`
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id+"/infer?label=eq:mass", &inferred); code != http.StatusOK {
		t.Fatalf("infer status = %d", code)
	}
	if inferred.Tag != "eqref" || inferred.Environment != "equation" {
		t.Errorf("infer = %+v, want eqref in equation", inferred)
	}

	body := `{"type":"eqref","labels":["eq:mass","eq:ghost"]}`
	resp, err := http.Post(srv.URL+"/api/v1/documents/"+id+"/validate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("validate status = %d, want 200", resp.StatusCode)
	}
	var report struct {
		Results []struct {
			Name  string `json:"name"`
			Valid bool   `json:"valid"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode validate: %v", err)
	}
	if len(report.Results) != 2 || !report.Results[0].Valid || report.Results[1].Valid {
		t.Errorf("validate results = %+v", report.Results)
	}
}

func TestRouter_Markers(t *testing.T) {
	srv := newTestServer(t)
	content := "\\label{fig1}\nSee ref:fig1 and ref:ghost here.\n"
	id := createDocument(t, srv, "notes.org", content)

	var reports []struct {
		Marker struct {
			Type   string   `json:"type"`
			Labels []string `json:"labels"`
		} `json:"marker"`
		Results []struct {
			Valid bool `json:"valid"`
		} `json:"results"`
	}
	if code := getJSON(t, srv, "/api/v1/documents/"+id+"/markers", &reports); code != http.StatusOK {
		t.Fatalf("markers status = %d", code)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %+v, want two ref markers", reports)
	}
	if !reports[0].Results[0].Valid || reports[1].Results[0].Valid {
		t.Errorf("marker validity = %+v, want [valid, invalid]", reports)
	}
}

func TestRouter_UnknownDocument(t *testing.T) {
	srv := newTestServer(t)

	if code := getJSON(t, srv, "/api/v1/documents/nope/labels", nil); code != http.StatusNotFound {
		t.Errorf("labels on unknown document status = %d, want 404", code)
	}
}
