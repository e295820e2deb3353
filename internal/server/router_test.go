package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-storyboard-kit/examples"
	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
	"github.com/shouni/go-storyboard-kit/pkg/parallax"
)

const stubIdea = `{"modelResponseText":"Try a split-screen reveal.","storyboard":{"title":"Split","logline":"Two halves, one story.","shotList":[{"shotNumber":1,"cameraAngle":"Split Screen","description":"Both hosts at once."}]}}`

// stubChat は常に同じ応答を返します。reply が空なら stubIdea を返します。
type stubChat struct {
	reply string
}

func (s *stubChat) SendMessage(context.Context, string) (string, error) {
	if s.reply == "" {
		return stubIdea, nil
	}
	return s.reply, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router    http.Handler
	store     *Store
	relayHits *atomic.Int32
}

func newTestEnv(t *testing.T, chatReply string) testEnv {
	t.Helper()

	var hits atomic.Int32
	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(relaySrv.Close)

	relay, err := contact.NewRelay(relaySrv.URL, relaySrv.Client())
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := gallery.ParseCatalog(examples.ProjectsTOML)
	if err != nil {
		t.Fatal(err)
	}
	store, err := NewStore(time.Minute, func() (*assistant.Session, error) {
		return assistant.NewSession(&stubChat{reply: chatReply})
	})
	if err != nil {
		t.Fatal(err)
	}

	return testEnv{router: NewRouter(catalog, relay, store), store: store, relayHits: &hits}
}

func (e testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("応答のデコードに失敗しました: %v (%s)", err, w.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")
	if w := env.do(t, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodGet, "/api/projects?category=Podcast", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode[struct {
		Projects []struct {
			Title    string `json:"title"`
			Category string `json:"category"`
		} `json:"projects"`
	}](t, w)
	if len(body.Projects) != 2 {
		t.Fatalf("Podcast の作品数 = %d", len(body.Projects))
	}
	for _, p := range body.Projects {
		if p.Category != "Podcast" {
			t.Errorf("別カテゴリの作品が含まれています: %+v", p)
		}
	}

	if w := env.do(t, http.MethodGet, "/api/projects", ""); w.Code != http.StatusOK {
		t.Errorf("カテゴリ省略時の status = %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/projects?category=Weddings", ""); w.Code != http.StatusBadRequest {
		t.Errorf("未知のカテゴリの status = %d", w.Code)
	}
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t, "")
	body := decode[struct {
		Categories []string `json:"categories"`
	}](t, env.do(t, http.MethodGet, "/api/categories", ""))
	if len(body.Categories) != 5 || body.Categories[0] != gallery.All {
		t.Errorf("categories = %v", body.Categories)
	}
}

func TestParallax(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodGet, "/api/parallax?scrollY=300&viewportHeight=1000", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	hs := decode[parallax.HeroStyles](t, w)
	if hs.Progress != 0.5 {
		t.Errorf("progress = %v", hs.Progress)
	}
	if got := hs.Styles[parallax.ContactButton].Transform; got != "translateZ(-200px) rotateY(-50deg)" {
		t.Errorf("contact button transform = %q", got)
	}

	top := decode[parallax.HeroStyles](t, env.do(t, http.MethodGet, "/api/parallax?scrollY=0&viewportHeight=1000", ""))
	for _, el := range parallax.Elements {
		if !top.Styles[el].Cleared() {
			t.Errorf("%s: 最上部で上書きが残っています", el)
		}
	}

	if w := env.do(t, http.MethodGet, "/api/parallax?scrollY=abc&viewportHeight=1000", ""); w.Code != http.StatusBadRequest {
		t.Errorf("不正な scrollY の status = %d", w.Code)
	}
	for _, q := range []string{
		"scrollY=NaN&viewportHeight=800",
		"scrollY=500&viewportHeight=NaN",
		"scrollY=Inf&viewportHeight=800",
		"scrollY=500&viewportHeight=-Inf",
		"scrollY=500",
	} {
		if w := env.do(t, http.MethodGet, "/api/parallax?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, body = %q", q, w.Code, w.Body.String())
		}
	}

	w = env.do(t, http.MethodGet, "/api/parallax?scrollY=0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("viewportHeight 省略の最上部で status = %d", w.Code)
	}
	for el, style := range decode[parallax.HeroStyles](t, w).Styles {
		if !style.Cleared() {
			t.Errorf("%s: 最上部で上書きが残っています", el)
		}
	}

	if w := env.do(t, http.MethodGet, "/api/parallax/setup", ""); w.Code != http.StatusOK {
		t.Errorf("setup の status = %d", w.Code)
	}
}

func createSession(t *testing.T, env testEnv) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("セッション作成の status = %d: %s", w.Code, w.Body.String())
	}
	return decode[VisitView](t, w).SessionID
}

func TestChatFlow(t *testing.T) {
	env := newTestEnv(t, "")
	id := createSession(t, env)

	w := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", `{"prompt":"podcast intro"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decode[struct {
		Failed bool               `json:"failed"`
		Chat   assistant.Snapshot `json:"chat"`
	}](t, w)
	if body.Failed {
		t.Error("成功したターンが失敗扱いです")
	}
	if len(body.Chat.Transcript) != 2 || body.Chat.Storyboard == nil || body.Chat.Storyboard.Storyboard.Title != "Split" {
		t.Errorf("スナップショットが違います: %+v", body.Chat)
	}

	if w := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", `{"prompt":"   "}`); w.Code != http.StatusBadRequest {
		t.Errorf("空のプロンプトの status = %d", w.Code)
	}

	view := decode[VisitView](t, env.do(t, http.MethodGet, "/api/sessions/"+id, ""))
	if len(view.Chat.Transcript) != 2 {
		t.Errorf("空のプロンプトでトランスクリプトが変化しました: %d", len(view.Chat.Transcript))
	}
}

func TestChatFlow_ModelFailure(t *testing.T) {
	env := newTestEnv(t, "definitely not json")
	id := createSession(t, env)

	w := env.do(t, http.MethodPost, "/api/sessions/"+id+"/messages", `{"prompt":"ad"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode[struct {
		Failed bool               `json:"failed"`
		Chat   assistant.Snapshot `json:"chat"`
	}](t, w)
	if !body.Failed {
		t.Error("失敗したターンが成功扱いです")
	}
	if len(body.Chat.Transcript) != 2 || body.Chat.Storyboard != nil || body.Chat.LastError == "" {
		t.Errorf("スナップショットが違います: %+v", body.Chat)
	}
}

func TestSession_NotFound(t *testing.T) {
	env := newTestEnv(t, "")
	if w := env.do(t, http.MethodGet, "/api/sessions/does-not-exist", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/api/sessions", `{"sessionId":"nope"}`); w.Code != http.StatusBadRequest {
		t.Errorf("不正な ID の status = %d", w.Code)
	}
}

func TestSelectCategory(t *testing.T) {
	env := newTestEnv(t, "")
	id := createSession(t, env)

	type resp struct {
		Changed  bool   `json:"changed"`
		Category string `json:"category"`
	}
	first := decode[resp](t, env.do(t, http.MethodPut, "/api/sessions/"+id+"/category", `{"category":"Ads"}`))
	if !first.Changed || first.Category != "Ads" {
		t.Errorf("1回目 = %+v", first)
	}
	second := decode[resp](t, env.do(t, http.MethodPut, "/api/sessions/"+id+"/category", `{"category":"Ads"}`))
	if second.Changed {
		t.Error("同じカテゴリの再選択で changed=true になりました")
	}
	if w := env.do(t, http.MethodPut, "/api/sessions/"+id+"/category", `{"category":"Weddings"}`); w.Code != http.StatusBadRequest {
		t.Errorf("未知のカテゴリの status = %d", w.Code)
	}
}

func TestContact(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodPost, "/api/contact", `{"name":"Ada","email":"","message":"hi"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("未入力の status = %d", w.Code)
	}
	res := decode[contact.Result](t, w)
	if res.State != contact.StateError || res.Message != contact.MsgIncomplete {
		t.Errorf("result = %+v", res)
	}
	if env.relayHits.Load() != 0 {
		t.Error("未入力なのに中継サービスへ送信しました")
	}

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Let's talk."}}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if decode[contact.Result](t, rec).State != contact.StateSuccess {
		t.Error("送信が成功しませんでした")
	}
	if env.relayHits.Load() != 1 {
		t.Errorf("送信回数 = %d", env.relayHits.Load())
	}
}

func TestSessionContact_RecordsState(t *testing.T) {
	env := newTestEnv(t, "")
	id := createSession(t, env)

	w := env.do(t, http.MethodPost, "/api/sessions/"+id+"/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	view := decode[VisitView](t, env.do(t, http.MethodGet, "/api/sessions/"+id, ""))
	if view.Contact.State != contact.StateSuccess {
		t.Errorf("contact state = %+v", view.Contact)
	}
}
