package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
	logsvc "github.com/smartattendance/admin/services/logger"
	inmemdb "github.com/smartattendance/admin/storage/database/inmem"
	testutil "github.com/smartattendance/admin/tests"
)

const testPassword = "Sup3r$ecret"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	srv   *Server
	repo  user.Repository
	users map[string]user.User
}

func testConfig() *core.Config {
	return &core.Config{
		AppName:   "Smart Attendance",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
		},
		Table: core.TableConfig{DefaultPageSize: 2, MaxPageSize: 3},
	}
}

// setup seeds 5 users, created (newest first) teacher, admin, awe, hero, ndog.
func setup(t *testing.T) *testApp {
	conf := testConfig()
	repo := inmemdb.NewUserRepository(inmemdb.Open())
	validate, translator := testutil.NewValidator()

	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf),
		UserSvc:        user.NewService(repo, validate),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	t.Cleanup(func() { _ = srv.Close() })

	now := time.Now()
	users := map[string]user.User{
		"teacher": testutil.CreateUser(t, repo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true, now.Add(3*time.Hour)),
		"admin":   testutil.CreateUser(t, repo, "Admin", "admin", "admin@test.cd", testPassword, []string{user.RoleAdmin}, true, now.Add(2*time.Hour), now.Add(time.Minute)),
		"awe":     testutil.CreateUser(t, repo, "User", "awe", "awe@test.cd", "", nil, true, now.Add(time.Hour), now),
		"hero":    testutil.CreateUser(t, repo, "Hero", "hero", "user3@test.cd", testPassword, []string{user.RoleStudent}, true, now),
		"ndog":    testutil.CreateUser(t, repo, "N Dog", "ndog", "ndog@test.cd", testPassword, []string{user.RoleStudent}, false, now.Add(-time.Hour)),
	}
	return &testApp{srv: srv, repo: repo, users: users}
}

func (app *testApp) token(t *testing.T, username string) string {
	t.Helper()
	token, err := app.srv.auth.generateToken(app.srv.auth.userClaims(app.users[username]))
	if err != nil {
		t.Fatalf("token() failed: %v", err)
	}
	return token
}

func (app *testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.srv.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeTable(t *testing.T, rec *httptest.ResponseRecorder) TableResponse {
	t.Helper()
	var resp TableResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decodeTable() failed: %v; body %s", err, rec.Body.String())
	}
	return resp
}

// usernames are the username cells of the view rows.
func usernames(resp TableResponse) []string {
	names := make([]string, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		for _, cell := range row.Cells {
			if cell.Key == "username" {
				names = append(names, cell.Text)
			}
		}
	}
	return names
}
