package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/havancuong2003/FptTrackingCapstone-sub001/apps/api/echo"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/assistant"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
	emailsvc "github.com/havancuong2003/FptTrackingCapstone-sub001/services/email"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testDeps struct {
	groups   *fakeGroupRepo
	schedule *fakeScheduleRepo
	meetings *fakeMeetingRepo
	backend  *fakeBackend
}

func newTestConfig() *core.Config {
	conf := &core.Config{
		Env:             "TEST",
		AppName:         "FPT Capstone Tracking",
		TestMode:        true,
		SecretKey:       "test-secret",
		WorkDir:         core.Getwd(),
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			JWTExpirationDelta: time.Hour,
		},
		Assistant: core.AssistantConfig{
			PollInterval: time.Millisecond,
			MaxAttempts:  10000,
		},
	}
	core.Conf = conf
	return conf
}

func setup(t *testing.T) (Server, *testDeps) {
	t.Helper()
	conf := newTestConfig()

	deps := &testDeps{
		groups:   &fakeGroupRepo{},
		schedule: &fakeScheduleRepo{},
		meetings: &fakeMeetingRepo{minutes: make(map[string]meeting.Minutes)},
		backend:  &fakeBackend{},
	}

	slots, err := schedule.ParseSlotTable([]string{"08:00-12:00", "13:00-17:00"})
	if err != nil {
		t.Fatalf("ParseSlotTable() error = %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	logger := nopLogger{}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	meeting.InitValidators(validate, translator)

	app := NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         logger,
			Groups:         deps.groups,
			ScheduleSvc:    schedule.NewService(deps.schedule, slots, logger),
			MeetingSvc:     meeting.NewService(deps.meetings, mailSvc, logger),
			Poller:         assistant.NewPoller(deps.backend, conf, logger),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
	return app, deps
}

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

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, username string, roles ...string) string {
	t.Helper()
	claims := NewClaims("usr-"+username, username, username+"@test.test", roles)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
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
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
