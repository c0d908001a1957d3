package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/bank-transfer/internal/bank"
	"github.com/nathanyu/bank-transfer/internal/middleware"
	"github.com/nathanyu/bank-transfer/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "mysecrettoken"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	service := bank.NewService(store.NewMemoryStore(), nil)
	SetupRoutes(router, NewHandler(service), middleware.NewStaticTokenVerifier(testSecret))
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedUsers(t *testing.T, router *gin.Engine) (aliceID, bobID string) {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/create-users", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]any)
	require.Len(t, users, 2)

	aliceID = users[0].(map[string]any)["_id"].(string)
	bobID = users[1].(map[string]any)["_id"].(string)
	return aliceID, bobID
}

func TestCreateUsers(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/create-users", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["message"])

	users := body["users"].([]any)
	require.Len(t, users, 2)

	alice := users[0].(map[string]any)
	assert.Equal(t, "Alice", alice["name"])
	assert.Equal(t, float64(1000), alice["balance"])
	assert.Equal(t, float64(0), alice["__v"])
	assert.NotEmpty(t, alice["_id"])

	bob := users[1].(map[string]any)
	assert.Equal(t, "Bob", bob["name"])
	assert.Equal(t, float64(500), bob["balance"])
}

func TestTransfer_Success(t *testing.T) {
	router := setupRouter(t)
	aliceID, bobID := seedUsers(t, router)

	w := doRequest(router, http.MethodPost, "/transfer", gin.H{
		"fromUserId": aliceID,
		"toUserId":   bobID,
		"amount":     200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(800), body["senderBalance"])
	assert.Equal(t, float64(700), body["receiverBalance"])
	assert.NotEmpty(t, body["message"])
}

func TestTransfer_ScenarioOverHTTP(t *testing.T) {
	router := setupRouter(t)
	aliceID, bobID := seedUsers(t, router)

	w := doRequest(router, http.MethodPost, "/transfer", gin.H{
		"fromUserId": aliceID,
		"toUserId":   bobID,
		"amount":     200,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 900 exceeds Alice's remaining 800.
	w = doRequest(router, http.MethodPost, "/transfer", gin.H{
		"fromUserId": aliceID,
		"toUserId":   bobID,
		"amount":     900,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/users/"+aliceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(800), decodeBody(t, w)["balance"])

	w = doRequest(router, http.MethodGet, "/users/"+bobID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(700), decodeBody(t, w)["balance"])
}

func TestTransfer_ValidationFailures(t *testing.T) {
	router := setupRouter(t)
	aliceID, bobID := seedUsers(t, router)

	tests := []struct {
		name string
		body gin.H
		code int
	}{
		{"missing fields", gin.H{"fromUserId": aliceID}, http.StatusBadRequest},
		{"zero amount", gin.H{"fromUserId": aliceID, "toUserId": bobID, "amount": 0}, http.StatusBadRequest},
		{"negative amount", gin.H{"fromUserId": aliceID, "toUserId": bobID, "amount": -5}, http.StatusBadRequest},
		{"same account", gin.H{"fromUserId": aliceID, "toUserId": aliceID, "amount": 10}, http.StatusBadRequest},
		{"malformed id", gin.H{"fromUserId": "oops", "toUserId": bobID, "amount": 10}, http.StatusBadRequest},
		{"unknown sender", gin.H{"fromUserId": store.NewID(), "toUserId": bobID, "amount": 10}, http.StatusNotFound},
		{"unknown receiver", gin.H{"fromUserId": aliceID, "toUserId": store.NewID(), "amount": 10}, http.StatusNotFound},
		{"insufficient funds", gin.H{"fromUserId": aliceID, "toUserId": bobID, "amount": 5000}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/transfer", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, decodeBody(t, w)["error"])
		})
	}

	// None of the rejected transfers may have moved money.
	w := doRequest(router, http.MethodGet, "/users/"+aliceID, nil)
	assert.Equal(t, float64(1000), decodeBody(t, w)["balance"])
}

func TestGetUser(t *testing.T) {
	router := setupRouter(t)
	aliceID, _ := seedUsers(t, router)

	w := doRequest(router, http.MethodGet, "/users/"+aliceID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, aliceID, body["_id"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, float64(1000), body["balance"])
	assert.Equal(t, float64(0), body["__v"])
}

func TestGetUser_Errors(t *testing.T) {
	router := setupRouter(t)
	seedUsers(t, router)

	w := doRequest(router, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/users/"+store.NewID(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndDeleteUsers(t *testing.T) {
	router := setupRouter(t)
	seedUsers(t, router)

	w := doRequest(router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["users"].([]any), 2)

	w = doRequest(router, http.MethodDelete, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["message"])

	w = doRequest(router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["users"])
}

func TestIndexAndPublic(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/public", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["message"])
}

func TestProtected(t *testing.T) {
	router := setupRouter(t)

	request := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	missing := request("")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	wrong := request("Bearer wrongtoken")
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	// Missing and wrong must be indistinguishable.
	assert.Equal(t, missing.Body.String(), wrong.Body.String())

	ok := request("Bearer " + testSecret)
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.NotEmpty(t, decodeBody(t, ok)["message"])
}
