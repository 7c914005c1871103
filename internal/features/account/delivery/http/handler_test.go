package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository/repotest"
	"tg-checkin-backend/internal/features/account/service"
	"tg-checkin-backend/internal/features/checkin/pending"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

var validBody = map[string]interface{}{
	"tgId":        "42",
	"username":    "bob",
	"nickname":    "Bob B",
	"phoneNumber": "+100",
	"accountBio":  "bio",
	"accountType": "A1",
	"isPremium":   false,
}

func TestAccountHandler_CRUD(t *testing.T) {
	repo := repotest.NewLive()
	r := gin.New()
	NewLiveHandler(service.NewLiveService(repo)).RegisterRoutes(r)

	w := do(r, http.MethodPost, "/account", validBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "创建成功", message(t, w))

	w = do(r, http.MethodPost, "/account", validBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "数据已存在", message(t, w))

	w = do(r, http.MethodPost, "/account", map[string]interface{}{"tgId": "42"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := repo.Rows()[0].ID.Hex()

	w = do(r, http.MethodGet, "/account/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item models.ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "42", item.Data.TgID)

	w = do(r, http.MethodPut, "/account/"+id, validBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "记录已存在", message(t, w))

	w = do(r, http.MethodPut, "/account/bad-id", validBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id.", message(t, w))

	w = do(r, http.MethodDelete, "/account/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/account/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "未记录存在", message(t, w))
}

func TestAccountHandler_List(t *testing.T) {
	repo := repotest.NewHistoric()
	repo.Seed(
		models.Snapshot{TgID: "1", Username: "alice"},
		models.Snapshot{TgID: "2", Username: "bob"},
		models.Snapshot{TgID: "3", Username: "bobby"},
	)
	r := gin.New()
	NewHistoricHandler(service.NewHistoricService(repo)).RegisterRoutes(r)

	w := do(r, http.MethodGet, "/historic-accounts?search=bob&page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page pagination.Page[models.Account]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(1), page.PageCount)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "bobby", page.Data[0].Username)

	w = do(r, http.MethodGet, "/historic-accounts?page=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type contacts map[int64]*pending.Contact

func (c contacts) Contact(_ context.Context, chatID int64) (*pending.Contact, error) {
	return c[chatID], nil
}

func TestMiniAppHandler(t *testing.T) {
	live, historic := repotest.NewLive(), repotest.NewHistoric()
	lookup := contacts{}
	r := gin.New()
	NewMiniAppHandler(service.NewMiniAppService(live, historic, lookup)).RegisterRoutes(r)

	body := map[string]interface{}{"tgId": "42", "username": "bob", "nickname": "Bob", "accountType": "A", "isPremium": false}

	w := do(r, http.MethodPost, "/tg-account", body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Cache expired", message(t, w))

	lookup[42] = &pending.Contact{PhoneNumber: "+1", AccountBio: "bio"}
	w = do(r, http.MethodPost, "/tg-account", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.MiniAppResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "+1", resp.Data.PhoneNumber)

	w = do(r, http.MethodGet, "/tg-account/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.Data.AccountType)

	w = do(r, http.MethodPost, "/tg-account", map[string]interface{}{"tgId": "42"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
