package product

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhishek28042001/PureCheck/internal/nutrition"
	"github.com/Abhishek28042001/PureCheck/internal/pipeline"
	"github.com/Abhishek28042001/PureCheck/internal/session"
	"github.com/Abhishek28042001/PureCheck/internal/storage"
)

const extractionReply = `{
	"product_name": "Choco Crunch",
	"brand": "TestBrand",
	"product_type": "Solid",
	"package_size": "500g",
	"serving_size": "30g",
	"nutritional_info_per_100g": {
		"energy_kcal": 450,
		"sugars_g": 25,
		"saturated_fat_g": 8,
		"sodium_mg": 200,
		"protein_g": 6,
		"fiber_g": 2
	}
}`

const ratingReply = `{
	"negative_points": {"energy": 3, "sugars": 7, "saturated_fat": 6, "sodium": 1, "total": 17},
	"positive_points": {"protein": 1, "fiber": 0, "total": 1},
	"inr_score": 48,
	"grade": "C",
	"interpretation": "Moderate nutritional quality.",
	"health_warnings": ["High in sugars"],
	"positive_claims": []
}`

type fakeLLM struct {
	visionReply string
	visionErr   error
	reasonReply string
}

func (f *fakeLLM) Vision(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	return f.visionReply, f.visionErr
}

func (f *fakeLLM) Reason(ctx context.Context, prompt string) (string, error) {
	return f.reasonReply, nil
}

func (f *fakeLLM) Chat(ctx context.Context, system, user string) (string, error) {
	return "", nil
}

func testLogger() *golog.Logger {
	log := golog.New()
	log.SetLevel("disable")
	return log
}

func setupRouter(t *testing.T, client *fakeLLM, sessions session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	saver, err := storage.NewLocalSaver(t.TempDir())
	require.NoError(t, err)

	log := testLogger()
	p := pipeline.New(client, nutrition.FSSAIBaseline(), log)
	service := NewService(p, saver, nil, sessions, log)
	handler := NewHandler(service, log)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sessionID", "test-session")
		c.Next()
	})
	r.POST("/upload", handler.Upload)
	r.POST("/clear-session", handler.ClearSession)
	return r
}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	sessions := session.NewMemoryStore()
	router := setupRouter(t, &fakeLLM{visionReply: extractionReply, reasonReply: ratingReply}, sessions)

	body, contentType := multipartImage(t, "image", "label.png", []byte("fake-png-bytes"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success     bool                    `json:"success"`
		ProductData nutrition.ProductRecord `json:"product_data"`
		Analysis    nutrition.Analysis      `json:"analysis"`
		INRResult   nutrition.Rating        `json:"inr_result"`
		ImagePath   string                  `json:"image_path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "Choco Crunch", resp.ProductData.ProductName)
	assert.Equal(t, "C", resp.INRResult.Grade)
	assert.InDelta(t, 50.0, resp.Analysis[nutrition.NutrientSugarsG].PercentOfINR, 1e-9)
	assert.Contains(t, resp.ImagePath, "label.png")

	// The analysis must now be available as chat context.
	sc, err := sessions.Get(context.Background(), "test-session")
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, "Choco Crunch", sc.Product.ProductName)
}

func TestUpload_MissingFile(t *testing.T) {
	router := setupRouter(t, &fakeLLM{}, session.NewMemoryStore())

	req := httptest.NewRequest("POST", "/upload", &bytes.Buffer{})
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No image file provided")
}

func TestUpload_InvalidExtension(t *testing.T) {
	router := setupRouter(t, &fakeLLM{}, session.NewMemoryStore())

	body, contentType := multipartImage(t, "image", "label.pdf", []byte("%PDF"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid file type")
}

func TestUpload_EmptyFile(t *testing.T) {
	router := setupRouter(t, &fakeLLM{}, session.NewMemoryStore())

	body, contentType := multipartImage(t, "image", "label.png", nil)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file selected")
}

func TestUpload_PipelineFailureReturns500(t *testing.T) {
	sessions := session.NewMemoryStore()
	router := setupRouter(t, &fakeLLM{visionReply: "the label is unreadable"}, sessions)

	body, contentType := multipartImage(t, "image", "label.jpg", []byte("fake-jpg"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nutrition extraction failed", resp["error"])
	assert.Contains(t, resp["details"], "unreadable")

	// A failed analysis must not leave a product in the session.
	sc, err := sessions.Get(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestClearSession_WithoutPriorAnalysis(t *testing.T) {
	router := setupRouter(t, &fakeLLM{}, session.NewMemoryStore())

	req := httptest.NewRequest("POST", "/clear-session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
}

func TestClearSession_DropsStoredProduct(t *testing.T) {
	sessions := session.NewMemoryStore()
	router := setupRouter(t, &fakeLLM{visionReply: extractionReply, reasonReply: ratingReply}, sessions)

	body, contentType := multipartImage(t, "image", "label.png", []byte("fake-png"))
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("POST", "/clear-session", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	sc, err := sessions.Get(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Nil(t, sc)
}
