package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"CaloriesAdvisor/internal/advisor"
	"CaloriesAdvisor/internal/imaging"
	"CaloriesAdvisor/internal/llm"
	"CaloriesAdvisor/internal/middleware"
	"CaloriesAdvisor/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	calls  int
	prompt string
	image  models.ImagePayload
	answer string
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, prompt string, image models.ImagePayload) (string, error) {
	f.calls++
	f.prompt = prompt
	f.image = image
	return f.answer, f.err
}

func setupRouter(a llm.Analyzer) *gin.Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := advisor.NewService(imaging.NewAcquirer(1<<20), a, log)

	r := gin.New()
	LoadTemplates(r)
	r.Use(middleware.RequestID())
	Register(r, NewAdvisorHandler(svc, log))
	return r
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)), nil))
	return buf.Bytes()
}

type upload struct {
	filename    string
	contentType string
	data        []byte
}

func scenarioAFields() map[string]string {
	return map[string]string{
		"age":            "25",
		"sex":            "Male",
		"height_cm":      "170",
		"weight_kg":      "70",
		"activity_level": "Sedentary",
		"goal":           "Maintain weight",
	}
}

func multipartRequest(t *testing.T, path string, fields map[string]string, file *upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="meal_image"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex_RendersDefaults(t *testing.T) {
	w := serve(setupRouter(&fakeAnalyzer{}), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Personalized Calories Advisor App")
	assert.Contains(t, body, `name="age" min="1" max="120" value="25"`)
	assert.Contains(t, body, `<option value="Male" selected>Male</option>`)
	assert.Contains(t, body, "Get My Personalized Plan")
	assert.NotContains(t, body, `id="report"`)
	assert.NotContains(t, body, `id="warning"`)
}

func TestAnalyzePage_ScenarioA_UploadedJPEG(t *testing.T) {
	fake := &fakeAnalyzer{answer: "ok"}
	data := jpegBytes(t)

	req := multipartRequest(t, "/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", data})
	w := serve(setupRouter(fake), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.calls)
	assert.Contains(t, fake.prompt, "Age: 25 years")
	assert.Contains(t, fake.prompt, "Sex: Male")
	assert.Equal(t, "image/jpeg", fake.image.MimeType)
	assert.Equal(t, data, fake.image.Data)
	assert.Contains(t, w.Body.String(), `src="data:image/jpeg;base64,`)
	assert.Contains(t, w.Body.String(), "Uploaded Meal Image.")
}

func TestAnalyzePage_ScenarioB_NoImage(t *testing.T) {
	fake := &fakeAnalyzer{answer: "unused"}

	req := multipartRequest(t, "/analyze", scenarioAFields(), nil)
	w := serve(setupRouter(fake), req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, fake.calls)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner warning"`)
	assert.Contains(t, body, "Please upload a food image or take a picture to proceed.")
	assert.NotContains(t, body, `class="banner error"`)
	assert.Contains(t, body, `id="submit"`)
}

func TestAnalyzePage_ScenarioC_ReportShownVerbatim(t *testing.T) {
	fake := &fakeAnalyzer{answer: "Total Estimated Calories: 500"}

	req := multipartRequest(t, "/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", jpegBytes(t)})
	w := serve(setupRouter(fake), req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Your Personalized Health Report")
	assert.Contains(t, body, `<div class="report" id="report">Total Estimated Calories: 500</div>`)
}

func TestAnalyzePage_ModelFailureKeepsFormUsable(t *testing.T) {
	fake := &fakeAnalyzer{err: errors.New("dial tcp: network is unreachable")}
	router := setupRouter(fake)
	fields := scenarioAFields()
	fields["age"] = "41"

	w := serve(router, multipartRequest(t, "/analyze", fields, &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner error"`)
	assert.Contains(t, body, "An error occurred:")
	assert.Contains(t, body, "network is unreachable")
	assert.Contains(t, body, `value="41"`)
	assert.NotContains(t, body, `id="report"`)

	fake.err = nil
	fake.answer = "second try"
	w = serve(router, multipartRequest(t, "/analyze", fields, &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "second try")
	assert.Equal(t, 2, fake.calls)
}

func TestAnalyzePage_CameraCapture(t *testing.T) {
	fake := &fakeAnalyzer{answer: "camera ok"}
	fields := scenarioAFields()
	fields["source"] = "camera"
	fields["captured_image"] = "data:image/jpeg;base64,/9j/4AAQ"

	req := multipartRequest(t, "/analyze", fields, &upload{"ignored.png", "image/png", []byte("ignored")})
	w := serve(setupRouter(fake), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "image/jpeg", fake.image.MimeType)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, fake.image.Data)
	assert.Contains(t, w.Body.String(), "Captured Meal Image.")
}

func TestAnalyzePage_BlankCameraCaptureIsNoImage(t *testing.T) {
	fake := &fakeAnalyzer{}
	fields := scenarioAFields()
	fields["source"] = "camera"
	fields["captured_image"] = "data:,"

	w := serve(setupRouter(fake), multipartRequest(t, "/analyze", fields, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner warning"`)
	assert.Contains(t, body, NoImageWarning)
	assert.NotContains(t, body, `class="banner error"`)
	assert.Zero(t, fake.calls)
}

func TestAnalyzePage_UnparsableFieldKeepsSubmittedValues(t *testing.T) {
	fake := &fakeAnalyzer{}
	fields := scenarioAFields()
	fields["age"] = "41"
	fields["weight_kg"] = "abc"

	w := serve(setupRouter(fake), multipartRequest(t, "/analyze", fields, &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="banner warning"`)
	assert.Contains(t, body, `name="age" min="1" max="120" value="41"`)
	assert.NotContains(t, body, `name="age" min="1" max="120" value="25"`)
	assert.Zero(t, fake.calls)
}

func TestAnalyzePage_UploadSourceIgnoresCapture(t *testing.T) {
	fake := &fakeAnalyzer{}
	fields := scenarioAFields()
	fields["source"] = "upload"
	fields["captured_image"] = "data:image/jpeg;base64,/9j/4AAQ"

	w := serve(setupRouter(fake), multipartRequest(t, "/analyze", fields, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), NoImageWarning)
	assert.Zero(t, fake.calls)
}

func TestAnalyzePage_InvalidImageIsError(t *testing.T) {
	fake := &fakeAnalyzer{}

	req := multipartRequest(t, "/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", []byte("definitely not a jpeg")})
	w := serve(setupRouter(fake), req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `class="banner error"`)
	assert.Zero(t, fake.calls)
}

func TestAnalyzePage_OutOfRangeProfile(t *testing.T) {
	fake := &fakeAnalyzer{}
	fields := scenarioAFields()
	fields["weight_kg"] = "900"

	w := serve(setupRouter(fake), multipartRequest(t, "/analyze", fields, &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "WeightKG")
	assert.Zero(t, fake.calls)
}

func TestAnalyzeAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeAnalyzer{answer: "Total Estimated Calories: 500"}
		w := serve(setupRouter(fake), multipartRequest(t, "/api/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

		require.Equal(t, http.StatusOK, w.Code)
		var resp AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Total Estimated Calories: 500", resp.Report)
		assert.Equal(t, "image/jpeg", resp.MimeType)
	})

	t.Run("no image", func(t *testing.T) {
		fake := &fakeAnalyzer{}
		w := serve(setupRouter(fake), multipartRequest(t, "/api/analyze", scenarioAFields(), nil))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp WarningResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, NoImageWarning, resp.Warning)
		assert.Zero(t, fake.calls)
	})

	t.Run("undecodable image", func(t *testing.T) {
		fake := &fakeAnalyzer{}
		w := serve(setupRouter(fake), multipartRequest(t, "/api/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", []byte("plain text, not an image")}))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Error, "An error occurred: "))
		assert.Contains(t, resp.Error, imaging.ErrImageDecode.Error())
		assert.Zero(t, fake.calls)
	})

	t.Run("model failure", func(t *testing.T) {
		fake := &fakeAnalyzer{err: llm.ErrRequestFailed}
		w := serve(setupRouter(fake), multipartRequest(t, "/api/analyze", scenarioAFields(), &upload{"meal.jpg", "image/jpeg", jpegBytes(t)}))

		require.Equal(t, http.StatusBadGateway, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Error, "An error occurred: "))
	})
}

func TestHealth(t *testing.T) {
	w := serve(setupRouter(&fakeAnalyzer{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
