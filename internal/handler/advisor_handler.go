/**
* Name: 			advisor_handler.go
* Description: 		Gin HTTP handlers for the calories advisor page
* Workflow: 		form render, submit (profile + image), report / warning / error presentation
 */
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"CaloriesAdvisor/internal/advisor"
	"CaloriesAdvisor/internal/imaging"
	"CaloriesAdvisor/internal/lib/sl"
	"CaloriesAdvisor/internal/middleware"
	"CaloriesAdvisor/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	fieldMealImage = "meal_image"

	sourceUpload = "upload"
	sourceCamera = "camera"
)

// /analyze 요청 폼
type AnalyzeForm struct {
	models.UserProfile
	Source        string `form:"source" example:"upload"`
	CapturedImage string `form:"captured_image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

type AnalyzeResponse struct {
	Report   string `json:"report" example:"1. **Meal Analysis & Calories:** ..."`
	MimeType string `json:"mime_type" example:"image/jpeg"`
}
type WarningResponse struct {
	Warning string `json:"warning" example:"Please upload a food image or take a picture to proceed."`
}
type ErrorResponse struct {
	Error string `json:"error" example:"An error occurred: model request failed"`
}

type AdvisorHandler struct {
	service *advisor.Service
	log     *slog.Logger
}

func NewAdvisorHandler(service *advisor.Service, log *slog.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		service: service,
		log:     log.With(sl.Module("handler")),
	}
}

// Register wires the advisor routes onto r.
func Register(r gin.IRouter, h *AdvisorHandler) {
	r.GET("/", h.Index)
	r.POST("/analyze", h.AnalyzePage)
	r.POST("/api/analyze", h.AnalyzeAPI)
	r.GET("/healthz", Health)
}

// Index godoc
// @Summary      입력 폼 (Form)
// @Description  프로필 입력과 식사 사진 업로드/촬영 화면을 렌더링합니다.
// @Tags         Page
// @Produce      html
// @Success      200 {string} string "HTML page"
// @Router       / [get]
func (h *AdvisorHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(models.DefaultProfile(), sourceUpload))
}

// AnalyzePage godoc
// @Summary      식사 분석 (Form submit)
// @Description  폼 제출을 처리하고 결과, 경고 또는 오류가 포함된 페이지를 다시 렌더링합니다.
// @Tags         Page
// @Accept       multipart/form-data
// @Produce      html
// @Param        age            formData int    true  "Age (1-120)"
// @Param        sex            formData string true  "Male or Female"
// @Param        height_cm      formData int    true  "Height in cm (50-300)"
// @Param        weight_kg      formData int    true  "Weight in kg (10-500)"
// @Param        activity_level formData string true  "Activity level"
// @Param        goal           formData string true  "Health goal"
// @Param        source         formData string false "upload or camera"
// @Param        meal_image     formData file   false "Meal photo (JPEG or PNG)"
// @Param        captured_image formData string false "Camera capture as data URL"
// @Success      200 {string} string "HTML page with report"
// @Failure      422 {string} string "HTML page with warning"
// @Failure      502 {string} string "HTML page with error"
// @Router       /analyze [post]
func (h *AdvisorHandler) AnalyzePage(c *gin.Context) {
	var form AnalyzeForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warn("AnalyzePage(): invalid form", sl.Err(err), requestAttr(c))
		page := newPage(form.UserProfile, form.Source)
		page.Warning = "Please check your details: " + err.Error()
		c.HTML(http.StatusUnprocessableEntity, "index.html", page)
		return
	}

	page := newPage(form.UserProfile, form.Source)
	req, err := h.buildRequest(c, form)
	if err == nil {
		var report advisor.Report
		report, err = h.service.Advise(c.Request.Context(), req)
		page.withImage(report.Image)
		if err == nil {
			page.State = StateResult
			page.Report = report.Text
			c.HTML(http.StatusOK, "index.html", page)
			return
		}
	}

	switch advisor.Classify(err) {
	case advisor.KindUserInput:
		page.Warning = warningText(err)
		c.HTML(http.StatusUnprocessableEntity, "index.html", page)
	default:
		h.log.Error("AnalyzePage(): request failed", sl.Err(err), requestAttr(c))
		page.State = StateError
		page.Error = fmt.Sprintf("An error occurred: %v", err)
		c.HTML(statusFor(err), "index.html", page)
	}
}

// AnalyzeAPI godoc
// @Summary      식사 분석 (JSON)
// @Description  프로필과 식사 사진을 받아 모델의 분석 결과 텍스트를 그대로 반환합니다.
// @Tags         API
// @Accept       multipart/form-data
// @Produce      json
// @Param        age            formData int    true  "Age (1-120)"
// @Param        sex            formData string true  "Male or Female"
// @Param        height_cm      formData int    true  "Height in cm (50-300)"
// @Param        weight_kg      formData int    true  "Weight in kg (10-500)"
// @Param        activity_level formData string true  "Activity level"
// @Param        goal           formData string true  "Health goal"
// @Param        meal_image     formData file   false "Meal photo (JPEG or PNG)"
// @Param        captured_image formData string false "Camera capture as data URL"
// @Success      200 {object} handler.AnalyzeResponse
// @Failure      400 {object} handler.ErrorResponse "이미지 디코딩 실패"
// @Failure      422 {object} handler.WarningResponse "이미지 없음 또는 잘못된 프로필"
// @Failure      502 {object} handler.ErrorResponse "모델 요청 실패"
// @Router       /api/analyze [post]
func (h *AdvisorHandler) AnalyzeAPI(c *gin.Context) {
	var form AnalyzeForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, WarningResponse{Warning: "Please check your details: " + err.Error()})
		return
	}

	req, err := h.buildRequest(c, form)
	var report advisor.Report
	if err == nil {
		report, err = h.service.Advise(c.Request.Context(), req)
	}

	switch advisor.Classify(err) {
	case advisor.KindNone:
		c.JSON(http.StatusOK, AnalyzeResponse{Report: report.Text, MimeType: report.Image.MimeType})
	case advisor.KindUserInput:
		c.JSON(http.StatusUnprocessableEntity, WarningResponse{Warning: warningText(err)})
	default:
		h.log.Error("AnalyzeAPI(): request failed", sl.Err(err), requestAttr(c))
		c.JSON(statusFor(err), ErrorResponse{Error: fmt.Sprintf("An error occurred: %v", err)})
	}
}

// Health godoc
// @Summary      상태 확인
// @Tags         API
// @Produce      json
// @Success      200 {object} object{status=string}
// @Router       /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// buildRequest keeps only the image source the user picked.
func (h *AdvisorHandler) buildRequest(c *gin.Context, form AnalyzeForm) (advisor.Request, error) {
	var uploaded *multipart.FileHeader
	var captured []byte

	if form.Source != sourceCamera {
		fh, err := c.FormFile(fieldMealImage)
		switch {
		case err == nil:
			uploaded = fh
		case !errors.Is(err, http.ErrMissingFile):
			return advisor.Request{}, fmt.Errorf("%w: %v", imaging.ErrImageDecode, err)
		}
	}
	if form.Source != sourceUpload {
		data, err := imaging.DecodeDataURL(form.CapturedImage)
		if err != nil {
			return advisor.Request{}, err
		}
		captured = data
	}

	return advisor.Request{
		Profile: form.UserProfile,
		Image:   imaging.Select(uploaded, captured),
	}, nil
}

func warningText(err error) string {
	if errors.Is(err, imaging.ErrNoImage) {
		return NoImageWarning
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return "Please check your details: " + strings.Join(verr.Fields, ", ")
	}
	return err.Error()
}

func statusFor(err error) int {
	if errors.Is(err, imaging.ErrImageDecode) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func requestAttr(c *gin.Context) slog.Attr {
	return slog.String("request_id", middleware.RequestIDFrom(c))
}
