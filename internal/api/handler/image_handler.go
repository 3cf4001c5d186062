package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/api/metrics"
	"github.com/niharika-studio/portfolio-api/internal/core/domain"
	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

// ImageHandler handles HTTP requests for the gallery and the upload pipeline.
type ImageHandler struct {
	service ports.ImageService
	log     zerolog.Logger
}

func NewImageHandler(service ports.ImageService, log zerolog.Logger) *ImageHandler {
	return &ImageHandler{service: service, log: log}
}

// List handles GET /api/images.
//
// @Summary      List gallery images
// @Tags         images
// @Produce      json
// @Param        category     query     string  false  "Category filter (use 'all' for no filter)"
// @Param        orientation  query     string  false  "Orientation filter (use 'all' for no filter)"
// @Success      200          {object}  imagesResponse
// @Failure      400          {object}  errorResponse
// @Router       /api/images [get]
func (h *ImageHandler) List(c echo.Context) error {
	images, err := h.service.List(c.Request().Context(), ports.ImageFilter{
		Category:    c.QueryParam("category"),
		Orientation: c.QueryParam("orientation"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, imagesResponse{Success: true, Images: images})
}

// Categories handles GET /api/images/categories.
//
// @Summary      List categories in use
// @Tags         images
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /api/images/categories [get]
func (h *ImageHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

// UploadFile handles POST /api/images/upload-file.
//
// @Summary      Upload a single image file
// @Tags         images
// @Accept       mpfd
// @Produce      json
// @Param        image        formData  file    true   "Image file (max 10 MiB)"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  true   "Category"
// @Param        orientation  formData  string  true   "Orientation"
// @Success      201          {object}  imageResponse
// @Failure      400          {object}  errorResponse
// @Failure      502          {object}  errorResponse
// @Router       /api/images/upload-file [post]
func (h *ImageHandler) UploadFile(c echo.Context) error {
	adminID, err := ctxAdminID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fmt.Errorf("%w: image file is required", domain.ErrValidation)
	}

	upload, closeFn, err := openUpload(fileHeader)
	if err != nil {
		return err
	}
	defer closeFn()

	timer := prometheus.NewTimer(metrics.UploadDuration.WithLabelValues("file"))
	defer timer.ObserveDuration()

	image, err := h.service.UploadFile(c.Request().Context(), upload, metadataFromForm(c))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("file", "error").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("file", "ok").Inc()

	h.log.Info().
		Str("admin_id", adminID).
		Str("image_id", image.ID).
		Str("filename", fileHeader.Filename).
		Msg("image uploaded")

	return c.JSON(http.StatusCreated, imageResponse{
		Success: true,
		Message: "Image uploaded successfully",
		Image:   image,
	})
}

// UploadMultiple handles POST /api/images/upload-multiple. Files transfer
// concurrently; the response attributes every failure to its input position,
// so a partial failure still reports the images that made it.
//
// @Summary      Upload up to 10 image files
// @Tags         images
// @Accept       mpfd
// @Produce      json
// @Param        images       formData  file    true   "Image files"
// @Param        category     formData  string  true   "Category"
// @Param        orientation  formData  string  true   "Orientation"
// @Success      201          {object}  batchUploadResponse
// @Failure      400          {object}  errorResponse
// @Failure      502          {object}  errorResponse
// @Router       /api/images/upload-multiple [post]
func (h *ImageHandler) UploadMultiple(c echo.Context) error {
	adminID, err := ctxAdminID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fmt.Errorf("%w: multipart form is required", domain.ErrValidation)
	}
	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		return fmt.Errorf("%w: at least one image file is required", domain.ErrValidation)
	}

	uploads := make([]ports.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		upload, closeFn, err := openUpload(fh)
		if err != nil {
			return err
		}
		defer closeFn()
		uploads = append(uploads, upload)
	}

	timer := prometheus.NewTimer(metrics.UploadDuration.WithLabelValues("batch"))
	defer timer.ObserveDuration()

	result, err := h.service.UploadMany(c.Request().Context(), uploads, metadataFromForm(c))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("batch", "error").Inc()
		return err
	}

	if len(result.Images) == 0 {
		metrics.UploadsTotal.WithLabelValues("batch", "error").Inc()
		return allFilesFailed(result.Failures, len(fileHeaders))
	}
	metrics.UploadsTotal.WithLabelValues("batch", "ok").Inc()

	h.log.Info().
		Str("admin_id", adminID).
		Int("uploaded", len(result.Images)).
		Int("failed", len(result.Failures)).
		Msg("batch upload finished")

	resp := batchUploadResponse{
		Success:       len(result.Failures) == 0,
		Images:        result.Images,
		TotalUploaded: len(result.Images),
		Failures:      result.Failures,
	}
	if resp.Success {
		resp.Message = fmt.Sprintf("%d images uploaded successfully", len(result.Images))
	} else {
		resp.Message = fmt.Sprintf("%d of %d images uploaded", len(result.Images), len(fileHeaders))
	}
	return c.JSON(http.StatusCreated, resp)
}

// UploadFromURL handles POST /api/images/upload-url.
//
// @Summary      Import an image from a remote URL
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        body  body      uploadURLRequest  true  "Image source and metadata"
// @Success      201   {object}  imageResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/images/upload-url [post]
func (h *ImageHandler) UploadFromURL(c echo.Context) error {
	adminID, err := ctxAdminID(c)
	if err != nil {
		return err
	}

	var req uploadURLRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	timer := prometheus.NewTimer(metrics.UploadDuration.WithLabelValues("url"))
	defer timer.ObserveDuration()

	image, err := h.service.UploadFromURL(c.Request().Context(), req.ImageURL, ports.ImageMetadata{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Orientation: req.Orientation,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("url", "error").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues("url", "ok").Inc()

	h.log.Info().
		Str("admin_id", adminID).
		Str("image_id", image.ID).
		Msg("image imported from url")

	return c.JSON(http.StatusCreated, imageResponse{
		Success: true,
		Message: "Image uploaded successfully",
		Image:   image,
	})
}

// Delete handles DELETE /api/images/:id. The remote object goes first; the
// record is only removed once the media host confirmed.
//
// @Summary      Delete an image
// @Tags         images
// @Produce      json
// @Param        id   path      string  true  "Image id"
// @Success      200  {object}  basicResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/images/{id} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	adminID, err := ctxAdminID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrImageNotFound):
			metrics.ImagesDeletedTotal.WithLabelValues("not_found").Inc()
		default:
			metrics.ImagesDeletedTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.ImagesDeletedTotal.WithLabelValues("ok").Inc()

	h.log.Info().
		Str("admin_id", adminID).
		Str("image_id", id).
		Msg("image deleted")

	return c.JSON(http.StatusOK, basicResponse{Success: true, Message: "Image deleted successfully"})
}

// allFilesFailed classifies a batch where nothing was persisted. A batch
// rejected entirely by validation never reached the media host and must not
// read as a remote failure.
func allFilesFailed(failures []ports.BatchFailure, total int) error {
	for _, f := range failures {
		if !errors.Is(f.Err, domain.ErrValidation) {
			return fmt.Errorf("%w: all %d files failed", domain.ErrMediaUpload, total)
		}
	}
	return fmt.Errorf("%w: all %d files were rejected", domain.ErrValidation, total)
}

// metadataFromForm collects the metadata fields of a multipart upload.
func metadataFromForm(c echo.Context) ports.ImageMetadata {
	return ports.ImageMetadata{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Orientation: c.FormValue("orientation"),
	}
}

// openUpload opens one multipart file and wraps it as a FileUpload. The
// returned close function is safe to defer even when later files fail.
func openUpload(fh *multipart.FileHeader) (ports.FileUpload, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return ports.FileUpload{}, nil, fmt.Errorf("%w: cannot read file %q", domain.ErrValidation, fh.Filename)
	}
	return ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     src,
	}, func() { src.Close() }, nil
}
