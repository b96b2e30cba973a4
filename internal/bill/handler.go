package bill

import (
	"errors"
	"net/http"

	"github.com/deliverybills/uploader/internal/logging"
	"github.com/deliverybills/uploader/internal/response"
)

// Parts beyond this stay on disk while the request is handled.
const multipartMemory = 10 << 20

// Handler holds the HTTP handler for bill uploads.
type Handler struct {
	svc      *Service
	maxBytes int64
	log      logging.Logger
}

// NewHandler creates a new bill Handler. Request bodies above maxBytes are rejected.
func NewHandler(svc *Service, maxBytes int64, log logging.Logger) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes, log: log}
}

// Upload godoc
//
//	@Summary		Upload a delivery bill
//	@Description	Stores the image under {location_id}_{YYYYMMDD_HHMMSS}[_{truck_id}][_{bill_id}].jpg in the uploaded-bills container. An existing object with the same name is overwritten.
//	@Tags			bills
//	@Accept			multipart/form-data
//	@Produce		plain
//	@Param			location_id	formData	string	true	"Location id"
//	@Param			truck_id	formData	string	false	"Truck id"
//	@Param			bill_id		formData	string	false	"Bill id"
//	@Param			file		formData	file	true	"Bill image"
//	@Success		200	{string}	string	"File uploaded successfully: {key}"
//	@Failure		400	{string}	string
//	@Failure		500	{string}	string
//	@Router			/bills [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.log.Info(ctx, "processing bill upload request")

	u, cleanup, err := h.parse(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer cleanup()

	key, err := h.svc.Store(ctx, u)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.OK(w, "File uploaded successfully: "+key)
}

// parse validates the form in order: multipart body, location_id, file.
// The returned cleanup closes the file and removes temporary parts.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (Upload, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Upload{}, nil, errTooLarge
		}
		return Upload{}, nil, errMalformed
	}
	removeForm := func() { _ = r.MultipartForm.RemoveAll() }

	locationID := r.PostFormValue("location_id")
	if locationID == "" {
		removeForm()
		return Upload{}, nil, errNoLocationID
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		removeForm()
		return Upload{}, nil, errNoFile
	}
	if header.Size <= 0 {
		_ = file.Close()
		removeForm()
		return Upload{}, nil, errNoFile
	}

	u := Upload{
		LocationID:  locationID,
		TruckID:     r.PostFormValue("truck_id"),
		BillID:      r.PostFormValue("bill_id"),
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	h.log.Info(r.Context(), "upload requested", "location_id", locationID)

	return u, func() {
		_ = file.Close()
		removeForm()
	}, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := AsError(err)
	if e.Status() == http.StatusBadRequest {
		h.log.Warn(r.Context(), "rejected bill upload", "kind", e.Kind, "reason", e.Message)
		response.BadRequest(w, e.Message)
		return
	}
	response.InternalError(w, e.Message)
}
