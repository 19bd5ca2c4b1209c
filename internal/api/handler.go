package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/internal/service"
)

const dateLayout = "2006-01-02"

type Service interface {
	PrintInvoicesReport(ctx context.Context, ids []uuid.UUID) (entity.GeneratedReport, error)
	PrintInvoicesReportByFilter(ctx context.Context, filter entity.InvoicesFilter) (entity.GeneratedReport, error)
	DownloadAttachment(ctx context.Context, id uuid.UUID) (entity.DownloadedAttachment, error)
}

// @title Invoice Reports API
// @version 1.0
// @description API for printing confirmed invoices grouped by partner.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	s Service
}

func NewHandler(s Service) *Handler {
	return &Handler{
		s,
	}
}

// Health godoc
// @Summary      Estado del servicio
// @Description  Devuelve el estado del servicio
// @Tags         health
// @Success      200 {string} string "¡El servicio funciona!"
// @Failure      500 {object} ResponseError "El servicio no funciona"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("¡El servicio funciona!\n"))
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "¡El servicio no funciona!")
	}
}

type PrintInvoicesReportRequest struct {
	InvoiceIDs []uuid.UUID `json:"invoiceIds"`
}

// PrintInvoicesReport godoc
// @Summary      Imprimir reporte de facturas
// @Description  Genera el PDF de las facturas confirmadas agrupadas por partner y devuelve la acción de descarga
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body PrintInvoicesReportRequest true "Facturas seleccionadas"
// @Success      200 {object} entity.URLAction "Acción de descarga"
// @Failure      400 {object} ResponseError "Solicitud incorrecta"
// @Failure      401 {object} ResponseError "No autorizado"
// @Failure      422 {object} ResponseError "No hay facturas confirmadas para imprimir"
// @Failure      500 {object} ResponseError "Error del servidor"
// @Security     BearerAuth
// @Router       /invoices/report [post]
func (h *Handler) PrintInvoicesReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PrintInvoicesReportRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, errRequestBodyText)
		return
	}

	err = service.ValidateInvoiceIDs(req.InvoiceIDs)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, errRequestBodyText)
		return
	}

	report, err := h.s.PrintInvoicesReport(ctx, req.InvoiceIDs)
	if err != nil {
		sendReportErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, report.Action)
}

type PrintInvoicesReportByFilterRequest struct {
	MoveTypes []string  `json:"moveTypes"`
	States    []string  `json:"states"`
	PartnerID uuid.UUID `json:"partnerId"`
	DateFrom  string    `json:"dateFrom" example:"2024-01-01"`
	DateTo    string    `json:"dateTo" example:"2024-01-31"`
	Limit     uint64    `json:"limit"`
}

func (req PrintInvoicesReportByFilterRequest) toFilter() (entity.InvoicesFilter, error) {
	filter := entity.InvoicesFilter{
		PartnerID: req.PartnerID,
		Limit:     req.Limit,
	}

	for _, v := range req.MoveTypes {
		filter.MoveTypes = append(filter.MoveTypes, entity.MoveType(v))
	}

	for _, v := range req.States {
		filter.States = append(filter.States, entity.InvoiceState(v))
	}

	if req.DateFrom != "" {
		from, err := time.Parse(dateLayout, req.DateFrom)
		if err != nil {
			return entity.InvoicesFilter{}, fmt.Errorf("%w: dateFrom: %w", entity.ErrIncorrectRequestBody, err)
		}

		filter.DateFrom = &from
	}

	if req.DateTo != "" {
		to, err := time.Parse(dateLayout, req.DateTo)
		if err != nil {
			return entity.InvoicesFilter{}, fmt.Errorf("%w: dateTo: %w", entity.ErrIncorrectRequestBody, err)
		}

		filter.DateTo = &to
	}

	return filter, nil
}

// PrintInvoicesReportByFilter godoc
// @Summary      Imprimir reporte de facturas por filtro
// @Description  Igual que /invoices/report pero selecciona las facturas por tipo, estado, partner y fechas
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body PrintInvoicesReportByFilterRequest true "Filtro"
// @Success      200 {object} entity.URLAction "Acción de descarga"
// @Failure      400 {object} ResponseError "Solicitud incorrecta"
// @Failure      401 {object} ResponseError "No autorizado"
// @Failure      422 {object} ResponseError "No hay facturas confirmadas para imprimir"
// @Failure      500 {object} ResponseError "Error del servidor"
// @Security     BearerAuth
// @Router       /invoices/report/filter [post]
func (h *Handler) PrintInvoicesReportByFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PrintInvoicesReportByFilterRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, errRequestBodyText)
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, errRequestBodyText)
		return
	}

	err = service.ValidateInvoicesFilter(filter)
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, errRequestBodyText)
		return
	}

	report, err := h.s.PrintInvoicesReportByFilter(ctx, filter)
	if err != nil {
		sendReportErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, report.Action)
}

func sendReportErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrNoConfirmedInvoices):
		SendErr(ctx, w, http.StatusUnprocessableEntity, err, "No hay facturas confirmadas para imprimir.")
	case errors.Is(err, entity.ErrConversionFailed):
		SendErr(ctx, w, http.StatusInternalServerError, err, "Error al convertir el reporte a PDF")
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, "Error al generar el reporte")
	}
}

// DownloadAttachment godoc
// @Summary      Descargar adjunto
// @Description  Devuelve el contenido del adjunto; con download=true se descarga como archivo
// @Tags         attachments
// @Produce      application/pdf
// @Param        id path string true "ID del adjunto"
// @Param        download query bool false "Descargar como archivo"
// @Success      200 {file} binary "Contenido del adjunto"
// @Failure      400 {object} ResponseError "Solicitud incorrecta"
// @Failure      404 {object} ResponseError "El adjunto no existe"
// @Failure      500 {object} ResponseError "Error del servidor"
// @Security     BearerAuth
// @Router       /web/content/{id} [get]
func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendErr(ctx, w, http.StatusBadRequest, err, "Parámetros de la solicitud incorrectos")
		return
	}

	download, _ := strconv.ParseBool(r.URL.Query().Get("download"))

	attachment, err := h.s.DownloadAttachment(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendErr(ctx, w, http.StatusNotFound, err, "El adjunto no existe")
			return
		}

		SendErr(ctx, w, http.StatusInternalServerError, err, "Error al obtener el adjunto")

		return
	}

	disposition := "inline"
	if download {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", attachment.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename*=UTF-8''%s", disposition, url.PathEscape(attachment.Name)))

	http.ServeContent(w, r, attachment.Name, time.Time{}, bytes.NewReader(attachment.Data))
}
