package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	appreport "github.com/sysstock/backend/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles reporting and export endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// SalesSummary returns aggregate sales figures for a branch and date range
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter appreport.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// TodaySummary returns the current day's sales figures for a branch
func (h *ReportHandler) TodaySummary(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.TodaySummary(c.Request.Context(), scope, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// SalesByDay returns per-day sales totals over a date range
func (h *ReportHandler) SalesByDay(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter appreport.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.SalesByDay(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// SalesByProduct ranks products by quantity sold over a date range
func (h *ReportHandler) SalesByProduct(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter appreport.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.SalesByProduct(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// LowStock lists products at or below their stock threshold
func (h *ReportHandler) LowStock(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	branchID, ok := h.parseBranchIDQuery(c)
	if !ok {
		return
	}

	items, err := h.reportService.LowStock(c.Request.Context(), scope, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Kardex returns a product's movement history with running balances
func (h *ReportHandler) Kardex(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var filter appreport.KardexReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.reportService.Kardex(c.Request.Context(), scope, productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// ExportSales streams a sales report workbook for a branch and date range
func (h *ReportHandler) ExportSales(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	var filter appreport.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.reportService.ExportSales(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx",
		filter.From.Format("2006-01-02"), filter.To.Format("2006-01-02"))
	h.writeWorkbook(c, file, filename)
}

// ExportKardex streams a kardex workbook for a product
func (h *ReportHandler) ExportKardex(c *gin.Context) {
	scope, ok := h.requireScope(c)
	if !ok {
		return
	}

	productID, ok := h.parseID(c)
	if !ok {
		return
	}

	var filter appreport.KardexReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	file, err := h.reportService.ExportKardex(c.Request.Context(), scope, productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("kardex_%s_%s.xlsx", productID, time.Now().Format("2006-01-02"))
	h.writeWorkbook(c, file, filename)
}

func (h *ReportHandler) writeWorkbook(c *gin.Context, file *excelize.File, filename string) {
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := file.Write(c.Writer); err != nil {
		// Headers are already sent at this point, so just log the failure
		h.logger.Error("Failed to stream workbook", zap.Error(err))
	}
}
