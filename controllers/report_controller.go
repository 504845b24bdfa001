package controllers

import (
	"net/http"
	"strconv"

	"pg-backend/services"

	"github.com/gin-gonic/gin"
)

// ReportController serves the read-only payment views, exports and the
// notification endpoints. Bulk dispatch is decoupled from the request cycle:
// the handler fires a background run and answers 202 immediately.
type ReportController struct {
	ReportSvc       *services.ReportService
	ExportSvc       *services.ExportService
	NotificationSvc *services.NotificationService
}

func NewReportController(
	report *services.ReportService,
	export *services.ExportService,
	notifications *services.NotificationService,
) *ReportController {
	return &ReportController{
		ReportSvc:       report,
		ExportSvc:       export,
		NotificationSvc: notifications,
	}
}

func detailsFilterFromQuery(c *gin.Context) services.PaymentDetailsFilter {
	return services.PaymentDetailsFilter{
		RoomNumber:  c.Query("room_number"),
		GuestName:   c.Query("guest_name"),
		Month:       c.Query("month"),
		Year:        c.Query("year"),
		PaymentType: c.Query("payment_type"),
	}
}

// GET /api/payments/details
func (rc *ReportController) PaymentDetails(c *gin.Context) {
	details, err := rc.ReportSvc.PaymentDetails(detailsFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// GET /api/payments/overdue?payment_type=rent|security
func (rc *ReportController) OverduePayments(c *gin.Context) {
	overdue, err := rc.ReportSvc.OverduePayments(c.Query("payment_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overdue)
}

// GET /api/payments/analytics?payment_type=rent|security
func (rc *ReportController) PaymentAnalytics(c *gin.Context) {
	analytics, err := rc.ReportSvc.PaymentAnalytics(c.Query("payment_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// GET /api/payments/notifications
func (rc *ReportController) PaymentNotifications(c *gin.Context) {
	notifications, err := rc.NotificationSvc.PaymentNotifications()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GET /api/payments/monthly-pending
func (rc *ReportController) PendingMonthlyGuests(c *gin.Context) {
	pending, err := rc.NotificationSvc.PendingMonthlyGuests()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// GET /api/payments/export/csv
func (rc *ReportController) ExportCSV(c *gin.Context) {
	details, err := rc.ReportSvc.PaymentDetails(detailsFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := rc.ExportSvc.CSV(details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

// GET /api/payments/export/pdf
func (rc *ReportController) ExportPDF(c *gin.Context) {
	details, err := rc.ReportSvc.PaymentDetails(detailsFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := rc.ExportSvc.PDF(details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/payments/export/xlsx
func (rc *ReportController) ExportXLSX(c *gin.Context) {
	details, err := rc.ReportSvc.PaymentDetails(detailsFilterFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := rc.ExportSvc.XLSX(details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments.xlsx")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// POST /api/payments/send-notifications
//
// Fire-and-forget: the outcome is observable only through logs and the
// activity record the run writes.
func (rc *ReportController) SendBulkNotifications(c *gin.Context) {
	go rc.NotificationSvc.SendBulkNotifications()
	c.JSON(http.StatusAccepted, gin.H{
		"status":  "processing",
		"message": "Bulk payment notifications are being sent in the background",
	})
}

// POST /api/payments/send-monthly-reminders?force=bool
func (rc *ReportController) SendMonthlyReminders(c *gin.Context) {
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	if !force && !rc.NotificationSvc.MonthlyRemindersDue() {
		c.JSON(http.StatusOK, gin.H{
			"skipped":      true,
			"message":      "Monthly reminders are only sent on the 5th of the month",
			"sent_count":   0,
			"failed_count": 0,
		})
		return
	}

	// Gate already passed; the background run bypasses it.
	go rc.NotificationSvc.RunMonthlyReminders(true)
	c.JSON(http.StatusAccepted, gin.H{
		"status":  "processing",
		"skipped": false,
		"message": "Monthly rent reminders are being sent in the background",
	})
}
