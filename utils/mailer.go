package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"pg-backend/services"
)

// SMTPSender delivers reminder and overdue notices over plain SMTP with a
// multipart text+html body. When SMTP env vars are absent it degrades to a
// mock that logs instead of sending, so development never needs a mailbox.
type SMTPSender struct{}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{}
}

func (s *SMTPSender) Send(recipient string, kind services.TemplateKind, ctx services.MessageContext) bool {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "PG Tracker"
	}

	subject, plainBody, htmlBody := renderTemplate(kind, ctx)

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s kind:%s room:%s month:%s amount:%d",
			recipient, kind, ctx.RoomNumber, ctx.PaymentMonth, ctx.Amount)
		return true
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	boundary := "----=_PAYMENT_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send %s email to %s: %v", kind, recipient, err)
		return false
	}
	return true
}

func renderTemplate(kind services.TemplateKind, ctx services.MessageContext) (subject, plain, html string) {
	if kind == services.TemplateOverdue {
		subject = fmt.Sprintf("OVERDUE PAYMENT NOTICE - Room %s", ctx.RoomNumber)
		plain = fmt.Sprintf(
			"Dear %s,\n\n"+
				"Your rent payment is currently OVERDUE by %d days.\n\n"+
				"PAYMENT DETAILS:\n"+
				"- Room Number: %s\n"+
				"- Payment Month: %s\n"+
				"- Amount Due: ₹%d\n"+
				"- Balance Amount: ₹%d\n"+
				"- Days Overdue: %d\n\n"+
				"Please make your payment immediately to avoid additional late fees.\n\n"+
				"Best regards,\nPG Management Team\n",
			ctx.GuestName, ctx.DaysOverdue, ctx.RoomNumber, ctx.PaymentMonth,
			ctx.Amount, ctx.BalanceAmount, ctx.DaysOverdue,
		)
		html = fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Overdue Payment Notice</title>
<style>
body { background:#f4f4f4; font-family:Arial, Helvetica, sans-serif; color:#333; }
.card { max-width:600px; margin:20px auto; background:#fff; padding:24px; border-radius:8px; }
.header { background:#dc3545; color:#fff; padding:14px; text-align:center; border-radius:6px; }
.row { padding:6px 0; border-bottom:1px solid #dee2e6; }
.amount { color:#dc3545; font-weight:bold; }
</style></head>
<body><div class="card">
<div class="header"><h2>Overdue Payment Notice</h2></div>
<p>Dear %s,</p>
<p>Your rent payment is currently <strong>overdue by %d days</strong>.</p>
<div class="row">Room Number: <strong>%s</strong></div>
<div class="row">Payment Month: <strong>%s</strong></div>
<div class="row">Amount Due: <span class="amount">₹%d</span></div>
<div class="row">Balance Amount: <span class="amount">₹%d</span></div>
<p>Please make your payment immediately to avoid additional late fees.</p>
<p>Best regards,<br><strong>PG Management Team</strong></p>
</div></body></html>`,
			ctx.GuestName, ctx.DaysOverdue, ctx.RoomNumber, ctx.PaymentMonth,
			ctx.Amount, ctx.BalanceAmount,
		)
		return subject, plain, html
	}

	subject = fmt.Sprintf("Payment Reminder - Room %s", ctx.RoomNumber)
	plain = fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a friendly reminder about your rent payment.\n\n"+
			"PAYMENT DETAILS:\n"+
			"- Room Number: %s\n"+
			"- Payment Month: %s\n"+
			"- Amount Due: ₹%d\n"+
			"- Balance Amount: ₹%d\n\n"+
			"Please ensure your payment is completed before the 5th of the month.\n\n"+
			"Best regards,\nPG Management Team\n",
		ctx.GuestName, ctx.RoomNumber, ctx.PaymentMonth, ctx.Amount, ctx.BalanceAmount,
	)
	html = fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Payment Reminder</title>
<style>
body { background:#f4f4f4; font-family:Arial, Helvetica, sans-serif; color:#333; }
.card { max-width:600px; margin:20px auto; background:#fff; padding:24px; border-radius:8px; }
.header { background:#667eea; color:#fff; padding:14px; text-align:center; border-radius:6px; }
.row { padding:6px 0; border-bottom:1px solid #dee2e6; }
.amount { color:#28a745; font-weight:bold; }
</style></head>
<body><div class="card">
<div class="header"><h2>Payment Reminder</h2></div>
<p>Dear %s,</p>
<p>This is a friendly reminder about your rent payment.</p>
<div class="row">Room Number: <strong>%s</strong></div>
<div class="row">Payment Month: <strong>%s</strong></div>
<div class="row">Amount Due: <span class="amount">₹%d</span></div>
<div class="row">Balance Amount: <span class="amount">₹%d</span></div>
<p>Please ensure your payment is completed before the 5th of the month.</p>
<p>Best regards,<br><strong>PG Management Team</strong></p>
</div></body></html>`,
		ctx.GuestName, ctx.RoomNumber, ctx.PaymentMonth, ctx.Amount, ctx.BalanceAmount,
	)
	return subject, plain, html
}
