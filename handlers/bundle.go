package handlers

import (
	"medibook/services/booking"
	"medibook/services/dashboard"
	"medibook/services/payment"
	providerSvc "medibook/services/provider"
	"medibook/services/storage"
	subjectSvc "medibook/services/subject"
)

// HandlerBundle groups the endpoint handlers and their service
// dependencies into one struct wired in main.
type HandlerBundle struct {
	Booking   booking.BookingService
	Payment   payment.PaymentService
	Dashboard dashboard.DashboardService
	Subjects  subjectSvc.SubjectService
	Providers providerSvc.ProviderService
	Storage   storage.StorageService
}
