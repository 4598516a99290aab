package repositories

import (
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/modules/dashboard/models"
	"github.com/lib/pq"
)

// Filter predicates shared by the analytics queries. Keeping them here, not
// inline in SQL, makes the status sets and date columns auditable.
var (
	completedStatus = string(models.BookingStatusCompleted)
	cancelledStatus = string(models.BookingStatusCancelled)
	noShowStatus    = string(models.BookingStatusNoShow)
	paidStatus      = string(models.PaymentStatusPaid)
	clientRole      = string(models.RoleClient)

	finalizedStatuses = statusArray(models.FinalizedStatuses)
)

// Date expressions the windows are applied to.
const (
	bookingDateColumn = "start_time"
	profileDateColumn = "created_at"
	paymentDateExpr   = "COALESCE(paid_at, created_at)"
)

func statusArray(statuses []models.BookingStatus) pq.StringArray {
	arr := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		arr[i] = string(s)
	}
	return arr
}
