package dto

import "github.com/BruksfildServices01/salon-booking/internal/models"

// BookingListDTO is the row shape of booking listings.
type BookingListDTO struct {
	ID          uint   `json:"id"`
	MerchantID  uint   `json:"merchant_id"`
	WorkerID    uint   `json:"worker_id,omitempty"`
	SlotID      uint   `json:"slot_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Status      string `json:"status"`
	ServiceName string `json:"service_name"`
	Amount      int64  `json:"amount"`
	Paid        bool   `json:"paid"`
}

func BookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:          b.ID,
			MerchantID:  b.MerchantID,
			WorkerID:    b.WorkerID,
			SlotID:      b.SlotID,
			Date:        b.Date,
			StartTime:   b.StartTime,
			Status:      b.Status,
			ServiceName: b.ServiceName,
			Amount:      b.Amount,
			Paid:        b.PaymentID != "",
		})
	}
	return out
}
