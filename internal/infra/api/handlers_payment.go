package api

import (
	"net/http"
	"time"
)

type orderRequest struct {
	Feature string `json:"feature"`
}

type orderResponse struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.paymentUC.CreateOrder(r.Context(), SessionUserID(r.Context()), req.Feature)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Receipt:   p.Receipt,
	})
}

type verifyRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type verifyResponse struct {
	SubscriptionID string     `json:"subscription_id"`
	FeatureID      string     `json:"feature_id"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := s.paymentUC.Verify(r.Context(), SessionUserID(r.Context()), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		SubscriptionID: sub.ID,
		FeatureID:      sub.FeatureID,
		Status:         string(sub.Status),
		StartDate:      sub.StartDate,
		EndDate:        sub.EndDate,
	})
}

type paymentView struct {
	ID        string    `json:"id"`
	FeatureID string    `json:"feature_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.paymentUC.ListByUser(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		items = append(items, paymentView{
			ID:        p.ID,
			FeatureID: p.FeatureID,
			Amount:    p.Amount,
			Currency:  p.Currency,
			OrderID:   p.OrderID,
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
