package service

import (
	"sort"

	"github.com/loanforge/deal-service/internal/domain/model"
)

// OfferReconciler normalizes the quote list returned by the conveyor. The
// conveyor is the authority on every numeric field but not on the
// application id it stamps on each quote, nor on the list's ordering.
type OfferReconciler struct{}

// NewOfferReconciler creates a reconciler.
func NewOfferReconciler() *OfferReconciler {
	return &OfferReconciler{}
}

// Reconcile overwrites every quote's application id with the locally known
// one and orders the list from worst terms to best: highest rate first.
// Quotes with equal rates keep the relative order the conveyor presented.
func (r *OfferReconciler) Reconcile(applicationID int64, offers []model.Offer) []model.Offer {
	result := make([]model.Offer, len(offers))
	copy(result, offers)

	for i := range result {
		result[i].ApplicationID = applicationID
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rate.GreaterThan(result[j].Rate)
	})

	return result
}
