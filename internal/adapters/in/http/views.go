package http

import (
	"time"

	"chipdrop/internal/core/application/usecases/queries"
)

type deliveryView struct {
	ID            string                  `json:"id"`
	AssignedBy    string                  `json:"assignedBy"`
	AssignedTo    string                  `json:"assignedTo"`
	Status        string                  `json:"status"`
	Details       string                  `json:"details"`
	RecipientNote string                  `json:"recipientNote,omitempty"`
	CompanyNote   string                  `json:"companyNote,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	Recipients    []deliveryRecipientView `json:"recipients"`
	ProductIDs    []string                `json:"productIds"`
}

type deliveryRecipientView struct {
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	IsAssigned bool      `json:"isAssigned"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type pendingDeliveryView struct {
	ID            string    `json:"id"`
	AssignedBy    string    `json:"assignedBy"`
	Details       string    `json:"details"`
	RecipientNote string    `json:"recipientNote,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type companyDeliveryView struct {
	ID         string    `json:"id"`
	AssignedTo string    `json:"assignedTo"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toDeliveryView(resp queries.GetDeliveryQueryResponse) deliveryView {
	recipients := make([]deliveryRecipientView, 0, len(resp.Recipients))
	for _, r := range resp.Recipients {
		recipients = append(recipients, deliveryRecipientView{
			UserID:     r.UserID.String(),
			Status:     r.Status.String(),
			IsAssigned: r.IsAssigned,
			UpdatedAt:  r.UpdatedAt,
		})
	}

	productIDs := make([]string, 0, len(resp.ProductIDs))
	for _, id := range resp.ProductIDs {
		productIDs = append(productIDs, id.String())
	}

	return deliveryView{
		ID:            resp.ID.String(),
		AssignedBy:    resp.AssignedBy.String(),
		AssignedTo:    resp.AssignedTo.String(),
		Status:        resp.Status.String(),
		Details:       resp.Details,
		RecipientNote: resp.RecipientNote,
		CompanyNote:   resp.CompanyNote,
		CreatedAt:     resp.CreatedAt,
		Recipients:    recipients,
		ProductIDs:    productIDs,
	}
}
