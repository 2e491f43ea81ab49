package converter

import (
	"github.com/google/uuid"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity (with any preloaded
// items, payments and receipt) to InvoiceResponse DTO
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	response := &dto.InvoiceResponse{
		ID:         invoice.ID,
		VisitID:    invoice.VisitID,
		Status:     string(invoice.Status),
		Subtotal:   invoice.Subtotal,
		Discount:   invoice.Discount,
		Tax:        invoice.Tax,
		Total:      invoice.Total,
		PaidTotal:  invoice.PaidTotal,
		BalanceDue: invoice.BalanceDue,
		IssuedAt:   invoice.IssuedAt,
		VoidedAt:   invoice.VoidedAt,
		CreatedAt:  invoice.CreatedAt,
		Items:      InvoiceItemsToResponses(invoice.Items),
		Payments:   PaymentsToResponses(invoice.Payments),
		Receipt:    ReceiptToResponse(invoice.Receipt),
	}

	if invoice.Visit.ID != uuid.Nil {
		response.Visit = VisitToResponse(&invoice.Visit)
	}

	return response
}

// InvoiceItemToResponse converts an InvoiceItem entity to DTO
func InvoiceItemToResponse(item *entity.InvoiceItem) *dto.InvoiceItemResponse {
	if item == nil {
		return nil
	}

	return &dto.InvoiceItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Category:    string(item.Category),
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
		CreatedAt:   item.CreatedAt,
	}
}

// InvoiceItemsToResponses converts a slice of InvoiceItem entities to DTOs
func InvoiceItemsToResponses(items []entity.InvoiceItem) []dto.InvoiceItemResponse {
	responses := make([]dto.InvoiceItemResponse, len(items))
	for i, item := range items {
		responses[i] = *InvoiceItemToResponse(&item)
	}
	return responses
}

// PaymentToResponse converts a PaymentTransaction entity to DTO
func PaymentToResponse(payment *entity.PaymentTransaction) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:        payment.ID,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Reference: payment.Reference,
		CreatedAt: payment.CreatedAt,
	}
}

// PaymentsToResponses converts a slice of PaymentTransaction entities to DTOs
func PaymentsToResponses(payments []entity.PaymentTransaction) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = *PaymentToResponse(&payment)
	}
	return responses
}

// ReceiptToResponse converts a Receipt entity to DTO
func ReceiptToResponse(receipt *entity.Receipt) *dto.ReceiptResponse {
	if receipt == nil {
		return nil
	}

	return &dto.ReceiptResponse{
		ID:            receipt.ID,
		InvoiceID:     receipt.InvoiceID,
		ReceiptNumber: receipt.ReceiptNumber,
		Snapshot:      receipt.Snapshot,
		CreatedAt:     receipt.CreatedAt,
	}
}
