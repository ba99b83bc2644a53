package handlers

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		Items: []createOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 2},
		},
		ShippingAddress: createAddressRequest{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "US",
			Label:   models.LabelHome,
		},
		PaymentMethod: "card",
	}
}

func TestBuildOrderFromRequestDefaults(t *testing.T) {
	order, err := buildOrderFromRequest(validOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.StatusPending {
		t.Fatalf("new orders must start pending, got %q", order.Status)
	}
	if order.StatusUpdatedAt.IsZero() {
		t.Fatal("statusUpdatedAt should be set on creation")
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("items not carried over: %+v", order.Items)
	}
}

func TestBuildOrderFromRequestRejectsEmptyItems(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil

	_, err := buildOrderFromRequest(req)
	var vErr validationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validationError, got %v", err)
	}
}

func TestBuildOrderFromRequestRejectsBadPaymentMethod(t *testing.T) {
	req := validOrderRequest()
	req.PaymentMethod = "crypto"

	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for unsupported payment method")
	}
}

func TestBuildOrderFromRequestRejectsZeroQuantity(t *testing.T) {
	req := validOrderRequest()
	req.Items[0].Quantity = 0

	if _, err := buildOrderFromRequest(req); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestBuildOrderFromRequestValidatesShippingAddress(t *testing.T) {
	req := validOrderRequest()
	req.ShippingAddress.ZipCode = "12A45"

	_, err := buildOrderFromRequest(req)
	var vErr validationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validationError for bad zip, got %v", err)
	}
}

func TestValidOrderStatusCoversAllSixValues(t *testing.T) {
	valid := []string{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusProcessing,
		models.StatusShipped,
		models.StatusDelivered,
		models.StatusCancelled,
	}
	for _, status := range valid {
		if !models.ValidOrderStatus(status) {
			t.Fatalf("expected %q to be a valid status", status)
		}
	}

	for _, status := range []string{"", "refunded", "PENDING"} {
		if models.ValidOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}
