package handlers

import (
	"errors"
	"testing"

	"storefront/internal/models"
)

func makeAddress(id string, isDefault bool) models.Address {
	return models.Address{
		ID:        id,
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "US",
		Label:     models.LabelHome,
		IsDefault: isDefault,
	}
}

func countDefaults(list []models.Address) int {
	n := 0
	for _, addr := range list {
		if addr.IsDefault {
			n++
		}
	}
	return n
}

func assertInvariant(t *testing.T, list []models.Address) {
	t.Helper()
	defaults := countDefaults(list)
	if len(list) == 0 {
		if defaults != 0 {
			t.Fatalf("empty list reports %d defaults", defaults)
		}
		return
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d in %+v", defaults, list)
	}
}

func TestAppendFirstAddressForcedDefault(t *testing.T) {
	list := appendAddress(nil, makeAddress("a", false), false)
	if len(list) != 1 {
		t.Fatalf("expected 1 address, got %d", len(list))
	}
	if !list[0].IsDefault {
		t.Fatal("first address must be forced default even when not requested")
	}
	assertInvariant(t, list)
}

func TestAppendRequestedDefaultClearsExisting(t *testing.T) {
	list := appendAddress(nil, makeAddress("a", false), true)
	list = appendAddress(list, makeAddress("b", false), true)

	if list[0].IsDefault {
		t.Fatal("previous default was not cleared")
	}
	if !list[1].IsDefault {
		t.Fatal("new address should be default")
	}
	assertInvariant(t, list)
}

func TestAppendNonDefaultKeepsExistingDefault(t *testing.T) {
	list := appendAddress(nil, makeAddress("a", false), false)
	list = appendAddress(list, makeAddress("b", false), false)

	if !list[0].IsDefault || list[1].IsDefault {
		t.Fatalf("expected [default, non-default], got %+v", list)
	}
	assertInvariant(t, list)
}

func TestPatchPromotesNewDefault(t *testing.T) {
	list := []models.Address{makeAddress("a", true), makeAddress("b", false)}

	isDefault := true
	updated, err := applyAddressPatch(list, "b", addressPatch{IsDefault: &isDefault})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated[0].IsDefault {
		t.Fatal("previously-default address kept its flag")
	}
	if !updated[1].IsDefault {
		t.Fatal("target address did not become default")
	}
	assertInvariant(t, updated)
}

func TestPatchWithoutDefaultFieldLeavesFlagsUntouched(t *testing.T) {
	list := []models.Address{makeAddress("a", true), makeAddress("b", false)}

	city := "Chicago"
	updated, err := applyAddressPatch(list, "b", addressPatch{City: &city})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated[0].IsDefault || updated[1].IsDefault {
		t.Fatalf("default flags changed by a non-default patch: %+v", updated)
	}
	if updated[1].City != "Chicago" {
		t.Fatalf("city not updated, got %q", updated[1].City)
	}
}

func TestPatchClearingOnlyDefaultPromotesFirst(t *testing.T) {
	list := []models.Address{makeAddress("a", false), makeAddress("b", true)}

	isDefault := false
	updated, err := applyAddressPatch(list, "b", addressPatch{IsDefault: &isDefault})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant(t, updated)
	if !updated[0].IsDefault {
		t.Fatal("expected first entry promoted when the only default is cleared")
	}
}

func TestPatchUnknownIDFailsNotFoundAndLeavesListUnchanged(t *testing.T) {
	list := []models.Address{makeAddress("a", true), makeAddress("b", false)}

	city := "Chicago"
	_, err := applyAddressPatch(list, "missing", addressPatch{City: &city})
	if !errors.Is(err, errAddressNotFound) {
		t.Fatalf("expected errAddressNotFound, got %v", err)
	}
	if list[0].City != "Springfield" || list[1].City != "Springfield" {
		t.Fatalf("list mutated on failed patch: %+v", list)
	}
	assertInvariant(t, list)
}

func TestRemoveDefaultPromotesFirstRemaining(t *testing.T) {
	list := []models.Address{makeAddress("a", true), makeAddress("b", false)}

	updated, err := removeAddress(list, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated) != 1 || updated[0].ID != "b" {
		t.Fatalf("expected [b], got %+v", updated)
	}
	if !updated[0].IsDefault {
		t.Fatal("remaining address was not promoted to default")
	}
	assertInvariant(t, updated)
}

func TestRemoveNonDefaultKeepsDefault(t *testing.T) {
	list := []models.Address{makeAddress("a", true), makeAddress("b", false)}

	updated, err := removeAddress(list, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated[0].IsDefault {
		t.Fatal("default flag lost when removing a non-default entry")
	}
	assertInvariant(t, updated)
}

func TestRemoveLastAddressLeavesEmptyList(t *testing.T) {
	list := []models.Address{makeAddress("a", true)}

	updated, err := removeAddress(list, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated) != 0 {
		t.Fatalf("expected empty list, got %+v", updated)
	}
}

func TestRemoveUnknownIDFailsNotFound(t *testing.T) {
	list := []models.Address{makeAddress("a", true)}

	_, err := removeAddress(list, "missing")
	if !errors.Is(err, errAddressNotFound) {
		t.Fatalf("expected errAddressNotFound, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list changed on failed remove: %+v", list)
	}
}

func TestOperationSequencesHoldInvariant(t *testing.T) {
	var list []models.Address

	list = appendAddress(list, makeAddress("a", false), false)
	assertInvariant(t, list)
	list = appendAddress(list, makeAddress("b", false), true)
	assertInvariant(t, list)
	list = appendAddress(list, makeAddress("c", false), false)
	assertInvariant(t, list)

	isDefault := true
	list, err := applyAddressPatch(list, "c", addressPatch{IsDefault: &isDefault})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant(t, list)

	list, err = removeAddress(list, "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant(t, list)

	list, err = removeAddress(list, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant(t, list)

	list, err = removeAddress(list, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvariant(t, list)
}

func TestNormalizeDefaultFlagsKeepsOnlyFirst(t *testing.T) {
	list := []models.Address{
		makeAddress("a", false),
		makeAddress("b", true),
		makeAddress("c", true),
	}

	normalized := normalizeDefaultFlags(list)
	if !normalized[1].IsDefault {
		t.Fatal("first flagged entry should keep its default")
	}
	if normalized[2].IsDefault {
		t.Fatal("later duplicate default was not cleared")
	}
	if normalized[0].IsDefault {
		t.Fatal("unflagged entry gained a default")
	}
}

func TestValidateAddressInputRejectsNonNumericZip(t *testing.T) {
	input := addressInput{
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "12A45",
		Country: "US",
		Label:   models.LabelHome,
	}

	err := validateAddressInput(input)
	var vErr validationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validationError, got %v", err)
	}
}

func TestValidateAddressInputRejectsBlankRequiredFields(t *testing.T) {
	input := addressInput{
		Street:  "   ",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "US",
		Label:   models.LabelWork,
	}

	err := validateAddressInput(input)
	var vErr validationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validationError, got %v", err)
	}
	if len(vErr.Details) != 1 {
		t.Fatalf("expected a single field message, got %v", vErr.Details)
	}
}

func TestValidateAddressInputRejectsUnknownLabel(t *testing.T) {
	input := addressInput{
		Street:  "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Country: "US",
		Label:   "vacation",
	}

	if err := validateAddressInput(input); err == nil {
		t.Fatal("expected validation error for label outside the enumeration")
	}
}

func TestValidateAddressPatchChecksOnlyProvidedFields(t *testing.T) {
	zip := "abc"
	if err := validateAddressPatch(addressPatch{ZipCode: &zip}); err == nil {
		t.Fatal("expected validation error for non-numeric zip")
	}

	city := "Chicago"
	if err := validateAddressPatch(addressPatch{City: &city}); err != nil {
		t.Fatalf("unexpected error for valid partial patch: %v", err)
	}

	if err := validateAddressPatch(addressPatch{}); err != nil {
		t.Fatalf("empty patch should pass validation, got %v", err)
	}
}
