package handlers

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
)

// errAddressNotFound signals that the target address id is absent from
// the user's list.
var errAddressNotFound = errors.New("address not found")

// validationError carries field-level messages for a rejected input.
// Validation runs before any mutation is attempted.
type validationError struct {
	Details []string
}

func (e validationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// addressInput is the full field set required to create an address.
type addressInput struct {
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Label     string
	Phone     string
	IsDefault bool
}

// addressPatch is a partial update; nil fields are left untouched.
type addressPatch struct {
	Street    *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	Label     *string
	Phone     *string
	IsDefault *bool
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateAddressInput(in addressInput) error {
	var details []string

	required := []struct {
		field string
		value string
	}{
		{"street", in.Street},
		{"city", in.City},
		{"state", in.State},
		{"zipCode", in.ZipCode},
		{"country", in.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, fmt.Sprintf("%s is required", f.field))
		}
	}

	if zip := strings.TrimSpace(in.ZipCode); zip != "" && !isNumeric(zip) {
		details = append(details, "zipCode must be numeric")
	}
	if !models.ValidAddressLabel(strings.TrimSpace(in.Label)) {
		details = append(details, "label must be one of home, work, other")
	}

	if len(details) > 0 {
		return validationError{Details: details}
	}
	return nil
}

func validateAddressPatch(p addressPatch) error {
	var details []string

	check := func(field string, value *string) {
		if value != nil && strings.TrimSpace(*value) == "" {
			details = append(details, fmt.Sprintf("%s must not be blank", field))
		}
	}
	check("street", p.Street)
	check("city", p.City)
	check("state", p.State)
	check("country", p.Country)

	if p.ZipCode != nil {
		zip := strings.TrimSpace(*p.ZipCode)
		if zip == "" {
			details = append(details, "zipCode must not be blank")
		} else if !isNumeric(zip) {
			details = append(details, "zipCode must be numeric")
		}
	}
	if p.Label != nil && !models.ValidAddressLabel(strings.TrimSpace(*p.Label)) {
		details = append(details, "label must be one of home, work, other")
	}

	if len(details) > 0 {
		return validationError{Details: details}
	}
	return nil
}

// appendAddress adds addr to list while keeping the single-default
// invariant. The first address is always forced default, whatever the
// caller requested.
func appendAddress(list []models.Address, addr models.Address, requestedDefault bool) []models.Address {
	if len(list) == 0 {
		addr.IsDefault = true
		return append(list, addr)
	}

	if requestedDefault {
		for i := range list {
			list[i].IsDefault = false
		}
	}
	addr.IsDefault = requestedDefault
	return append(list, addr)
}

// applyAddressPatch merges p into the address with the given id. Setting
// isDefault=true clears the flag on the previously-default sibling, so
// no caller ever observes two defaults.
func applyAddressPatch(list []models.Address, targetID string, p addressPatch) ([]models.Address, error) {
	index := -1
	for i, addr := range list {
		if addr.ID == targetID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, errAddressNotFound
	}

	if p.IsDefault != nil && *p.IsDefault {
		for i := range list {
			list[i].IsDefault = false
		}
	}

	target := &list[index]
	if p.Street != nil {
		target.Street = strings.TrimSpace(*p.Street)
	}
	if p.City != nil {
		target.City = strings.TrimSpace(*p.City)
	}
	if p.State != nil {
		target.State = strings.TrimSpace(*p.State)
	}
	if p.ZipCode != nil {
		target.ZipCode = strings.TrimSpace(*p.ZipCode)
	}
	if p.Country != nil {
		target.Country = strings.TrimSpace(*p.Country)
	}
	if p.Label != nil {
		target.Label = strings.TrimSpace(*p.Label)
	}
	if p.Phone != nil {
		target.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.IsDefault != nil {
		target.IsDefault = *p.IsDefault
	}

	// Clearing the flag on the current default would leave a non-empty
	// list with no default; the first entry takes the flag instead.
	if p.IsDefault != nil && !*p.IsDefault {
		hasDefault := false
		for i := range list {
			if list[i].IsDefault {
				hasDefault = true
				break
			}
		}
		if !hasDefault && len(list) > 0 {
			list[0].IsDefault = true
		}
	}

	return list, nil
}

// removeAddress drops the address with the given id. Removing the
// default while entries remain promotes the first remaining entry.
func removeAddress(list []models.Address, targetID string) ([]models.Address, error) {
	index := -1
	for i, addr := range list {
		if addr.ID == targetID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, errAddressNotFound
	}

	wasDefault := list[index].IsDefault
	updated := append(list[:index:index], list[index+1:]...)

	if wasDefault && len(updated) > 0 {
		updated[0].IsDefault = true
	}

	return updated, nil
}

// normalizeDefaultFlags is the pre-persist consistency pass: if more
// than one entry is flagged default, the first keeps the flag and the
// rest are cleared. Runs before every persist of a modified list.
func normalizeDefaultFlags(list []models.Address) []models.Address {
	seen := false
	for i := range list {
		if !list[i].IsDefault {
			continue
		}
		if seen {
			list[i].IsDefault = false
			continue
		}
		seen = true
	}
	return list
}
