package handlers

import (
	"net/http"
	"regexp"
	"strconv"
)

var skuPattern = regexp.MustCompile(`^\w{8}$`)

// validateProductFields applies the same rules on create and edit. Presence
// errors short-circuit: if any required field is empty only the required-field
// messages come back, without evaluating the per-field rules. Otherwise each
// field carries at most one message.
func validateProductFields(name, sku, priceStr string) (float64, map[string]string) {
	errors := make(map[string]string)
	if name == "" {
		errors["name"] = "This field is required."
	}
	if sku == "" {
		errors["sku"] = "This field is required."
	}
	if priceStr == "" {
		errors["price"] = "This field is required."
	}
	if len(errors) > 0 {
		return 0, errors
	}

	if len(name) > 100 {
		errors["name"] = "Name can't be longer than 100 characters."
	}
	if !skuPattern.MatchString(sku) {
		errors["sku"] = "Sku must contain 8 alphanumeric characters"
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		errors["price"] = "Invalid price format."
	} else if price >= 10000.0 || price < 0.0 {
		errors["price"] = "Price can't be negative or more than $9999.99"
	}
	return price, errors
}

// collectImageURLs gathers the non-empty image_1..image_3 form values, in order.
func collectImageURLs(r *http.Request) []string {
	var urls []string
	for i := 1; i <= 3; i++ {
		if url := r.FormValue("image_" + strconv.Itoa(i)); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
